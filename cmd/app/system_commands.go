package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/courtside/registration/cmd/app/commands"
	"github.com/courtside/registration/internal/app"
	"github.com/courtside/registration/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server and the scheduled job runner",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "run-jobs",
			Usage: "Run the scheduled job runner as a standalone worker",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				runnerUseCase, err := container.RunnerUseCase()
				if err != nil {
					return err
				}

				return commands.RunJobRunner(ctx, runnerUseCase, container.Logger())
			},
		},
	}
}
