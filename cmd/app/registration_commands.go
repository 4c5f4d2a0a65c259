package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/courtside/registration/cmd/app/commands"
	"github.com/courtside/registration/internal/app"
	"github.com/courtside/registration/internal/config"
)

func getRegistrationCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sweep-pending",
			Usage: "Delete abandoned pending registrations older than the TTL",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:    "older-than",
					Aliases: []string{"t"},
					Usage:   "Age cutoff for pending registrations (defaults to PENDING_REGISTRATION_TTL)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				intentUseCase, err := container.IntentUseCase()
				if err != nil {
					return err
				}

				olderThan := cmd.Duration("older-than")
				if olderThan == 0 {
					olderThan = cfg.PendingRegistrationTTL
				}

				return commands.RunSweepPending(
					ctx,
					intentUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					olderThan,
					cmd.String("format"),
				)
			},
		},
	}
}
