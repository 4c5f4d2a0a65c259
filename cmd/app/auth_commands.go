package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/courtside/registration/cmd/app/commands"
	"github.com/courtside/registration/internal/app"
	"github.com/courtside/registration/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-actor",
			Usage: "Create a new administrative actor with a generated secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable actor name",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Actor role: 'admin', 'finance' or 'staff'",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the actor can authenticate immediately",
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

				actorUseCase, err := container.ActorUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateActor(
					ctx,
					actorUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("role"),
					cmd.Bool("active"),
					cmd.String("format"),
				)
			},
		},
	}
}
