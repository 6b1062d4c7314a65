package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/notevault/cmd/app/commands"
	"github.com/allisson/notevault/internal/app"
	"github.com/allisson/notevault/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete session tokens whose lifetime has elapsed",
			Flags: []cli.Flag{
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

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanExpiredTokens(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
