package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/saraivavision/privacy/cmd/app/commands"
	"github.com/saraivavision/privacy/internal/app"
	"github.com/saraivavision/privacy/internal/config"
)

func getComplianceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "run-retention",
			Usage: "Execute one pass over due retention records",
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

				retentionUseCase, err := container.RetentionUseCase()
				if err != nil {
					return err
				}

				return commands.RunRetentionSweep(
					ctx,
					retentionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Verify cryptographic integrity of audit events",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "session",
					Aliases: []string{"s"},
					Usage:   "Restrict verification to one session id",
				},
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Usage:   "Restrict verification to one event type (e.g., CONSENT_RECORDED)",
				},
				&cli.UintFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   1000,
					Usage:   "Maximum number of events to verify",
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

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("session"),
					cmd.String("type"),
					uint(cmd.Uint("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "clean-audit-logs",
			Usage: "Delete audit events older than specified days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete audit events older than this many days",
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

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("days")),
					cmd.String("format"),
				)
			},
		},
	}
}
