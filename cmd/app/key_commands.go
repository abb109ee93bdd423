package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/saraivavision/privacy/cmd/app/commands"
	"github.com/saraivavision/privacy/internal/app"
	"github.com/saraivavision/privacy/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-secret",
			Usage: "Generate a new master secret for key derivation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-provider",
					Usage: "KMS provider for wrapping (e.g., gcpkms, awskms, azurekeyvault, localsecrets)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "URI of the KMS wrapping key (e.g., base64key://... for localsecrets)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateMasterSecret(
					commands.DefaultIO().Writer,
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "rotate-keys",
			Usage: "Advance the encryption key epoch",
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

				encryptionUseCase, err := container.EncryptionUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateKeys(
					ctx,
					encryptionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
