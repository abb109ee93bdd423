package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
)

// RunCreateMasterSecret generates a cryptographically secure 32-byte master
// secret every encryption and signing key derives from. The material is
// zeroed from memory after encoding.
//
// Without KMS parameters the secret is printed as a MASTER_SECRET value.
// With kmsProvider and kmsKeyURI set, the secret is wrapped through the KMS
// keeper and printed as a WRAPPED_MASTER_SECRET value alongside the KMS
// configuration. For local development, use kmsProvider="localsecrets" with
// kmsKeyURI="base64key://<32-byte-base64-key>".
func RunCreateMasterSecret(writer io.Writer, kmsProvider, kmsKeyURI string) error {
	ctx := context.Background()

	// Generate a cryptographically secure 32-byte master secret
	secret := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate master secret: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	if kmsProvider == "" {
		_, _ = fmt.Fprintln(writer, "# Plain mode: store this value securely, it cannot be recovered")
		_, _ = fmt.Fprintf(writer, "MASTER_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	if kmsKeyURI == "" {
		return fmt.Errorf("--kms-key-uri is required when --kms-provider is set")
	}

	// Open the KMS keeper and wrap the secret
	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closer, ok := keeperInterface.(interface{ Close() error }); ok {
			if closeErr := closer.Close(); closeErr != nil {
				_, _ = fmt.Fprintf(writer, "# Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}
	}()

	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	wrapped, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return fmt.Errorf("failed to wrap master secret with KMS: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# KMS mode: master secret wrapped with KMS")
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "WRAPPED_MASTER_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(wrapped))
	return nil
}
