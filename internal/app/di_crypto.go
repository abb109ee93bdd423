package app

import (
	"context"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoHTTP "github.com/saraivavision/privacy/internal/crypto/http"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
	cryptoUsecase "github.com/saraivavision/privacy/internal/crypto/usecase"
)

// MasterSecret returns the master secret every derived key and signing key
// descends from, loaded once from the environment or unwrapped via KMS.
func (c *Container) MasterSecret() (*cryptoDomain.MasterSecret, error) {
	var err error
	c.masterSecretInit.Do(func() {
		c.masterSecret, err = c.initMasterSecret()
		if err != nil {
			c.initErrors["masterSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterSecret"]; exists {
		return nil, storedErr
	}
	return c.masterSecret, nil
}

// KMSService returns the KMS service used to unwrap the master secret.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyManager returns the epoch-based key derivation and caching service.
func (c *Container) KeyManager() (cryptoService.KeyManager, error) {
	var err error
	c.keyManagerInit.Do(func() {
		c.keyManager, err = c.initKeyManager()
		if err != nil {
			c.initErrors["keyManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyManager"]; exists {
		return nil, storedErr
	}
	return c.keyManager, nil
}

// Hasher returns the hashing service.
func (c *Container) Hasher() cryptoService.Hasher {
	c.hasherInit.Do(func() {
		c.hasher = cryptoService.NewHasher()
	})
	return c.hasher
}

// Anonymizer returns the pseudonymization service.
func (c *Container) Anonymizer() (cryptoService.Anonymizer, error) {
	var err error
	c.anonymizerInit.Do(func() {
		c.anonymizer, err = c.initAnonymizer()
		if err != nil {
			c.initErrors["anonymizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["anonymizer"]; exists {
		return nil, storedErr
	}
	return c.anonymizer, nil
}

// EncryptionUseCase returns the encryption engine use case.
func (c *Container) EncryptionUseCase() (cryptoUsecase.EncryptionUseCase, error) {
	var err error
	c.encryptionUseCaseInit.Do(func() {
		c.encryptionUseCase, err = c.initEncryptionUseCase()
		if err != nil {
			c.initErrors["encryptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.encryptionUseCase, nil
}

// EncryptionHandler returns the encryption HTTP handler.
func (c *Container) EncryptionHandler() (*cryptoHTTP.EncryptionHandler, error) {
	var err error
	c.encryptionHandlerInit.Do(func() {
		c.encryptionHandler, err = c.initEncryptionHandler()
		if err != nil {
			c.initErrors["encryptionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionHandler"]; exists {
		return nil, storedErr
	}
	return c.encryptionHandler, nil
}

// initMasterSecret loads the master secret. When a KMS provider is
// configured the wrapped secret is unwrapped through it; otherwise the
// secret comes directly from the MASTER_SECRET environment variable.
func (c *Container) initMasterSecret() (*cryptoDomain.MasterSecret, error) {
	if c.config.KMSProvider == "" {
		masterSecret, err := cryptoDomain.LoadMasterSecretFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load master secret: %w", err)
		}
		return masterSecret, nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}

	masterSecret, err := cryptoDomain.UnwrapMasterSecret(context.Background(), keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap master secret: %w", err)
	}
	return masterSecret, nil
}

// initKeyManager creates the key manager bound to the master secret.
func (c *Container) initKeyManager() (cryptoService.KeyManager, error) {
	masterSecret, err := c.MasterSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret for key manager: %w", err)
	}

	return cryptoService.NewKeyManager(masterSecret, cryptoService.KeyManagerConfig{
		Iterations:      c.config.KDFIterations,
		RotationPeriod:  c.config.KeyRotationPeriod,
		RetentionEpochs: c.config.KeyRetentionEpochs,
	}), nil
}

// initAnonymizer creates the anonymizer. The pseudonymization salt is
// derived from the master secret so hashed identifiers stay stable across
// restarts without storing a second secret.
func (c *Container) initAnonymizer() (cryptoService.Anonymizer, error) {
	masterSecret, err := c.MasterSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret for anonymizer: %w", err)
	}

	hasher := c.Hasher()
	salt := hasher.Hash("pseudonymization-salt-v1", base64.StdEncoding.EncodeToString(masterSecret.Bytes()))

	return cryptoService.NewAnonymizer(hasher, salt), nil
}

// initEncryptionUseCase creates the encryption use case with all its dependencies.
func (c *Container) initEncryptionUseCase() (cryptoUsecase.EncryptionUseCase, error) {
	keyManager, err := c.KeyManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get key manager for encryption use case: %w", err)
	}

	anonymizer, err := c.Anonymizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymizer for encryption use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for encryption use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for encryption use case: %w", err)
	}

	useCase := cryptoUsecase.NewEncryptionUseCase(keyManager, anonymizer, auditUseCase)
	return cryptoUsecase.NewEncryptionUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initEncryptionHandler creates the encryption HTTP handler.
func (c *Container) initEncryptionHandler() (*cryptoHTTP.EncryptionHandler, error) {
	useCase, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for encryption handler: %w", err)
	}
	return cryptoHTTP.NewEncryptionHandler(useCase, c.Logger()), nil
}
