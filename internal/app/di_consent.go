package app

import (
	"fmt"

	consentHTTP "github.com/saraivavision/privacy/internal/consent/http"
	consentRepositoryPkg "github.com/saraivavision/privacy/internal/consent/repository"
	consentUsecase "github.com/saraivavision/privacy/internal/consent/usecase"
)

// ConsentRepository returns the consent repository instance.
func (c *Container) ConsentRepository() (consentUsecase.ConsentRepository, error) {
	repo, err := c.consentRepository()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// ConsentUseCase returns the consent management use case instance.
func (c *Container) ConsentUseCase() (consentUsecase.ConsentUseCase, error) {
	var err error
	c.consentUseCaseInit.Do(func() {
		c.consentUseCase, err = c.initConsentUseCase()
		if err != nil {
			c.initErrors["consentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consentUseCase"]; exists {
		return nil, storedErr
	}
	return c.consentUseCase, nil
}

// ConsentHandler returns the consent HTTP handler.
func (c *Container) ConsentHandler() (*consentHTTP.ConsentHandler, error) {
	var err error
	c.consentHandlerInit.Do(func() {
		c.consentHandler, err = c.initConsentHandler()
		if err != nil {
			c.initErrors["consentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consentHandler"]; exists {
		return nil, storedErr
	}
	return c.consentHandler, nil
}

// consentRepository returns the consent store in its full shape, covering
// both the consent module and the retention deleter.
func (c *Container) consentRepository() (consentRepository, error) {
	var err error
	c.consentRepoInit.Do(func() {
		c.consentRepo, err = c.initConsentRepository()
		if err != nil {
			c.initErrors["consentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consentRepo"]; exists {
		return nil, storedErr
	}
	return c.consentRepo, nil
}

// initConsentRepository creates the consent repository based on the database driver.
func (c *Container) initConsentRepository() (consentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for consent repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return consentRepositoryPkg.NewMySQLConsentRepository(db), nil
	case "postgres":
		return consentRepositoryPkg.NewPostgreSQLConsentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initConsentUseCase creates the consent use case with all its dependencies.
func (c *Container) initConsentUseCase() (consentUsecase.ConsentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for consent use case: %w", err)
	}

	consentRepo, err := c.ConsentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent repository for consent use case: %w", err)
	}

	anonymizer, err := c.Anonymizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymizer for consent use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for consent use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for consent use case: %w", err)
	}

	useCase := consentUsecase.NewConsentUseCase(
		txManager,
		consentRepo,
		anonymizer,
		auditUseCase,
		c.config.DataController,
		c.config.DPOEmail,
	)
	return consentUsecase.NewConsentUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initConsentHandler creates the consent HTTP handler.
func (c *Container) initConsentHandler() (*consentHTTP.ConsentHandler, error) {
	useCase, err := c.ConsentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent use case for consent handler: %w", err)
	}
	return consentHTTP.NewConsentHandler(useCase, c.Logger()), nil
}
