package app

import (
	"fmt"

	rightsHTTP "github.com/saraivavision/privacy/internal/rights/http"
	rightsRepositoryPkg "github.com/saraivavision/privacy/internal/rights/repository"
	rightsUsecase "github.com/saraivavision/privacy/internal/rights/usecase"
)

// RightsRepository returns the rights request repository instance.
func (c *Container) RightsRepository() (rightsUsecase.RightsRepository, error) {
	var err error
	c.rightsRepoInit.Do(func() {
		c.rightsRepo, err = c.initRightsRepository()
		if err != nil {
			c.initErrors["rightsRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rightsRepo"]; exists {
		return nil, storedErr
	}
	return c.rightsRepo, nil
}

// RightsUseCase returns the data subject rights use case instance.
func (c *Container) RightsUseCase() (rightsUsecase.RightsUseCase, error) {
	var err error
	c.rightsUseCaseInit.Do(func() {
		c.rightsUseCase, err = c.initRightsUseCase()
		if err != nil {
			c.initErrors["rightsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rightsUseCase"]; exists {
		return nil, storedErr
	}
	return c.rightsUseCase, nil
}

// RightsHandler returns the rights HTTP handler.
func (c *Container) RightsHandler() (*rightsHTTP.RightsHandler, error) {
	var err error
	c.rightsHandlerInit.Do(func() {
		c.rightsHandler, err = c.initRightsHandler()
		if err != nil {
			c.initErrors["rightsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rightsHandler"]; exists {
		return nil, storedErr
	}
	return c.rightsHandler, nil
}

// initRightsRepository creates the rights repository based on the database driver.
func (c *Container) initRightsRepository() (rightsUsecase.RightsRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for rights repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return rightsRepositoryPkg.NewMySQLRightsRepository(db), nil
	case "postgres":
		return rightsRepositoryPkg.NewPostgreSQLRightsRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRightsUseCase creates the rights use case with all its dependencies.
// The consent, retention, and encryption use cases back the workflows:
// consent history feeds exports, objection withdraws consent, deletion
// schedules retention, and exports decrypt stored payloads.
func (c *Container) initRightsUseCase() (rightsUsecase.RightsUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for rights use case: %w", err)
	}

	rightsRepo, err := c.RightsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rights repository for rights use case: %w", err)
	}

	userDataRepo, err := c.UserDataRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user data repository for rights use case: %w", err)
	}

	consentUseCase, err := c.ConsentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent use case for rights use case: %w", err)
	}

	retentionUseCase, err := c.RetentionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get retention use case for rights use case: %w", err)
	}

	encryptionUseCase, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for rights use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for rights use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for rights use case: %w", err)
	}

	useCase := rightsUsecase.NewRightsUseCase(
		txManager,
		rightsRepo,
		userDataRepo,
		consentUseCase,
		retentionUseCase,
		encryptionUseCase,
		auditUseCase,
		c.config.DataController,
	)
	return rightsUsecase.NewRightsUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initRightsHandler creates the rights HTTP handler.
func (c *Container) initRightsHandler() (*rightsHTTP.RightsHandler, error) {
	useCase, err := c.RightsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get rights use case for rights handler: %w", err)
	}
	return rightsHTTP.NewRightsHandler(useCase, c.Logger()), nil
}
