package app

import (
	"fmt"

	retentionHTTP "github.com/saraivavision/privacy/internal/retention/http"
	retentionRepositoryPkg "github.com/saraivavision/privacy/internal/retention/repository"
	retentionService "github.com/saraivavision/privacy/internal/retention/service"
	retentionUsecase "github.com/saraivavision/privacy/internal/retention/usecase"
	userdataRepository "github.com/saraivavision/privacy/internal/userdata/repository"
)

// RetentionRepository returns the retention record repository instance.
func (c *Container) RetentionRepository() (retentionUsecase.RetentionRepository, error) {
	var err error
	c.retentionRepoInit.Do(func() {
		c.retentionRepo, err = c.initRetentionRepository()
		if err != nil {
			c.initErrors["retentionRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["retentionRepo"]; exists {
		return nil, storedErr
	}
	return c.retentionRepo, nil
}

// UserDataRepository returns the stored user data repository instance.
func (c *Container) UserDataRepository() (userDataRepository, error) {
	var err error
	c.userDataRepoInit.Do(func() {
		c.userDataRepo, err = c.initUserDataRepository()
		if err != nil {
			c.initErrors["userDataRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userDataRepo"]; exists {
		return nil, storedErr
	}
	return c.userDataRepo, nil
}

// RetentionUseCase returns the retention scheduling use case instance.
func (c *Container) RetentionUseCase() (retentionUsecase.RetentionUseCase, error) {
	var err error
	c.retentionUseCaseInit.Do(func() {
		c.retentionUseCase, err = c.initRetentionUseCase()
		if err != nil {
			c.initErrors["retentionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["retentionUseCase"]; exists {
		return nil, storedErr
	}
	return c.retentionUseCase, nil
}

// RetentionHandler returns the retention HTTP handler.
func (c *Container) RetentionHandler() (*retentionHTTP.RetentionHandler, error) {
	var err error
	c.retentionHandlerInit.Do(func() {
		c.retentionHandler, err = c.initRetentionHandler()
		if err != nil {
			c.initErrors["retentionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["retentionHandler"]; exists {
		return nil, storedErr
	}
	return c.retentionHandler, nil
}

// initRetentionRepository creates the retention repository based on the database driver.
func (c *Container) initRetentionRepository() (retentionUsecase.RetentionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for retention repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return retentionRepositoryPkg.NewMySQLRetentionRepository(db), nil
	case "postgres":
		return retentionRepositoryPkg.NewPostgreSQLRetentionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserDataRepository creates the user data repository based on the database driver.
func (c *Container) initUserDataRepository() (userDataRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user data repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userdataRepository.NewMySQLUserDataRepository(db), nil
	case "postgres":
		return userdataRepository.NewPostgreSQLUserDataRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRetentionUseCase creates the retention use case with all its dependencies.
func (c *Container) initRetentionUseCase() (retentionUsecase.RetentionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for retention use case: %w", err)
	}

	retentionRepo, err := c.RetentionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get retention repository for retention use case: %w", err)
	}

	deleter, err := c.initDeleter()
	if err != nil {
		return nil, err
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for retention use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for retention use case: %w", err)
	}

	useCase := retentionUsecase.NewRetentionUseCase(
		retentionUsecase.Config{SweepInterval: c.config.RetentionSweepInterval},
		txManager,
		retentionRepo,
		deleter,
		auditUseCase,
	)
	return retentionUsecase.NewRetentionUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initDeleter creates the store-routing deleter over the data-owning repositories.
func (c *Container) initDeleter() (*retentionService.StoreDeleter, error) {
	userDataRepo, err := c.UserDataRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user data repository for deleter: %w", err)
	}

	consentRepo, err := c.consentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get consent repository for deleter: %w", err)
	}

	eventRepo, err := c.eventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for deleter: %w", err)
	}

	anonymizer, err := c.Anonymizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymizer for deleter: %w", err)
	}

	return retentionService.NewStoreDeleter(userDataRepo, consentRepo, eventRepo, anonymizer), nil
}

// initRetentionHandler creates the retention HTTP handler.
func (c *Container) initRetentionHandler() (*retentionHTTP.RetentionHandler, error) {
	useCase, err := c.RetentionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get retention use case for retention handler: %w", err)
	}
	return retentionHTTP.NewRetentionHandler(useCase, c.Logger()), nil
}
