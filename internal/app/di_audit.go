package app

import (
	"fmt"

	auditHTTP "github.com/saraivavision/privacy/internal/audit/http"
	auditRepository "github.com/saraivavision/privacy/internal/audit/repository"
	auditService "github.com/saraivavision/privacy/internal/audit/service"
	auditUsecase "github.com/saraivavision/privacy/internal/audit/usecase"
)

// Signer returns the audit event signer.
func (c *Container) Signer() (auditService.Signer, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.initErrors["signer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signer"]; exists {
		return nil, storedErr
	}
	return c.signer, nil
}

// EventRepository returns the audit event repository instance.
func (c *Container) EventRepository() (auditUsecase.EventRepository, error) {
	repo, err := c.eventRepository()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// AuditUseCase returns the audit trail use case instance.
func (c *Container) AuditUseCase() (auditUsecase.AuditUseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// AuditHandler returns the audit HTTP handler.
func (c *Container) AuditHandler() (*auditHTTP.AuditHandler, error) {
	var err error
	c.auditHandlerInit.Do(func() {
		c.auditHandler, err = c.initAuditHandler()
		if err != nil {
			c.initErrors["auditHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditHandler"]; exists {
		return nil, storedErr
	}
	return c.auditHandler, nil
}

// eventRepository returns the audit event store in its full shape, covering
// both the audit module and the retention deleter.
func (c *Container) eventRepository() (eventRepository, error) {
	var err error
	c.eventRepoInit.Do(func() {
		c.eventRepo, err = c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventRepo"]; exists {
		return nil, storedErr
	}
	return c.eventRepo, nil
}

// initSigner creates the HMAC audit event signer.
func (c *Container) initSigner() (auditService.Signer, error) {
	masterSecret, err := c.MasterSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get master secret for signer: %w", err)
	}
	return auditService.NewSigner(masterSecret), nil
}

// initEventRepository creates the audit event repository based on the database driver.
func (c *Container) initEventRepository() (eventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLEventRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUsecase.AuditUseCase, error) {
	eventRepo, err := c.eventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for audit use case: %w", err)
	}

	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for audit use case: %w", err)
	}

	return auditUsecase.NewAuditUseCase(eventRepo, signer), nil
}

// initAuditHandler creates the audit HTTP handler.
func (c *Container) initAuditHandler() (*auditHTTP.AuditHandler, error) {
	useCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for audit handler: %w", err)
	}
	return auditHTTP.NewAuditHandler(useCase, c.Logger()), nil
}
