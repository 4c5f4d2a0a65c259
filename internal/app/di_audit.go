package app

import (
	"fmt"

	auditHTTP "github.com/courtside/registration/internal/audit/http"
	auditRepository "github.com/courtside/registration/internal/audit/repository"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
)

// AuditLogRepository returns the audit log repository based on database driver.
func (c *Container) AuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepositoryInit.Do(func() {
		c.auditLogRepository, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepository"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepository, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		c.auditLogUseCase, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// AuditLogHandler returns the audit log HTTP handler.
func (c *Container) AuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	var err error
	c.auditLogHandlerInit.Do(func() {
		c.auditLogHandler, err = c.initAuditLogHandler()
		if err != nil {
			c.initErrors["auditLogHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogHandler"]; exists {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// initAuditLogRepository creates the audit log repository instance.
func (c *Container) initAuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAuditLogRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogUseCase creates the audit log use case instance.
func (c *Container) initAuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	auditLogRepository, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository: %w", err)
	}

	return auditUseCase.NewAuditLogUseCase(auditLogRepository), nil
}

// initAuditLogHandler creates the audit log HTTP handler instance.
func (c *Container) initAuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case: %w", err)
	}

	return auditHTTP.NewAuditLogHandler(auditLogUseCase, c.Logger()), nil
}
