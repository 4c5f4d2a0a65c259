package app

import (
	"fmt"

	registrationHTTP "github.com/courtside/registration/internal/registrations/http"
	registrationRepository "github.com/courtside/registration/internal/registrations/repository"
	registrationUseCase "github.com/courtside/registration/internal/registrations/usecase"
)

// RegistrationRepository returns the registration repository based on
// database driver.
func (c *Container) RegistrationRepository() (registrationUseCase.RegistrationRepository, error) {
	var err error
	c.registrationRepositoryInit.Do(func() {
		c.registrationRepository, err = c.initRegistrationRepository()
		if err != nil {
			c.initErrors["registrationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationRepository"]; exists {
		return nil, storedErr
	}
	return c.registrationRepository, nil
}

// IntentUseCase returns the public registration use case.
func (c *Container) IntentUseCase() (registrationUseCase.IntentUseCase, error) {
	if err := c.ensureRegistrationUseCase(); err != nil {
		return nil, err
	}
	return c.intentUseCase, nil
}

// AdminUseCase returns the staff-facing registration use case.
func (c *Container) AdminUseCase() (registrationUseCase.AdminUseCase, error) {
	if err := c.ensureRegistrationUseCase(); err != nil {
		return nil, err
	}
	return c.adminUseCase, nil
}

// RegistrationHandler returns the registration HTTP handler.
func (c *Container) RegistrationHandler() (*registrationHTTP.RegistrationHandler, error) {
	var err error
	c.registrationHandlerInit.Do(func() {
		c.registrationHandler, err = c.initRegistrationHandler()
		if err != nil {
			c.initErrors["registrationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationHandler"]; exists {
		return nil, storedErr
	}
	return c.registrationHandler, nil
}

// ensureRegistrationUseCase initializes the shared registration use case
// backing both the intent and admin surfaces.
func (c *Container) ensureRegistrationUseCase() error {
	var err error
	c.registrationUseCaseInit.Do(func() {
		err = c.initRegistrationUseCase()
		if err != nil {
			c.initErrors["registrationUseCase"] = err
		}
	})
	if err != nil {
		return err
	}
	if storedErr, exists := c.initErrors["registrationUseCase"]; exists {
		return storedErr
	}
	return nil
}

// initRegistrationRepository creates the registration repository instance.
func (c *Container) initRegistrationRepository() (registrationUseCase.RegistrationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for registration repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return registrationRepository.NewMySQLRegistrationRepository(db), nil
	case "postgres":
		return registrationRepository.NewPostgreSQLRegistrationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRegistrationUseCase creates the registration use case instance and
// stores its two views.
func (c *Container) initRegistrationUseCase() error {
	repo, err := c.RegistrationRepository()
	if err != nil {
		return fmt.Errorf("failed to get registration repository: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return fmt.Errorf("failed to get event repository: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return fmt.Errorf("failed to get audit log use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return fmt.Errorf("failed to get tx manager: %w", err)
	}

	useCase := registrationUseCase.NewRegistrationUseCase(
		repo,
		eventRepo,
		auditLogUseCase,
		txManager,
		c.Mailer(),
		c.Logger(),
	)
	c.intentUseCase = useCase
	c.adminUseCase = useCase
	return nil
}

// initRegistrationHandler creates the registration HTTP handler instance.
func (c *Container) initRegistrationHandler() (*registrationHTTP.RegistrationHandler, error) {
	intentUseCase, err := c.IntentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get intent use case: %w", err)
	}

	adminUseCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case: %w", err)
	}

	return registrationHTTP.NewRegistrationHandler(intentUseCase, adminUseCase, c.Logger()), nil
}
