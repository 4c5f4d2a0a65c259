package app

import (
	"fmt"

	eventHTTP "github.com/courtside/registration/internal/events/http"
	eventRepository "github.com/courtside/registration/internal/events/repository"
	eventUseCase "github.com/courtside/registration/internal/events/usecase"
)

// EventRepository returns the event repository based on database driver.
func (c *Container) EventRepository() (eventUseCase.EventRepository, error) {
	var err error
	c.eventRepositoryInit.Do(func() {
		c.eventRepository, err = c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventRepository"]; exists {
		return nil, storedErr
	}
	return c.eventRepository, nil
}

// EventUseCase returns the event use case.
func (c *Container) EventUseCase() (eventUseCase.EventUseCase, error) {
	var err error
	c.eventUseCaseInit.Do(func() {
		c.eventUseCase, err = c.initEventUseCase()
		if err != nil {
			c.initErrors["eventUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventUseCase"]; exists {
		return nil, storedErr
	}
	return c.eventUseCase, nil
}

// EventHandler returns the event HTTP handler.
func (c *Container) EventHandler() (*eventHTTP.EventHandler, error) {
	var err error
	c.eventHandlerInit.Do(func() {
		c.eventHandler, err = c.initEventHandler()
		if err != nil {
			c.initErrors["eventHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventHandler"]; exists {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

// initEventRepository creates the event repository instance.
func (c *Container) initEventRepository() (eventUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return eventRepository.NewMySQLEventRepository(db), nil
	case "postgres":
		return eventRepository.NewPostgreSQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEventUseCase creates the event use case instance.
func (c *Container) initEventUseCase() (eventUseCase.EventUseCase, error) {
	repo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository: %w", err)
	}

	return eventUseCase.NewEventUseCase(repo), nil
}

// initEventHandler creates the event HTTP handler instance.
func (c *Container) initEventHandler() (*eventHTTP.EventHandler, error) {
	useCase, err := c.EventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event use case: %w", err)
	}

	return eventHTTP.NewEventHandler(useCase, c.Logger()), nil
}
