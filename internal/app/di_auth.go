package app

import (
	"fmt"

	authHTTP "github.com/courtside/registration/internal/auth/http"
	authRepository "github.com/courtside/registration/internal/auth/repository"
	authService "github.com/courtside/registration/internal/auth/service"
	authUseCase "github.com/courtside/registration/internal/auth/usecase"
)

// SecretService returns the secret service used for actor secret hashing.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// TokenService returns the token service used for bearer token generation.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// ActorRepository returns the actor repository based on database driver.
func (c *Container) ActorRepository() (authUseCase.ActorRepository, error) {
	var err error
	c.actorRepositoryInit.Do(func() {
		c.actorRepository, err = c.initActorRepository()
		if err != nil {
			c.initErrors["actorRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorRepository"]; exists {
		return nil, storedErr
	}
	return c.actorRepository, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// ActorUseCase returns the actor use case.
func (c *Container) ActorUseCase() (authUseCase.ActorUseCase, error) {
	var err error
	c.actorUseCaseInit.Do(func() {
		c.actorUseCase, err = c.initActorUseCase()
		if err != nil {
			c.initErrors["actorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorUseCase"]; exists {
		return nil, storedErr
	}
	return c.actorUseCase, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the token HTTP handler.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initActorRepository creates the actor repository instance.
func (c *Container) initActorRepository() (authUseCase.ActorRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for actor repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLActorRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLActorRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (authUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return authRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initActorUseCase creates the actor use case instance.
func (c *Container) initActorUseCase() (authUseCase.ActorUseCase, error) {
	actorRepository, err := c.ActorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get actor repository: %w", err)
	}

	return authUseCase.NewActorUseCase(actorRepository, c.SecretService()), nil
}

// initTokenUseCase creates the token use case instance.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	actorRepository, err := c.ActorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get actor repository: %w", err)
	}

	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository: %w", err)
	}

	return authUseCase.NewTokenUseCase(
		c.config,
		actorRepository,
		tokenRepository,
		c.SecretService(),
		c.TokenService(),
	), nil
}

// initTokenHandler creates the token HTTP handler instance.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case: %w", err)
	}

	return authHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
