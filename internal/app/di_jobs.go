package app

import (
	"fmt"

	jobHTTP "github.com/courtside/registration/internal/jobs/http"
	jobRepository "github.com/courtside/registration/internal/jobs/repository"
	jobUseCase "github.com/courtside/registration/internal/jobs/usecase"
)

// JobRepository returns the scheduled job repository based on database driver.
func (c *Container) JobRepository() (jobUseCase.JobRepository, error) {
	var err error
	c.jobRepositoryInit.Do(func() {
		c.jobRepository, err = c.initJobRepository()
		if err != nil {
			c.initErrors["jobRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jobRepository"]; exists {
		return nil, storedErr
	}
	return c.jobRepository, nil
}

// SchedulerUseCase returns the job scheduler use case.
func (c *Container) SchedulerUseCase() (jobUseCase.SchedulerUseCase, error) {
	var err error
	c.schedulerUseCaseInit.Do(func() {
		c.schedulerUseCase, err = c.initSchedulerUseCase()
		if err != nil {
			c.initErrors["schedulerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["schedulerUseCase"]; exists {
		return nil, storedErr
	}
	return c.schedulerUseCase, nil
}

// RunnerUseCase returns the job runner use case.
func (c *Container) RunnerUseCase() (jobUseCase.RunnerUseCase, error) {
	var err error
	c.runnerUseCaseInit.Do(func() {
		c.runnerUseCase, err = c.initRunnerUseCase()
		if err != nil {
			c.initErrors["runnerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["runnerUseCase"]; exists {
		return nil, storedErr
	}
	return c.runnerUseCase, nil
}

// JobHandler returns the job HTTP handler.
func (c *Container) JobHandler() (*jobHTTP.JobHandler, error) {
	var err error
	c.jobHandlerInit.Do(func() {
		c.jobHandler, err = c.initJobHandler()
		if err != nil {
			c.initErrors["jobHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jobHandler"]; exists {
		return nil, storedErr
	}
	return c.jobHandler, nil
}

// initJobRepository creates the scheduled job repository instance.
func (c *Container) initJobRepository() (jobUseCase.JobRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for job repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return jobRepository.NewMySQLJobRepository(db), nil
	case "postgres":
		return jobRepository.NewPostgreSQLJobRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSchedulerUseCase creates the scheduler use case instance.
func (c *Container) initSchedulerUseCase() (jobUseCase.SchedulerUseCase, error) {
	repo, err := c.JobRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get job repository: %w", err)
	}

	return jobUseCase.NewSchedulerUseCase(repo), nil
}

// initRunnerUseCase creates the runner use case instance.
func (c *Container) initRunnerUseCase() (jobUseCase.RunnerUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager: %w", err)
	}

	repo, err := c.JobRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get job repository: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository: %w", err)
	}

	return jobUseCase.NewRunnerUseCase(
		jobUseCase.Config{
			Interval:    c.config.JobRunnerInterval,
			BatchSize:   c.config.JobRunnerBatchSize,
			MaxAttempts: c.config.JobRunnerMaxAttempts,
		},
		txManager,
		repo,
		eventRepo,
		c.Mailer(),
		c.Logger(),
	), nil
}

// initJobHandler creates the job HTTP handler instance.
func (c *Container) initJobHandler() (*jobHTTP.JobHandler, error) {
	runnerUseCase, err := c.RunnerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get runner use case: %w", err)
	}

	return jobHTTP.NewJobHandler(runnerUseCase, c.Logger()), nil
}
