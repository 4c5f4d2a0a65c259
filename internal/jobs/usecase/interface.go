// Package usecase implements scheduled job execution and enqueueing.
package usecase

import (
	"context"
	"time"

	"github.com/courtside/registration/internal/jobs/domain"
)

// Config holds job runner configuration.
type Config struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

// JobRepository defines scheduled job persistence operations.
type JobRepository interface {
	// Create stores a new scheduled job.
	Create(ctx context.Context, job *domain.ScheduledJob) error

	// DuePending retrieves due scheduled jobs oldest first, locked against
	// concurrent runners.
	DuePending(ctx context.Context, limit int) ([]*domain.ScheduledJob, error)

	// Update updates a scheduled job.
	Update(ctx context.Context, job *domain.ScheduledJob) error
}

// RunResult summarizes one processing pass.
type RunResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// RunnerUseCase drains due jobs, either on a timer or on demand.
type RunnerUseCase interface {
	// Start runs the processing loop until the context is canceled.
	Start(ctx context.Context) error

	// ProcessDue claims and executes one batch of due jobs.
	ProcessDue(ctx context.Context) (RunResult, error)
}

// SchedulerUseCase enqueues jobs for later execution.
type SchedulerUseCase interface {
	Schedule(ctx context.Context, jobType domain.JobType, payload map[string]any, runAt time.Time) error
}
