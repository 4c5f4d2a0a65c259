package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/jobs/domain"
)

// schedulerUseCase implements SchedulerUseCase.
type schedulerUseCase struct {
	jobRepository JobRepository
}

// NewSchedulerUseCase creates a new scheduler use case.
func NewSchedulerUseCase(jobRepository JobRepository) SchedulerUseCase {
	return &schedulerUseCase{
		jobRepository: jobRepository,
	}
}

// Schedule enqueues a job to run at the given time.
func (u *schedulerUseCase) Schedule(
	ctx context.Context,
	jobType domain.JobType,
	payload map[string]any,
	runAt time.Time,
) error {
	if !jobType.Valid() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "unknown job type: "+string(jobType))
	}

	now := time.Now().UTC()
	job := &domain.ScheduledJob{
		ID:        uuid.Must(uuid.NewV7()),
		JobType:   jobType,
		Payload:   payload,
		RunAt:     runAt.UTC(),
		Status:    domain.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return u.jobRepository.Create(ctx, job)
}
