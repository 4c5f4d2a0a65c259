package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	eventDomain "github.com/courtside/registration/internal/events/domain"
	"github.com/courtside/registration/internal/jobs/domain"
	"github.com/courtside/registration/internal/mailer"
)

// EventRepository is the slice of event persistence the job runner needs.
type EventRepository interface {
	Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error)
}

// runnerUseCase implements RunnerUseCase.
type runnerUseCase struct {
	config          Config
	txManager       database.TxManager
	jobRepository   JobRepository
	eventRepository EventRepository
	mailer          mailer.Mailer
	logger          *slog.Logger
}

// NewRunnerUseCase creates a new job runner use case with required
// dependencies.
func NewRunnerUseCase(
	config Config,
	txManager database.TxManager,
	jobRepository JobRepository,
	eventRepository EventRepository,
	mailer mailer.Mailer,
	logger *slog.Logger,
) RunnerUseCase {
	return &runnerUseCase{
		config:          config,
		txManager:       txManager,
		jobRepository:   jobRepository,
		eventRepository: eventRepository,
		mailer:          mailer,
		logger:          logger,
	}
}

// Start runs the processing loop until the context is canceled.
func (u *runnerUseCase) Start(ctx context.Context) error {
	u.logger.Info("starting scheduled job runner",
		slog.Duration("interval", u.config.Interval),
		slog.Int("batch_size", u.config.BatchSize),
	)

	ticker := time.NewTicker(u.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.logger.Info("stopping scheduled job runner")
			return ctx.Err()
		case <-ticker.C:
			if _, err := u.ProcessDue(ctx); err != nil {
				u.logger.Error("failed to process due jobs", slog.Any("error", err))
			}
		}
	}
}

// ProcessDue claims one batch of due jobs and executes them. The claim marks
// every job running with its attempt counted and commits before any side
// effect runs, so a crash mid-execution shows up as an elevated attempt
// count on the next poll instead of a silent re-run. A job that fails is
// rescheduled until its attempts are exhausted, then marked failed with the
// last error recorded.
func (u *runnerUseCase) ProcessDue(ctx context.Context) (RunResult, error) {
	var result RunResult
	var jobs []*domain.ScheduledJob

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		jobs, err = u.jobRepository.DuePending(ctx, u.config.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			job.Status = domain.StatusRunning
			job.Attempts++
			job.UpdatedAt = time.Now().UTC()
			if err := u.jobRepository.Update(ctx, job); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if len(jobs) == 0 {
		return result, nil
	}

	u.logger.Info("processing due jobs", slog.Int("count", len(jobs)))
	result.Total = len(jobs)

	// Execution happens outside the claim transaction so slow side effects
	// never hold the claimed row locks.
	for _, job := range jobs {
		if err := u.executeJob(ctx, job); err != nil {
			u.logger.Error("job execution failed",
				slog.String("job_id", job.ID.String()),
				slog.String("job_type", string(job.JobType)),
				slog.Int("attempts", job.Attempts),
				slog.Any("error", err),
			)

			errorMsg := err.Error()
			job.LastError = &errorMsg
			job.Status = domain.StatusScheduled
			if job.Attempts >= u.config.MaxAttempts {
				job.Status = domain.StatusFailed
				result.Failed++
			}
			job.UpdatedAt = time.Now().UTC()
			if err := u.jobRepository.Update(ctx, job); err != nil {
				return result, err
			}
			continue
		}

		job.Status = domain.StatusCompleted
		job.LastError = nil
		job.UpdatedAt = time.Now().UTC()
		if err := u.jobRepository.Update(ctx, job); err != nil {
			return result, err
		}
		result.Processed++
	}

	return result, nil
}

// executeJob dispatches a single job by type.
func (u *runnerUseCase) executeJob(ctx context.Context, job *domain.ScheduledJob) error {
	switch job.JobType {
	case domain.JobTypeReminderEmail:
		return u.sendReminderEmail(ctx, job)
	case domain.JobTypeReceiptEmail:
		return u.sendReceiptEmail(ctx, job)
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, "unknown job type: "+string(job.JobType))
	}
}

func (u *runnerUseCase) sendReminderEmail(ctx context.Context, job *domain.ScheduledJob) error {
	email, event, err := u.resolveRecipient(ctx, job)
	if err != nil {
		return err
	}

	return u.mailer.Send(ctx, mailer.Message{
		To:      email,
		Subject: fmt.Sprintf("Reminder: %s", event.Name),
		Body: fmt.Sprintf(
			"This is a reminder that %s starts at %s at %s. See you there!",
			event.Name,
			event.StartsAt.Format("Mon, 2 Jan 2006 15:04 MST"),
			event.Location,
		),
	})
}

func (u *runnerUseCase) sendReceiptEmail(ctx context.Context, job *domain.ScheduledJob) error {
	email, event, err := u.resolveRecipient(ctx, job)
	if err != nil {
		return err
	}

	return u.mailer.Send(ctx, mailer.Message{
		To:      email,
		Subject: fmt.Sprintf("Payment received for %s", event.Name),
		Body: fmt.Sprintf(
			"Thanks! Your payment for %s is confirmed and your spot is reserved. "+
				"The event starts at %s.",
			event.Name,
			event.StartsAt.Format("Mon, 2 Jan 2006 15:04 MST"),
		),
	})
}

// resolveRecipient extracts the recipient address and loads the event named in
// the job payload.
func (u *runnerUseCase) resolveRecipient(
	ctx context.Context,
	job *domain.ScheduledJob,
) (string, *eventDomain.Event, error) {
	email, ok := job.Payload["email"].(string)
	if !ok || email == "" {
		return "", nil, apperrors.Wrap(apperrors.ErrInvalidInput, "job payload missing email")
	}

	rawEventID, ok := job.Payload["event_id"].(string)
	if !ok {
		return "", nil, apperrors.Wrap(apperrors.ErrInvalidInput, "job payload missing event_id")
	}

	eventID, err := uuid.Parse(rawEventID)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInvalidInput, "job payload has invalid event_id")
	}

	event, err := u.eventRepository.Get(ctx, eventID)
	if err != nil {
		return "", nil, err
	}

	return email, event, nil
}
