package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	eventDomain "github.com/courtside/registration/internal/events/domain"
	"github.com/courtside/registration/internal/jobs/domain"
	"github.com/courtside/registration/internal/mailer"
)

type mockJobRepository struct {
	mock.Mock
}

func (m *mockJobRepository) Create(ctx context.Context, job *domain.ScheduledJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockJobRepository) DuePending(
	ctx context.Context,
	limit int,
) ([]*domain.ScheduledJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledJob), args.Error(1)
}

func (m *mockJobRepository) Update(ctx context.Context, job *domain.ScheduledJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Get(
	ctx context.Context,
	eventID uuid.UUID,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stampingTxManager marks the context handed to the function so tests can
// assert which calls run inside the claim transaction.
type stampingTxManager struct{}

type txStampKey struct{}

func (stampingTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txStampKey{}, true))
}

func inTx(ctx context.Context) bool {
	return ctx.Value(txStampKey{}) != nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		Interval:    10 * time.Millisecond,
		BatchSize:   10,
		MaxAttempts: 3,
	}
}

func upcomingEvent() *eventDomain.Event {
	now := time.Now().UTC()
	return &eventDomain.Event{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     "Summer 3x3 Open",
		Location: "Riverside Courts",
		StartsAt: now.Add(24 * time.Hour),
		EndsAt:   now.Add(30 * time.Hour),
		Status:   eventDomain.StatusPublished,
	}
}

func dueJob(jobType domain.JobType, eventID uuid.UUID) *domain.ScheduledJob {
	now := time.Now().UTC()
	return &domain.ScheduledJob{
		ID:      uuid.Must(uuid.NewV7()),
		JobType: jobType,
		Payload: map[string]any{
			"email":           "dana@example.com",
			"event_id":        eventID.String(),
			"registration_id": uuid.Must(uuid.NewV7()).String(),
		},
		RunAt:     now.Add(-time.Minute),
		Status:    domain.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRunnerUseCase_ProcessDue(t *testing.T) {
	ctx := context.Background()

	t.Run("reminder email sent and job completed", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		eventRepo := &mockEventRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, eventRepo, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReminderEmail, event.ID)

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusRunning && j.Attempts == 1
		})).Return(nil).Once()
		eventRepo.On("Get", ctx, event.ID).Return(event, nil)
		mailClient.On("Send", ctx, mock.MatchedBy(func(msg mailer.Message) bool {
			return msg.To == "dana@example.com" &&
				msg.Subject == "Reminder: Summer 3x3 Open"
		})).Return(nil).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusCompleted
		})).Return(nil).Once()

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, RunResult{Processed: 1, Failed: 0, Total: 1}, result)
		jobRepo.AssertExpectations(t)
		mailClient.AssertExpectations(t)
	})

	t.Run("receipt email sent", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		eventRepo := &mockEventRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, eventRepo, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReceiptEmail, event.ID)

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", ctx, mock.AnythingOfType("*domain.ScheduledJob")).Return(nil)
		eventRepo.On("Get", ctx, event.ID).Return(event, nil)
		mailClient.On("Send", ctx, mock.MatchedBy(func(msg mailer.Message) bool {
			return msg.Subject == "Payment received for Summer 3x3 Open"
		})).Return(nil).Once()

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		mailClient.AssertExpectations(t)
	})

	t.Run("send failure reschedules the job", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		eventRepo := &mockEventRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, eventRepo, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReminderEmail, event.ID)

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusRunning
		})).Return(nil).Once()
		eventRepo.On("Get", ctx, event.ID).Return(event, nil)
		mailClient.On("Send", ctx, mock.Anything).
			Return(errors.New("smtp send failed")).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusScheduled &&
				j.Attempts == 1 &&
				j.LastError != nil
		})).Return(nil).Once()

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, RunResult{Processed: 0, Failed: 0, Total: 1}, result)
		jobRepo.AssertExpectations(t)
	})

	t.Run("exhausted attempts mark the job failed", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		eventRepo := &mockEventRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, eventRepo, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReminderEmail, event.ID)
		job.Attempts = 2

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusRunning && j.Attempts == 3
		})).Return(nil).Once()
		eventRepo.On("Get", ctx, event.ID).Return(event, nil)
		mailClient.On("Send", ctx, mock.Anything).
			Return(errors.New("smtp send failed")).Once()
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusFailed && j.LastError != nil
		})).Return(nil).Once()

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, RunResult{Processed: 0, Failed: 1, Total: 1}, result)
		jobRepo.AssertExpectations(t)
	})

	t.Run("payload without email fails the execution", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, &mockEventRepository{}, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReminderEmail, event.ID)
		delete(job.Payload, "email")

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", ctx, mock.AnythingOfType("*domain.ScheduledJob")).Return(nil)

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Processed)
		mailClient.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("attempt is committed before the send runs", func(t *testing.T) {
		// The claim transaction persists running state and the attempt count
		// first; the email side effect must run after it commits so a crash
		// mid-send leaves the elevated attempt count behind.
		jobRepo := &mockJobRepository{}
		eventRepo := &mockEventRepository{}
		mailClient := &mockMailer{}
		runner := NewRunnerUseCase(testConfig(), stampingTxManager{},
			jobRepo, eventRepo, mailClient, testLogger())

		event := upcomingEvent()
		job := dueJob(domain.JobTypeReminderEmail, event.ID)

		txCtx := mock.MatchedBy(inTx)
		outsideTx := mock.MatchedBy(func(c context.Context) bool { return !inTx(c) })

		jobRepo.On("DuePending", txCtx, 10).
			Return([]*domain.ScheduledJob{job}, nil).Once()
		jobRepo.On("Update", txCtx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusRunning && j.Attempts == 1
		})).Return(nil).Once()
		eventRepo.On("Get", outsideTx, event.ID).Return(event, nil)
		mailClient.On("Send", outsideTx, mock.Anything).Return(nil).Once()
		jobRepo.On("Update", outsideTx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.Status == domain.StatusCompleted
		})).Return(nil).Once()

		result, err := runner.ProcessDue(context.Background())

		require.NoError(t, err)
		assert.Equal(t, RunResult{Processed: 1, Failed: 0, Total: 1}, result)
		jobRepo.AssertExpectations(t)
		mailClient.AssertExpectations(t)
	})

	t.Run("no due jobs is a quiet pass", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
			jobRepo, &mockEventRepository{}, &mockMailer{}, testLogger())

		jobRepo.On("DuePending", ctx, 10).
			Return([]*domain.ScheduledJob{}, nil).Once()

		result, err := runner.ProcessDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, RunResult{}, result)
	})
}

func TestRunnerUseCase_Start(t *testing.T) {
	defer goleak.VerifyNone(t)

	jobRepo := &mockJobRepository{}
	jobRepo.On("DuePending", mock.Anything, 10).
		Return([]*domain.ScheduledJob{}, nil).Maybe()

	runner := NewRunnerUseCase(testConfig(), passthroughTxManager{},
		jobRepo, &mockEventRepository{}, &mockMailer{}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Start(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

func TestSchedulerUseCase_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a scheduled job", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		scheduler := NewSchedulerUseCase(jobRepo)

		runAt := time.Now().Add(time.Hour)
		payload := map[string]any{"email": "dana@example.com"}

		jobRepo.On("Create", ctx, mock.MatchedBy(func(j *domain.ScheduledJob) bool {
			return j.JobType == domain.JobTypeReminderEmail &&
				j.Status == domain.StatusScheduled &&
				j.RunAt.Equal(runAt.UTC()) &&
				j.Payload["email"] == "dana@example.com"
		})).Return(nil).Once()

		err := scheduler.Schedule(ctx, domain.JobTypeReminderEmail, payload, runAt)

		require.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("unknown job type rejected", func(t *testing.T) {
		jobRepo := &mockJobRepository{}
		scheduler := NewSchedulerUseCase(jobRepo)

		err := scheduler.Schedule(ctx, domain.JobType("bogus"), nil, time.Now())

		assert.Error(t, err)
		jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
