// Package domain defines the scheduled job model. Jobs are durable rows, not
// in-memory timers: a reminder scheduled for tomorrow survives restarts and is
// claimed by whichever runner polls first.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobType identifies what a scheduled job does when it runs.
type JobType string

const (
	// JobTypeReminderEmail sends an event reminder to a registered participant.
	JobTypeReminderEmail JobType = "reminder_email"

	// JobTypeReceiptEmail sends a payment receipt after checkout completes.
	JobTypeReceiptEmail JobType = "receipt_email"
)

// Valid reports whether the job type is one of the known types.
func (t JobType) Valid() bool {
	return t == JobTypeReminderEmail || t == JobTypeReceiptEmail
}

// Status represents the execution state of a scheduled job.
type Status string

const (
	// StatusScheduled is a job waiting for its run_at time.
	StatusScheduled Status = "scheduled"

	// StatusRunning is a job claimed by a runner.
	StatusRunning Status = "running"

	// StatusCompleted is a job that executed successfully.
	StatusCompleted Status = "completed"

	// StatusFailed is a job that exhausted its attempts. Terminal.
	StatusFailed Status = "failed"
)

// ScheduledJob is one unit of deferred work.
type ScheduledJob struct {
	ID        uuid.UUID
	JobType   JobType
	Payload   map[string]any
	RunAt     time.Time
	Status    Status
	Attempts  int
	LastError *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
