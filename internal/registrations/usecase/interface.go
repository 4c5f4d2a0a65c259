// Package usecase defines business logic interfaces for registration intents,
// free RSVPs and the admin registration surface.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	eventDomain "github.com/courtside/registration/internal/events/domain"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// RegistrationRepository defines persistence operations for registrations.
// Implementations must support transaction-aware operations via context
// propagation. Email arguments must be normalized by the caller.
type RegistrationRepository interface {
	// Create stores a new registration in the repository.
	Create(ctx context.Context, registration *registrationDomain.Registration) error

	// Get retrieves a registration by ID. Returns ErrRegistrationNotFound if
	// not found.
	Get(ctx context.Context, registrationID uuid.UUID) (*registrationDomain.Registration, error)

	// GetPaidByEventAndEmail retrieves the paid registration for an
	// (event, email) pair. Returns ErrRegistrationNotFound if none exists.
	GetPaidByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*registrationDomain.Registration, error)

	// CountAttending counts registrations occupying spots for an event.
	CountAttending(ctx context.Context, eventID uuid.UUID) (int, error)

	// DeletePending removes pending rows for an (event, email) pair.
	DeletePending(ctx context.Context, eventID uuid.UUID, email string) error

	// UpsertPaid inserts a paid registration or updates the existing paid row
	// for the (event_id, email) pair, returning the surviving row.
	UpsertPaid(ctx context.Context, registration *registrationDomain.Registration) (*registrationDomain.Registration, error)

	// Update modifies an existing registration.
	Update(ctx context.Context, registration *registrationDomain.Registration) error

	// ListByEvent retrieves registrations for an event with pagination.
	ListByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]*registrationDomain.Registration, error)

	// DeleteStalePending removes pending rows created before the cutoff and
	// returns the number of rows swept.
	DeleteStalePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// EventRepository is the slice of event persistence the registration flows
// need.
type EventRepository interface {
	// Get retrieves an event by ID. Returns ErrEventNotFound if not found.
	Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error)
}

// IntentUseCase defines the public registration flows.
type IntentUseCase interface {
	// CreateIntent validates admission for a priced event and records a
	// pending registration that a checkout session will reference.
	CreateIntent(ctx context.Context, eventID uuid.UUID, contact *registrationDomain.Contact) (*registrationDomain.Registration, error)

	// FinalizeFree completes a free RSVP, upserting straight to paid.
	// Calling it again for the same (event, email) returns the existing
	// registration.
	FinalizeFree(ctx context.Context, eventID uuid.UUID, contact *registrationDomain.Contact) (*registrationDomain.Registration, error)

	// SweepPending deletes pending registrations older than the TTL and
	// returns the number of rows swept.
	SweepPending(ctx context.Context, olderThan time.Duration) (int64, error)
}

// AdminUseCase defines the staff-facing registration operations.
type AdminUseCase interface {
	// ListByEvent retrieves registrations for an event with pagination.
	ListByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]*registrationDomain.Registration, error)

	// MarkWalkUp records an on-site registration, subject to capacity, and
	// writes an audit entry naming the acting staff member.
	MarkWalkUp(ctx context.Context, eventID uuid.UUID, contact *registrationDomain.Contact, actor string) (*registrationDomain.Registration, error)
}
