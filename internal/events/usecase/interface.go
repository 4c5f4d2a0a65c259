// Package usecase defines business logic interfaces for event management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// EventRepository defines persistence operations for events.
// Implementations must support transaction-aware operations via context propagation.
type EventRepository interface {
	// Create stores a new event in the repository.
	Create(ctx context.Context, event *eventDomain.Event) error

	// Get retrieves an event by ID. Returns ErrEventNotFound if not found.
	Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error)

	// List retrieves events ordered by starts_at ascending with pagination
	// and an optional status filter (nil means all statuses).
	List(ctx context.Context, offset, limit int, status *eventDomain.Status) ([]*eventDomain.Event, error)

	// Update modifies an existing event.
	Update(ctx context.Context, event *eventDomain.Event) error
}

// EventUseCase defines business logic operations for managing events.
type EventUseCase interface {
	// Create stores a new event in draft status.
	Create(ctx context.Context, input *eventDomain.CreateEventInput) (*eventDomain.Event, error)

	// Get retrieves an event by ID. Returns ErrEventNotFound if not found.
	Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error)

	// ListPublished retrieves published events for the public site.
	ListPublished(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error)

	// List retrieves events of any status for the admin console.
	List(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error)

	// Update modifies an event's mutable fields. Status is not touched.
	Update(ctx context.Context, eventID uuid.UUID, input *eventDomain.UpdateEventInput) (*eventDomain.Event, error)

	// UpdateStatus moves an event through its lifecycle. Returns
	// ErrInvalidStatusTransition when the move is not allowed.
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status eventDomain.Status) (*eventDomain.Event, error)
}
