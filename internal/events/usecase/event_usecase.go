// Package usecase implements business logic orchestration for event management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/courtside/registration/internal/errors"
	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// eventUseCase implements EventUseCase for managing events.
type eventUseCase struct {
	eventRepo EventRepository
}

// Create stores a new event in draft status. Generates a UUIDv7 identifier.
func (e *eventUseCase) Create(
	ctx context.Context,
	input *eventDomain.CreateEventInput,
) (*eventDomain.Event, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "ends_at must be after starts_at")
	}
	if input.PriceCents < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "price_cents must not be negative")
	}
	if input.Capacity != nil && *input.Capacity < 1 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "capacity must be positive")
	}

	now := time.Now().UTC()
	event := &eventDomain.Event{
		ID:                 uuid.Must(uuid.NewV7()),
		Name:               input.Name,
		Location:           input.Location,
		StartsAt:           input.StartsAt,
		EndsAt:             input.EndsAt,
		Capacity:           input.Capacity,
		PriceCents:         input.PriceCents,
		Currency:           input.Currency,
		Status:             eventDomain.StatusDraft,
		RegistrationCutoff: input.RegistrationCutoff,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := e.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Get retrieves an event by ID.
func (e *eventUseCase) Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error) {
	return e.eventRepo.Get(ctx, eventID)
}

// ListPublished retrieves published events for the public site.
func (e *eventUseCase) ListPublished(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error) {
	status := eventDomain.StatusPublished
	return e.eventRepo.List(ctx, offset, limit, &status)
}

// List retrieves events of any status for the admin console.
func (e *eventUseCase) List(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error) {
	return e.eventRepo.List(ctx, offset, limit, nil)
}

// Update modifies an event's mutable fields. The status and creation timestamp
// are preserved; status changes go through UpdateStatus.
func (e *eventUseCase) Update(
	ctx context.Context,
	eventID uuid.UUID,
	input *eventDomain.UpdateEventInput,
) (*eventDomain.Event, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "ends_at must be after starts_at")
	}
	if input.PriceCents < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "price_cents must not be negative")
	}

	event, err := e.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.Name = input.Name
	event.Location = input.Location
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	event.Capacity = input.Capacity
	event.PriceCents = input.PriceCents
	event.Currency = input.Currency
	event.RegistrationCutoff = input.RegistrationCutoff
	event.UpdatedAt = time.Now().UTC()

	if err := e.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// UpdateStatus moves an event through its lifecycle, enforcing the allowed
// transitions. sold_out is only ever set here by an administrator; the
// capacity check never persists it.
func (e *eventUseCase) UpdateStatus(
	ctx context.Context,
	eventID uuid.UUID,
	status eventDomain.Status,
) (*eventDomain.Event, error) {
	if !status.Valid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown event status "+string(status))
	}

	event, err := e.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.Status.CanTransition(status) {
		return nil, eventDomain.ErrInvalidStatusTransition
	}

	event.Status = status
	event.UpdatedAt = time.Now().UTC()

	if err := e.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// NewEventUseCase creates a new EventUseCase with the provided dependencies.
func NewEventUseCase(eventRepo EventRepository) EventUseCase {
	return &eventUseCase{eventRepo: eventRepo}
}
