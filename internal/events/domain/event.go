// Package domain defines the tournament event domain model. An event is the
// unit everything else hangs off: registrations, payments and reminder jobs
// all reference an event.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an event.
type Status string

const (
	// StatusDraft is an event being prepared, not visible to the public.
	StatusDraft Status = "draft"

	// StatusPublished is an event open for registration.
	StatusPublished Status = "published"

	// StatusSoldOut is an event explicitly marked full by an administrator.
	// Capacity admission never persists this status on its own.
	StatusSoldOut Status = "sold_out"

	// StatusClosed is an event whose registration window has been closed.
	StatusClosed Status = "closed"

	// StatusCompleted is an event that has taken place.
	StatusCompleted Status = "completed"

	// StatusCancelled is an event that was called off.
	StatusCancelled Status = "cancelled"
)

// Valid reports whether the status is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusSoldOut, StatusClosed,
		StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions holds the allowed lifecycle moves. Terminal statuses
// (completed, cancelled) have no outgoing transitions.
var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusPublished, StatusCancelled},
	StatusPublished: {StatusSoldOut, StatusClosed, StatusCompleted, StatusCancelled},
	StatusSoldOut:   {StatusPublished, StatusClosed, StatusCompleted, StatusCancelled},
	StatusClosed:    {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from the current status to the target
// status is allowed.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Event represents a tournament occurrence.
type Event struct {
	ID                 uuid.UUID
	Name               string
	Location           string
	StartsAt           time.Time
	EndsAt             time.Time
	Capacity           *int
	PriceCents         int64
	Currency           string
	Status             Status
	RegistrationCutoff *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsFree reports whether the event requires no payment.
func (e *Event) IsFree() bool {
	return e.PriceCents == 0
}

// AcceptsRegistrations reports whether a new registration may be started at
// the given instant. Only published events inside the cutoff window accept
// registrations; explicit sold_out blocks new intents.
func (e *Event) AcceptsRegistrations(now time.Time) bool {
	if e.Status != StatusPublished {
		return false
	}
	if e.RegistrationCutoff != nil && !now.Before(*e.RegistrationCutoff) {
		return false
	}
	return now.Before(e.StartsAt)
}

// CreateEventInput contains the parameters for creating a new event.
type CreateEventInput struct {
	Name               string
	Location           string
	StartsAt           time.Time
	EndsAt             time.Time
	Capacity           *int
	PriceCents         int64
	Currency           string
	RegistrationCutoff *time.Time
}

// UpdateEventInput contains the mutable fields of an event. Status changes go
// through UpdateStatus so transition rules stay in one place.
type UpdateEventInput struct {
	Name               string
	Location           string
	StartsAt           time.Time
	EndsAt             time.Time
	Capacity           *int
	PriceCents         int64
	Currency           string
	RegistrationCutoff *time.Time
}
