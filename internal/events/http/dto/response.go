package dto

import (
	"time"

	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             time.Time  `json:"ends_at"`
	Capacity           *int       `json:"capacity,omitempty"`
	PriceCents         int64      `json:"price_cents"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	RegistrationCutoff *time.Time `json:"registration_cutoff,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MapEventToResponse converts a domain event to an API response.
func MapEventToResponse(event *eventDomain.Event) EventResponse {
	return EventResponse{
		ID:                 event.ID.String(),
		Name:               event.Name,
		Location:           event.Location,
		StartsAt:           event.StartsAt,
		EndsAt:             event.EndsAt,
		Capacity:           event.Capacity,
		PriceCents:         event.PriceCents,
		Currency:           event.Currency,
		Status:             string(event.Status),
		RegistrationCutoff: event.RegistrationCutoff,
		CreatedAt:          event.CreatedAt,
		UpdatedAt:          event.UpdatedAt,
	}
}

// ListEventsResponse represents a paginated list of events in API responses.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list API response.
func MapEventsToListResponse(events []*eventDomain.Event) ListEventsResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapEventToResponse(event))
	}
	return ListEventsResponse{Data: responses}
}
