// Package dto provides data transfer objects for event API requests and responses.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	eventDomain "github.com/courtside/registration/internal/events/domain"
	customValidation "github.com/courtside/registration/internal/validation"
)

// CreateEventRequest contains the parameters for creating a new event.
type CreateEventRequest struct {
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             time.Time  `json:"ends_at"`
	Capacity           *int       `json:"capacity"`
	PriceCents         int64      `json:"price_cents"`
	Currency           string     `json:"currency"`
	RegistrationCutoff *time.Time `json:"registration_cutoff"`
}

// Validate checks if the create event request is valid.
func (r *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Location,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required),
		validation.Field(&r.PriceCents, validation.Min(0)),
		validation.Field(&r.Currency,
			validation.Required,
			customValidation.CurrencyCode,
		),
	)
}

// ToInput converts the request to a domain input.
func (r *CreateEventRequest) ToInput() *eventDomain.CreateEventInput {
	return &eventDomain.CreateEventInput{
		Name:               r.Name,
		Location:           r.Location,
		StartsAt:           r.StartsAt.UTC(),
		EndsAt:             r.EndsAt.UTC(),
		Capacity:           r.Capacity,
		PriceCents:         r.PriceCents,
		Currency:           r.Currency,
		RegistrationCutoff: r.RegistrationCutoff,
	}
}

// UpdateEventRequest contains the mutable fields of an event.
type UpdateEventRequest struct {
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             time.Time  `json:"ends_at"`
	Capacity           *int       `json:"capacity"`
	PriceCents         int64      `json:"price_cents"`
	Currency           string     `json:"currency"`
	RegistrationCutoff *time.Time `json:"registration_cutoff"`
}

// Validate checks if the update event request is valid.
func (r *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Location,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required),
		validation.Field(&r.PriceCents, validation.Min(0)),
		validation.Field(&r.Currency,
			validation.Required,
			customValidation.CurrencyCode,
		),
	)
}

// ToInput converts the request to a domain input.
func (r *UpdateEventRequest) ToInput() *eventDomain.UpdateEventInput {
	return &eventDomain.UpdateEventInput{
		Name:               r.Name,
		Location:           r.Location,
		StartsAt:           r.StartsAt.UTC(),
		EndsAt:             r.EndsAt.UTC(),
		Capacity:           r.Capacity,
		PriceCents:         r.PriceCents,
		Currency:           r.Currency,
		RegistrationCutoff: r.RegistrationCutoff,
	}
}

// UpdateEventStatusRequest contains the target status for a lifecycle change.
type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks if the status change request is valid.
func (r *UpdateEventStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
