// Package dto provides data transfer objects for registration API requests
// and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
	customValidation "github.com/courtside/registration/internal/validation"
)

// FreeRegistrationRequest contains the parameters for a free event RSVP.
type FreeRegistrationRequest struct {
	EventID  string `json:"event_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TeamName string `json:"team_name"`
}

// Validate checks if the free registration request is valid.
func (r *FreeRegistrationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EventID, validation.Required),
		validation.Field(&r.FullName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Phone, customValidation.Phone),
		validation.Field(&r.TeamName, validation.Length(0, 255)),
	)
}

// ToContact converts the request to domain contact details.
func (r *FreeRegistrationRequest) ToContact() *registrationDomain.Contact {
	return &registrationDomain.Contact{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		TeamName: r.TeamName,
	}
}

// WalkUpRequest contains the participant details for an on-site registration
// recorded by staff.
type WalkUpRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TeamName string `json:"team_name"`
}

// Validate checks if the walk-up request is valid.
func (r *WalkUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FullName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Phone, customValidation.Phone),
		validation.Field(&r.TeamName, validation.Length(0, 255)),
	)
}

// ToContact converts the request to domain contact details.
func (r *WalkUpRequest) ToContact() *registrationDomain.Contact {
	return &registrationDomain.Contact{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		TeamName: r.TeamName,
	}
}
