// Package dto provides data transfer objects for payment API requests and
// responses.
package dto

import (
	validation "github.com/jellydator/validation"

	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
	customValidation "github.com/courtside/registration/internal/validation"
)

// CheckoutRequest contains the parameters for starting a paid registration.
type CheckoutRequest struct {
	EventID  string `json:"event_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TeamName string `json:"team_name"`
}

// Validate checks if the checkout request is valid.
func (r *CheckoutRequest) Validate() error {
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
func (r *CheckoutRequest) ToContact() *registrationDomain.Contact {
	return &registrationDomain.Contact{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		TeamName: r.TeamName,
	}
}

// RefundRequest contains the parameters for issuing a refund.
type RefundRequest struct {
	// AmountCents is the amount to refund; omit for the remaining balance.
	AmountCents *int64 `json:"amount_cents"`
	Reason      string `json:"reason"`
}

// Validate checks if the refund request is valid.
func (r *RefundRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AmountCents, validation.Min(int64(1))),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}
