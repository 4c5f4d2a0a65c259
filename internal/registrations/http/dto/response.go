package dto

import (
	"time"

	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// RegistrationResponse represents a registration in API responses.
type RegistrationResponse struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	TeamName      string    `json:"team_name,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	PaymentID     *string   `json:"payment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapRegistrationToResponse converts a domain registration to an API response.
func MapRegistrationToResponse(registration *registrationDomain.Registration) RegistrationResponse {
	var paymentID *string
	if registration.PaymentID != nil {
		id := registration.PaymentID.String()
		paymentID = &id
	}
	return RegistrationResponse{
		ID:            registration.ID.String(),
		EventID:       registration.EventID.String(),
		FullName:      registration.FullName,
		Email:         registration.Email,
		Phone:         registration.Phone,
		TeamName:      registration.TeamName,
		PaymentStatus: string(registration.PaymentStatus),
		PaymentID:     paymentID,
		CreatedAt:     registration.CreatedAt,
		UpdatedAt:     registration.UpdatedAt,
	}
}

// ListRegistrationsResponse represents a paginated list of registrations in
// API responses.
type ListRegistrationsResponse struct {
	Data []RegistrationResponse `json:"data"`
}

// MapRegistrationsToListResponse converts domain registrations to a list API
// response.
func MapRegistrationsToListResponse(
	registrations []*registrationDomain.Registration,
) ListRegistrationsResponse {
	responses := make([]RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		responses = append(responses, MapRegistrationToResponse(registration))
	}
	return ListRegistrationsResponse{Data: responses}
}
