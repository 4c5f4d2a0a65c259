package dto

import (
	"time"

	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	paymentUseCase "github.com/courtside/registration/internal/payments/usecase"
)

// CheckoutResponse contains the provider checkout session for the client to
// redirect to.
type CheckoutResponse struct {
	URL            string `json:"url"`
	SessionID      string `json:"session_id"`
	RegistrationID string `json:"registration_id"`
}

// MapCheckoutToResponse converts a checkout result to an API response.
func MapCheckoutToResponse(output *paymentUseCase.CheckoutOutput) CheckoutResponse {
	return CheckoutResponse{
		URL:            output.URL,
		SessionID:      output.SessionID,
		RegistrationID: output.RegistrationID.String(),
	}
}

// RefundResponse represents an issued refund in API responses.
type RefundResponse struct {
	ID               string    `json:"id"`
	PaymentID        string    `json:"payment_id"`
	ProviderRefundID string    `json:"provider_refund_id"`
	AmountCents      int64     `json:"amount_cents"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// MapRefundToResponse converts a domain refund to an API response.
func MapRefundToResponse(refund *paymentDomain.Refund) RefundResponse {
	return RefundResponse{
		ID:               refund.ID.String(),
		PaymentID:        refund.PaymentID.String(),
		ProviderRefundID: refund.ProviderRefundID,
		AmountCents:      refund.AmountCents,
		Reason:           refund.Reason,
		CreatedAt:        refund.CreatedAt,
	}
}

// WebhookAckResponse acknowledges a webhook delivery.
type WebhookAckResponse struct {
	Received bool `json:"received"`
}
