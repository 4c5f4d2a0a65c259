// Package provider implements the payment provider integration: a hosted
// checkout client and webhook signature verification for a Stripe-style API.
package provider

import (
	"context"

	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// Name identifies the provider in the webhook dedupe log and payment rows.
const Name = "stripe"

// CheckoutSessionInput contains the parameters for a hosted checkout session.
type CheckoutSessionInput struct {
	AmountCents   int64
	Currency      string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      paymentDomain.CheckoutMetadata
}

// CheckoutSession is a created hosted checkout session.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// RefundInput contains the parameters for a provider refund.
type RefundInput struct {
	PaymentIntentID string
	AmountCents     int64
	Reason          string
}

// Refund is a created provider refund.
type Refund struct {
	RefundID string
	Status   string
}

// Client is the payment provider API surface the use cases depend on.
// Implementations return errors wrapping apperrors.ErrUnavailable for
// transport and provider-side failures so handlers map them to 502.
type Client interface {
	// CreateCheckoutSession creates a hosted checkout session and returns its
	// id and redirect URL.
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)

	// CreateRefund refunds part or all of a confirmed payment.
	CreateRefund(ctx context.Context, input RefundInput) (*Refund, error)
}
