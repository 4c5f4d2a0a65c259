// Package domain defines the payment domain model. A payment tracks the money
// side of a registration: the provider checkout session, the confirmed charge
// and any refunds against it. Amounts are integer cents; refunds are
// append-only and refunded_cents can only grow.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the settlement state of a payment.
type Status string

const (
	// StatusRequiresPayment is a payment whose checkout session is open.
	StatusRequiresPayment Status = "requires_payment"

	// StatusPaid is a confirmed payment.
	StatusPaid Status = "paid"

	// StatusFailed is a payment whose checkout failed or expired.
	StatusFailed Status = "failed"

	// StatusRefunded is a payment refunded in full.
	StatusRefunded Status = "refunded"

	// StatusPartiallyRefunded is a payment with a partial refund against it.
	StatusPartiallyRefunded Status = "partially_refunded"
)

// Valid reports whether the status is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusRequiresPayment, StatusPaid, StatusFailed,
		StatusRefunded, StatusPartiallyRefunded:
		return true
	}
	return false
}

// Payment represents the money side of a registration.
type Payment struct {
	ID                      uuid.UUID
	RegistrationID          uuid.UUID
	EventID                 uuid.UUID
	ProviderSessionID       string
	ProviderPaymentIntentID string
	AmountCents             int64
	RefundedCents           int64
	Currency                string
	Status                  Status
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// RemainingCents returns the refundable balance.
func (p *Payment) RemainingCents() int64 {
	return p.AmountCents - p.RefundedCents
}

// StatusForRefundedCents derives the settlement status after a refund brings
// the running total to refundedCents.
func (p *Payment) StatusForRefundedCents(refundedCents int64) Status {
	if refundedCents >= p.AmountCents {
		return StatusRefunded
	}
	if refundedCents > 0 {
		return StatusPartiallyRefunded
	}
	return p.Status
}

// Refund records money returned against a payment. Rows are append-only; the
// running total lives on the payment as refunded_cents.
type Refund struct {
	ID               uuid.UUID
	PaymentID        uuid.UUID
	ProviderRefundID string
	AmountCents      int64
	Reason           string
	ActorID          *uuid.UUID
	CreatedAt        time.Time
}

// WebhookEvent is the dedupe record for a delivered provider event. The
// (provider, provider_event_id) pair is unique; a redelivered event hits the
// conflict and is recognized as a replay.
type WebhookEvent struct {
	ID              uuid.UUID
	Provider        string
	ProviderEventID string
	EventType       string
	ReceivedAt      time.Time
}
