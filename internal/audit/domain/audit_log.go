// Package domain defines the audit trail domain model. Every money-moving or
// capacity-affecting decision leaves an append-only entry so that finance can
// reconstruct what happened without reading application logs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action classifies an auditable event.
type Action string

const (
	// ActionPaymentConfirmed records a registration paid via provider checkout.
	ActionPaymentConfirmed Action = "payment_confirmed"

	// ActionPaymentFailed records a failed or expired checkout session.
	ActionPaymentFailed Action = "payment_failed"

	// ActionRefundRecorded records a refund reported by the provider webhook.
	ActionRefundRecorded Action = "refund_recorded"

	// ActionRefundIssued records a refund initiated by an administrative actor.
	ActionRefundIssued Action = "refund_issued"

	// ActionRegistrationWalkup records an on-site walk-up registration.
	ActionRegistrationWalkup Action = "registration_walkup"
)

// Valid reports whether the action is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPaymentConfirmed, ActionPaymentFailed, ActionRefundRecorded,
		ActionRefundIssued, ActionRegistrationWalkup:
		return true
	}
	return false
}

// Entry is a single append-only audit record. Actor is the name of the
// administrative actor that triggered the event, or "system" for
// webhook-driven and scheduled events.
type Entry struct {
	ID         uuid.UUID
	Actor      string
	Action     Action
	EntityType string
	EntityID   uuid.UUID
	Detail     map[string]any
	CreatedAt  time.Time
}
