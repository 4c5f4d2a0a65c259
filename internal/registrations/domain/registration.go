// Package domain defines the registration domain model. A registration ties a
// participant's contact details to an event; its payment status is the single
// source of truth for who actually holds a spot.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks how a registration relates to money.
//
// Only "paid" counts toward capacity and duplicate checks. "pending" rows are
// short-lived placeholders created while a checkout session is open and are
// swept after the TTL.
type PaymentStatus string

const (
	// PaymentStatusPending is a registration awaiting checkout completion.
	PaymentStatusPending PaymentStatus = "pending"

	// PaymentStatusPaid is a confirmed registration holding a spot.
	PaymentStatusPaid PaymentStatus = "paid"

	// PaymentStatusUnpaid is a registration whose checkout never completed.
	PaymentStatusUnpaid PaymentStatus = "unpaid"

	// PaymentStatusRefunded is a fully refunded registration.
	PaymentStatusRefunded PaymentStatus = "refunded"

	// PaymentStatusFailed is a registration whose payment attempt failed.
	PaymentStatusFailed PaymentStatus = "failed"

	// PaymentStatusWalkUp is an on-site registration recorded by staff.
	PaymentStatusWalkUp PaymentStatus = "walk-up"
)

// Valid reports whether the payment status is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusUnpaid,
		PaymentStatusRefunded, PaymentStatusFailed, PaymentStatusWalkUp:
		return true
	}
	return false
}

// CountsAsAttending reports whether the registration holds a spot.
func (s PaymentStatus) CountsAsAttending() bool {
	return s == PaymentStatusPaid || s == PaymentStatusWalkUp
}

// Registration represents a participant's claim on an event spot.
type Registration struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	FullName      string
	Email         string
	Phone         string
	TeamName      string
	PaymentStatus PaymentStatus
	PaymentID     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contact carries the participant details captured at registration time.
// Email must be normalized (lowercase, trimmed) before it reaches the
// repositories; the uniqueness contract is keyed on it.
type Contact struct {
	FullName string
	Email    string
	Phone    string
	TeamName string
}
