// Package usecase defines business logic interfaces for checkout, webhook
// reconciliation and refunds.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	eventDomain "github.com/courtside/registration/internal/events/domain"
	jobDomain "github.com/courtside/registration/internal/jobs/domain"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// PaymentRepository defines persistence operations for payments. The
// refunded_cents moves only through the two atomic conditional updates.
type PaymentRepository interface {
	// Create stores a new payment in the repository.
	Create(ctx context.Context, payment *paymentDomain.Payment) error

	// Get retrieves a payment by ID. Returns ErrPaymentNotFound if not found.
	Get(ctx context.Context, paymentID uuid.UUID) (*paymentDomain.Payment, error)

	// GetByProviderSessionID retrieves a payment by its checkout session id.
	GetByProviderSessionID(ctx context.Context, sessionID string) (*paymentDomain.Payment, error)

	// GetByProviderPaymentIntentID retrieves a payment by its provider payment
	// intent id.
	GetByProviderPaymentIntentID(ctx context.Context, paymentIntentID string) (*paymentDomain.Payment, error)

	// MarkPaid moves the payment for a checkout session to paid and records
	// the provider payment intent id.
	MarkPaid(ctx context.Context, sessionID, paymentIntentID string) (*paymentDomain.Payment, error)

	// MarkFailed moves the open payment for a registration to failed. Returns
	// ErrPaymentNotFound when no payment is awaiting checkout.
	MarkFailed(ctx context.Context, registrationID uuid.UUID, paymentIntentID string) (*paymentDomain.Payment, error)

	// IncrementRefunded atomically adds to refunded_cents, bounded by the
	// original amount. Returns ErrRefundExceedsBalance when the guard fails.
	IncrementRefunded(ctx context.Context, paymentID uuid.UUID, amountCents int64) (*paymentDomain.Payment, error)

	// SetRefundedTotal moves refunded_cents monotonically to the provider's
	// reported running total. applied is false for stale or replayed totals.
	SetRefundedTotal(ctx context.Context, paymentID uuid.UUID, totalCents int64) (*paymentDomain.Payment, bool, error)
}

// RefundRepository defines persistence operations for refund records.
type RefundRepository interface {
	// Create stores a new refund record in the repository.
	Create(ctx context.Context, refund *paymentDomain.Refund) error

	// ListByPayment retrieves refunds for a payment oldest first.
	ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]*paymentDomain.Refund, error)
}

// WebhookEventRepository is the webhook dedupe log.
type WebhookEventRepository interface {
	// Insert records a delivered webhook event. Returns false when the event
	// was already recorded.
	Insert(ctx context.Context, event *paymentDomain.WebhookEvent) (bool, error)
}

// RegistrationRepository is the slice of registration persistence the payment
// flows need.
type RegistrationRepository interface {
	// Get retrieves a registration by ID.
	Get(ctx context.Context, registrationID uuid.UUID) (*registrationDomain.Registration, error)

	// GetPaidByEventAndEmail retrieves the paid registration holding the
	// (event, email) seat. Returns ErrRegistrationNotFound if none exists.
	GetPaidByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*registrationDomain.Registration, error)

	// Update modifies an existing registration.
	Update(ctx context.Context, registration *registrationDomain.Registration) error
}

// EventRepository is the slice of event persistence the payment flows need.
type EventRepository interface {
	// Get retrieves an event by ID.
	Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error)
}

// IntentCreator starts a pending registration before the checkout session is
// brokered.
type IntentCreator interface {
	CreateIntent(ctx context.Context, eventID uuid.UUID, contact *registrationDomain.Contact) (*registrationDomain.Registration, error)
}

// JobScheduler enqueues scheduled jobs (reminders, receipts).
type JobScheduler interface {
	Schedule(ctx context.Context, jobType jobDomain.JobType, payload map[string]any, runAt time.Time) error
}

// SignatureVerifier checks webhook payload signatures.
type SignatureVerifier interface {
	Verify(payload []byte, header string, now time.Time) error
}

// CheckoutOutput is the result of brokering a checkout session.
type CheckoutOutput struct {
	URL            string
	SessionID      string
	PaymentID      uuid.UUID
	RegistrationID uuid.UUID
}

// CheckoutUseCase brokers provider checkout sessions for priced events.
type CheckoutUseCase interface {
	// CreateSession validates admission, records a pending registration,
	// creates a provider checkout session and stores the payment in
	// requires_payment. A provider failure leaves no payment row.
	CreateSession(ctx context.Context, eventID uuid.UUID, contact *registrationDomain.Contact) (*CheckoutOutput, error)
}

// WebhookUseCase reconciles provider webhook deliveries.
type WebhookUseCase interface {
	// Process verifies, parses and dispatches one webhook delivery. The
	// dedupe row commits in the same transaction as the ledger effects, so a
	// failed reconciliation returns an error and the provider's retry counts
	// as a first delivery again. Email and scheduling failures are logged and
	// swallowed.
	Process(ctx context.Context, payload []byte, signatureHeader string) error
}

// IssueRefundInput contains the parameters for an administrative refund.
type IssueRefundInput struct {
	PaymentID uuid.UUID
	// AmountCents is the refund amount; nil means the remaining balance.
	AmountCents *int64
	Reason      string
	Actor       *authDomain.Actor
}

// RefundUseCase issues administrative refunds.
type RefundUseCase interface {
	// IssueRefund calls the provider first, then records the refund, moves
	// refunded_cents, downgrades the registration on a full refund and writes
	// an audit entry.
	IssueRefund(ctx context.Context, input IssueRefundInput) (*paymentDomain.Refund, error)
}
