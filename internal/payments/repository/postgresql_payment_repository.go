// Package repository provides data persistence for payments, refunds and the
// webhook dedupe log. Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// PostgreSQLPaymentRepository implements payment persistence for PostgreSQL.
// refunded_cents is only ever moved by the atomic conditional updates below;
// no code path reads a balance and writes it back.
type PostgreSQLPaymentRepository struct {
	db *sql.DB
}

// NewPostgreSQLPaymentRepository creates a new PostgreSQLPaymentRepository.
func NewPostgreSQLPaymentRepository(db *sql.DB) *PostgreSQLPaymentRepository {
	return &PostgreSQLPaymentRepository{db: db}
}

const pgPaymentColumns = `id, registration_id, event_id, provider, provider_session_id,
				  provider_payment_intent_id, amount_cents, refunded_cents, currency,
				  status, created_at, updated_at`

// Create inserts a new payment.
func (r *PostgreSQLPaymentRepository) Create(
	ctx context.Context,
	payment *paymentDomain.Payment,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO payments (id, registration_id, event_id, provider, provider_session_id,
			  provider_payment_intent_id, amount_cents, refunded_cents, currency,
			  status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.RegistrationID,
		payment.EventID,
		"stripe",
		payment.ProviderSessionID,
		payment.ProviderPaymentIntentID,
		payment.AmountCents,
		payment.RefundedCents,
		payment.Currency,
		string(payment.Status),
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create payment")
	}
	return nil
}

// Get retrieves a payment by ID. Returns ErrPaymentNotFound if it doesn't
// exist.
func (r *PostgreSQLPaymentRepository) Get(
	ctx context.Context,
	paymentID uuid.UUID,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgPaymentColumns + ` FROM payments WHERE id = $1`

	return scanPGPayment(querier.QueryRowContext(ctx, query, paymentID))
}

// GetByProviderSessionID retrieves a payment by its checkout session id.
func (r *PostgreSQLPaymentRepository) GetByProviderSessionID(
	ctx context.Context,
	sessionID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgPaymentColumns + ` FROM payments WHERE provider_session_id = $1`

	return scanPGPayment(querier.QueryRowContext(ctx, query, sessionID))
}

// GetByProviderPaymentIntentID retrieves a payment by its provider payment
// intent id.
func (r *PostgreSQLPaymentRepository) GetByProviderPaymentIntentID(
	ctx context.Context,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgPaymentColumns + `
			  FROM payments WHERE provider_payment_intent_id = $1`

	return scanPGPayment(querier.QueryRowContext(ctx, query, paymentIntentID))
}

// MarkPaid moves the payment for a checkout session to paid and records the
// provider payment intent id. The write is keyed on provider_session_id so a
// redelivered completed event lands on the same row and stays idempotent.
func (r *PostgreSQLPaymentRepository) MarkPaid(
	ctx context.Context,
	sessionID, paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments
			  SET status = 'paid',
			      provider_payment_intent_id = $1,
			      updated_at = NOW()
			  WHERE provider_session_id = $2
			  RETURNING ` + pgPaymentColumns

	return scanPGPayment(querier.QueryRowContext(ctx, query, paymentIntentID, sessionID))
}

// MarkFailed moves the open payment for a registration to failed and records
// the provider payment intent id. Only a payment still awaiting checkout can
// fail, so a redelivered failure event matches no row and returns
// ErrPaymentNotFound.
func (r *PostgreSQLPaymentRepository) MarkFailed(
	ctx context.Context,
	registrationID uuid.UUID,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments
			  SET status = 'failed',
			      provider_payment_intent_id = $1,
			      updated_at = NOW()
			  WHERE registration_id = $2 AND status = 'requires_payment'
			  RETURNING ` + pgPaymentColumns

	return scanPGPayment(querier.QueryRowContext(ctx, query, paymentIntentID, registrationID))
}

// IncrementRefunded atomically adds amountCents to refunded_cents and derives
// the settlement status, refusing any increment that would exceed the original
// amount. Returns ErrRefundExceedsBalance when the guard fails.
func (r *PostgreSQLPaymentRepository) IncrementRefunded(
	ctx context.Context,
	paymentID uuid.UUID,
	amountCents int64,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments
			  SET refunded_cents = refunded_cents + $1,
			      status = CASE
			          WHEN refunded_cents + $1 >= amount_cents THEN 'refunded'
			          ELSE 'partially_refunded'
			      END,
			      updated_at = NOW()
			  WHERE id = $2 AND refunded_cents + $1 <= amount_cents
			  RETURNING ` + pgPaymentColumns

	payment, err := scanPGPayment(querier.QueryRowContext(ctx, query, amountCents, paymentID))
	if err != nil {
		if errors.Is(err, paymentDomain.ErrPaymentNotFound) {
			// No row matched: either the payment does not exist or the guard
			// rejected the increment. Disambiguate for the caller.
			if _, getErr := r.Get(ctx, paymentID); getErr != nil {
				return nil, getErr
			}
			return nil, paymentDomain.ErrRefundExceedsBalance
		}
		return nil, err
	}
	return payment, nil
}

// SetRefundedTotal moves refunded_cents to the provider's reported running
// total. The update is monotonic: a stale or replayed total at or below the
// current value matches no row and applied is false.
func (r *PostgreSQLPaymentRepository) SetRefundedTotal(
	ctx context.Context,
	paymentID uuid.UUID,
	totalCents int64,
) (*paymentDomain.Payment, bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments
			  SET refunded_cents = LEAST($1, amount_cents),
			      status = CASE
			          WHEN $1 >= amount_cents THEN 'refunded'
			          ELSE 'partially_refunded'
			      END,
			      updated_at = NOW()
			  WHERE id = $2 AND refunded_cents < $1
			  RETURNING ` + pgPaymentColumns

	payment, err := scanPGPayment(querier.QueryRowContext(ctx, query, totalCents, paymentID))
	if err != nil {
		if errors.Is(err, paymentDomain.ErrPaymentNotFound) {
			payment, getErr := r.Get(ctx, paymentID)
			if getErr != nil {
				return nil, false, getErr
			}
			return payment, false, nil
		}
		return nil, false, err
	}
	return payment, true, nil
}

// scanPGPayment scans a single payment row, mapping sql.ErrNoRows to
// ErrPaymentNotFound.
func scanPGPayment(row *sql.Row) (*paymentDomain.Payment, error) {
	var payment paymentDomain.Payment
	var provider, status string

	err := row.Scan(
		&payment.ID,
		&payment.RegistrationID,
		&payment.EventID,
		&provider,
		&payment.ProviderSessionID,
		&payment.ProviderPaymentIntentID,
		&payment.AmountCents,
		&payment.RefundedCents,
		&payment.Currency,
		&status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, paymentDomain.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get payment")
	}

	payment.Status = paymentDomain.Status(status)
	return &payment, nil
}
