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

// MySQLPaymentRepository implements payment persistence for MySQL. Uses
// BINARY(16) for UUID storage. MySQL has no RETURNING, so the conditional
// updates re-read the row after checking RowsAffected.
type MySQLPaymentRepository struct {
	db *sql.DB
}

// NewMySQLPaymentRepository creates a new MySQLPaymentRepository.
func NewMySQLPaymentRepository(db *sql.DB) *MySQLPaymentRepository {
	return &MySQLPaymentRepository{db: db}
}

const mysqlPaymentColumns = `id, registration_id, event_id, provider, provider_session_id,
				  provider_payment_intent_id, amount_cents, refunded_cents, currency,
				  status, created_at, updated_at`

// Create inserts a new payment using BINARY(16) for UUIDs.
func (r *MySQLPaymentRepository) Create(
	ctx context.Context,
	payment *paymentDomain.Payment,
) error {
	querier := database.GetTx(ctx, r.db)

	id, err := payment.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal payment id")
	}
	registrationID, err := payment.RegistrationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal registration id")
	}
	eventID, err := payment.EventID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `INSERT INTO payments (id, registration_id, event_id, provider, provider_session_id,
			  provider_payment_intent_id, amount_cents, refunded_cents, currency,
			  status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		registrationID,
		eventID,
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
func (r *MySQLPaymentRepository) Get(
	ctx context.Context,
	paymentID uuid.UUID,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := paymentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal payment id")
	}

	query := `SELECT ` + mysqlPaymentColumns + ` FROM payments WHERE id = ?`

	return scanMySQLPayment(querier.QueryRowContext(ctx, query, id))
}

// GetByProviderSessionID retrieves a payment by its checkout session id.
func (r *MySQLPaymentRepository) GetByProviderSessionID(
	ctx context.Context,
	sessionID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlPaymentColumns + ` FROM payments WHERE provider_session_id = ?`

	return scanMySQLPayment(querier.QueryRowContext(ctx, query, sessionID))
}

// GetByProviderPaymentIntentID retrieves a payment by its provider payment
// intent id.
func (r *MySQLPaymentRepository) GetByProviderPaymentIntentID(
	ctx context.Context,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlPaymentColumns + `
			  FROM payments WHERE provider_payment_intent_id = ?`

	return scanMySQLPayment(querier.QueryRowContext(ctx, query, paymentIntentID))
}

// MarkPaid moves the payment for a checkout session to paid and records the
// provider payment intent id.
func (r *MySQLPaymentRepository) MarkPaid(
	ctx context.Context,
	sessionID, paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments
			  SET status = 'paid',
			      provider_payment_intent_id = ?,
			      updated_at = NOW()
			  WHERE provider_session_id = ?`

	if _, err := querier.ExecContext(ctx, query, paymentIntentID, sessionID); err != nil {
		return nil, apperrors.Wrap(err, "failed to mark payment paid")
	}

	return r.GetByProviderSessionID(ctx, sessionID)
}

// MarkFailed moves the open payment for a registration to failed and records
// the provider payment intent id. A redelivered failure event matches no row
// and returns ErrPaymentNotFound.
func (r *MySQLPaymentRepository) MarkFailed(
	ctx context.Context,
	registrationID uuid.UUID,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	rawRegistrationID, err := registrationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal registration id")
	}

	query := `UPDATE payments
			  SET status = 'failed',
			      provider_payment_intent_id = ?,
			      updated_at = NOW()
			  WHERE registration_id = ? AND status = 'requires_payment'`

	result, err := querier.ExecContext(ctx, query, paymentIntentID, rawRegistrationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to mark payment failed")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read payment update result")
	}
	if affected == 0 {
		return nil, paymentDomain.ErrPaymentNotFound
	}

	return r.GetByProviderPaymentIntentID(ctx, paymentIntentID)
}

// IncrementRefunded atomically adds amountCents to refunded_cents and derives
// the settlement status, refusing any increment that would exceed the original
// amount.
func (r *MySQLPaymentRepository) IncrementRefunded(
	ctx context.Context,
	paymentID uuid.UUID,
	amountCents int64,
) (*paymentDomain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := paymentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal payment id")
	}

	query := `UPDATE payments
			  SET status = CASE
			          WHEN refunded_cents + ? >= amount_cents THEN 'refunded'
			          ELSE 'partially_refunded'
			      END,
			      refunded_cents = refunded_cents + ?,
			      updated_at = NOW()
			  WHERE id = ? AND refunded_cents + ? <= amount_cents`

	result, err := querier.ExecContext(ctx, query, amountCents, amountCents, id, amountCents)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to apply refund")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read payment update result")
	}
	if affected == 0 {
		if _, getErr := r.Get(ctx, paymentID); getErr != nil {
			return nil, getErr
		}
		return nil, paymentDomain.ErrRefundExceedsBalance
	}

	return r.Get(ctx, paymentID)
}

// SetRefundedTotal moves refunded_cents to the provider's reported running
// total. The update is monotonic; a stale total applies nothing.
func (r *MySQLPaymentRepository) SetRefundedTotal(
	ctx context.Context,
	paymentID uuid.UUID,
	totalCents int64,
) (*paymentDomain.Payment, bool, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := paymentID.MarshalBinary()
	if err != nil {
		return nil, false, apperrors.Wrap(err, "failed to marshal payment id")
	}

	query := `UPDATE payments
			  SET status = CASE
			          WHEN ? >= amount_cents THEN 'refunded'
			          ELSE 'partially_refunded'
			      END,
			      refunded_cents = LEAST(?, amount_cents),
			      updated_at = NOW()
			  WHERE id = ? AND refunded_cents < ?`

	result, err := querier.ExecContext(ctx, query, totalCents, totalCents, id, totalCents)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "failed to apply refund total")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, apperrors.Wrap(err, "failed to read payment update result")
	}

	payment, err := r.Get(ctx, paymentID)
	if err != nil {
		return nil, false, err
	}
	return payment, affected > 0, nil
}

func scanMySQLPayment(row *sql.Row) (*paymentDomain.Payment, error) {
	var payment paymentDomain.Payment
	var rawID, rawRegistrationID, rawEventID []byte
	var provider, status string

	err := row.Scan(
		&rawID,
		&rawRegistrationID,
		&rawEventID,
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

	payment.ID, err = uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse payment id")
	}
	payment.RegistrationID, err = uuid.FromBytes(rawRegistrationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse registration id")
	}
	payment.EventID, err = uuid.FromBytes(rawEventID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse event id")
	}

	payment.Status = paymentDomain.Status(status)
	return &payment, nil
}
