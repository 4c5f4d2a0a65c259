package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// PostgreSQLRefundRepository implements refund persistence for PostgreSQL.
// Refund rows are append-only; the running total lives on the payment.
type PostgreSQLRefundRepository struct {
	db *sql.DB
}

// NewPostgreSQLRefundRepository creates a new PostgreSQLRefundRepository.
func NewPostgreSQLRefundRepository(db *sql.DB) *PostgreSQLRefundRepository {
	return &PostgreSQLRefundRepository{db: db}
}

// Create inserts a new refund record.
func (r *PostgreSQLRefundRepository) Create(
	ctx context.Context,
	refund *paymentDomain.Refund,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO refunds (id, payment_id, provider_refund_id, amount_cents,
			  reason, actor_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		refund.ID,
		refund.PaymentID,
		refund.ProviderRefundID,
		refund.AmountCents,
		refund.Reason,
		refund.ActorID,
		refund.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refund")
	}
	return nil
}

// ListByPayment retrieves refunds for a payment oldest first.
func (r *PostgreSQLRefundRepository) ListByPayment(
	ctx context.Context,
	paymentID uuid.UUID,
) ([]*paymentDomain.Refund, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, payment_id, provider_refund_id, amount_cents, reason, actor_id, created_at
			  FROM refunds
			  WHERE payment_id = $1
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list refunds")
	}
	defer func() {
		_ = rows.Close()
	}()

	refunds := make([]*paymentDomain.Refund, 0)
	for rows.Next() {
		var refund paymentDomain.Refund
		err := rows.Scan(
			&refund.ID,
			&refund.PaymentID,
			&refund.ProviderRefundID,
			&refund.AmountCents,
			&refund.Reason,
			&refund.ActorID,
			&refund.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan refund")
		}
		refunds = append(refunds, &refund)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate refunds")
	}

	return refunds, nil
}
