package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// MySQLRefundRepository implements refund persistence for MySQL. Uses
// BINARY(16) for UUID storage.
type MySQLRefundRepository struct {
	db *sql.DB
}

// NewMySQLRefundRepository creates a new MySQLRefundRepository.
func NewMySQLRefundRepository(db *sql.DB) *MySQLRefundRepository {
	return &MySQLRefundRepository{db: db}
}

// Create inserts a new refund record.
func (r *MySQLRefundRepository) Create(
	ctx context.Context,
	refund *paymentDomain.Refund,
) error {
	querier := database.GetTx(ctx, r.db)

	id, err := refund.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refund id")
	}
	paymentID, err := refund.PaymentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal payment id")
	}

	var actorID []byte
	if refund.ActorID != nil {
		actorID, err = refund.ActorID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal actor id")
		}
	}

	query := `INSERT INTO refunds (id, payment_id, provider_refund_id, amount_cents,
			  reason, actor_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		paymentID,
		refund.ProviderRefundID,
		refund.AmountCents,
		refund.Reason,
		actorID,
		refund.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refund")
	}
	return nil
}

// ListByPayment retrieves refunds for a payment oldest first.
func (r *MySQLRefundRepository) ListByPayment(
	ctx context.Context,
	paymentID uuid.UUID,
) ([]*paymentDomain.Refund, error) {
	querier := database.GetTx(ctx, r.db)

	rawPaymentID, err := paymentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal payment id")
	}

	query := `SELECT id, payment_id, provider_refund_id, amount_cents, reason, actor_id, created_at
			  FROM refunds
			  WHERE payment_id = ?
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, rawPaymentID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list refunds")
	}
	defer func() {
		_ = rows.Close()
	}()

	refunds := make([]*paymentDomain.Refund, 0)
	for rows.Next() {
		var refund paymentDomain.Refund
		var rawID, rawRefundPaymentID, rawActorID []byte

		err := rows.Scan(
			&rawID,
			&rawRefundPaymentID,
			&refund.ProviderRefundID,
			&refund.AmountCents,
			&refund.Reason,
			&rawActorID,
			&refund.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan refund")
		}

		refund.ID, err = uuid.FromBytes(rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse refund id")
		}
		refund.PaymentID, err = uuid.FromBytes(rawRefundPaymentID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse payment id")
		}
		if rawActorID != nil {
			actorID, err := uuid.FromBytes(rawActorID)
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to parse actor id")
			}
			refund.ActorID = &actorID
		}

		refunds = append(refunds, &refund)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate refunds")
	}

	return refunds, nil
}
