package repository

import (
	"context"
	"database/sql"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// MySQLWebhookEventRepository implements the webhook dedupe log for MySQL.
type MySQLWebhookEventRepository struct {
	db *sql.DB
}

// NewMySQLWebhookEventRepository creates a new MySQLWebhookEventRepository.
func NewMySQLWebhookEventRepository(db *sql.DB) *MySQLWebhookEventRepository {
	return &MySQLWebhookEventRepository{db: db}
}

// Insert records a delivered webhook event. Returns false when the event was
// already recorded.
func (r *MySQLWebhookEventRepository) Insert(
	ctx context.Context,
	event *paymentDomain.WebhookEvent,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal webhook event id")
	}

	query := `INSERT IGNORE INTO webhook_events (id, provider, provider_event_id, event_type, received_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		id,
		event.Provider,
		event.ProviderEventID,
		event.EventType,
		event.ReceivedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to record webhook event")
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read webhook event insert result")
	}
	return inserted > 0, nil
}
