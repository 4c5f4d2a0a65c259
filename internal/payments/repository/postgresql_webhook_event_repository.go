package repository

import (
	"context"
	"database/sql"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
)

// PostgreSQLWebhookEventRepository implements the webhook dedupe log for
// PostgreSQL. The unique (provider, provider_event_id) pair turns redelivered
// events into recognized replays.
type PostgreSQLWebhookEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLWebhookEventRepository creates a new PostgreSQLWebhookEventRepository.
func NewPostgreSQLWebhookEventRepository(db *sql.DB) *PostgreSQLWebhookEventRepository {
	return &PostgreSQLWebhookEventRepository{db: db}
}

// Insert records a delivered webhook event. Returns false when the event was
// already recorded, which marks the delivery as a replay.
func (r *PostgreSQLWebhookEventRepository) Insert(
	ctx context.Context,
	event *paymentDomain.WebhookEvent,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO webhook_events (id, provider, provider_event_id, event_type, received_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (provider, provider_event_id) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
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
