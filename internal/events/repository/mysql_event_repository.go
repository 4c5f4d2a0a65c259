package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// MySQLEventRepository implements event persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}

// Create inserts a new event using BINARY(16) for UUIDs.
func (r *MySQLEventRepository) Create(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `INSERT INTO events (id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		event.Name,
		event.Location,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.PriceCents,
		event.Currency,
		string(event.Status),
		event.RegistrationCutoff,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event")
	}
	return nil
}

// Get retrieves an event by ID. Returns ErrEventNotFound if the event doesn't exist.
func (r *MySQLEventRepository) Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := eventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `SELECT id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at
			  FROM events WHERE id = ?`

	var event eventDomain.Event
	var rawID []byte
	var status string
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&event.Name,
		&event.Location,
		&event.StartsAt,
		&event.EndsAt,
		&event.Capacity,
		&event.PriceCents,
		&event.Currency,
		&status,
		&event.RegistrationCutoff,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventDomain.ErrEventNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get event")
	}

	event.ID, err = uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse event id")
	}
	event.Status = eventDomain.Status(status)
	return &event, nil
}

// List retrieves events ordered by starts_at ascending with pagination and an
// optional status filter (nil means all statuses).
func (r *MySQLEventRepository) List(
	ctx context.Context,
	offset, limit int,
	status *eventDomain.Status,
) ([]*eventDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	// Build dynamic WHERE clause based on provided filters
	var conditions []string
	var args []interface{}

	if status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*status))
	}

	query := `SELECT id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at
			  FROM events`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY starts_at ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*eventDomain.Event, 0)
	for rows.Next() {
		var event eventDomain.Event
		var rawID []byte
		var eventStatus string

		err := rows.Scan(
			&rawID,
			&event.Name,
			&event.Location,
			&event.StartsAt,
			&event.EndsAt,
			&event.Capacity,
			&event.PriceCents,
			&event.Currency,
			&eventStatus,
			&event.RegistrationCutoff,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event")
		}

		event.ID, err = uuid.FromBytes(rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse event id")
		}
		event.Status = eventDomain.Status(eventStatus)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// Update modifies an existing event.
func (r *MySQLEventRepository) Update(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, r.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `UPDATE events
			  SET name = ?,
			      location = ?,
			      starts_at = ?,
			      ends_at = ?,
			      capacity = ?,
			      price_cents = ?,
			      currency = ?,
			      status = ?,
			      registration_cutoff = ?,
			      updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.Name,
		event.Location,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.PriceCents,
		event.Currency,
		string(event.Status),
		event.RegistrationCutoff,
		event.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update event")
	}

	return nil
}
