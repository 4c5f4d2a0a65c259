// Package repository provides data persistence for events.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// PostgreSQLEventRepository implements event persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}

// Create inserts a new event.
func (r *PostgreSQLEventRepository) Create(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO events (id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
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
func (r *PostgreSQLEventRepository) Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at
			  FROM events WHERE id = $1`

	var event eventDomain.Event
	var status string
	err := querier.QueryRowContext(ctx, query, eventID).Scan(
		&event.ID,
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

	event.Status = eventDomain.Status(status)
	return &event, nil
}

// List retrieves events ordered by starts_at ascending with pagination and an
// optional status filter (nil means all statuses).
func (r *PostgreSQLEventRepository) List(
	ctx context.Context,
	offset, limit int,
	status *eventDomain.Status,
) ([]*eventDomain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	// Build dynamic WHERE clause based on provided filters
	var conditions []string
	var args []interface{}

	if status != nil {
		args = append(args, string(*status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT id, name, location, starts_at, ends_at, capacity, price_cents,
			  currency, status, registration_cutoff, created_at, updated_at
			  FROM events`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY starts_at ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

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
		var eventStatus string

		err := rows.Scan(
			&event.ID,
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

		event.Status = eventDomain.Status(eventStatus)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate events")
	}

	return events, nil
}

// Update modifies an existing event.
func (r *PostgreSQLEventRepository) Update(ctx context.Context, event *eventDomain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events
			  SET name = $1,
			      location = $2,
			      starts_at = $3,
			      ends_at = $4,
			      capacity = $5,
			      price_cents = $6,
			      currency = $7,
			      status = $8,
			      registration_cutoff = $9,
			      updated_at = $10
			  WHERE id = $11`

	_, err := querier.ExecContext(
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
		event.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update event")
	}

	return nil
}
