// Package repository provides data persistence for registrations.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// PostgreSQLRegistrationRepository implements registration persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx(). The paid-uniqueness contract rides on a partial unique
// index over (event_id, email) WHERE payment_status = 'paid'.
type PostgreSQLRegistrationRepository struct {
	db *sql.DB
}

// NewPostgreSQLRegistrationRepository creates a new PostgreSQLRegistrationRepository.
func NewPostgreSQLRegistrationRepository(db *sql.DB) *PostgreSQLRegistrationRepository {
	return &PostgreSQLRegistrationRepository{db: db}
}

const pgRegistrationColumns = `id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at`

// Create inserts a new registration.
func (r *PostgreSQLRegistrationRepository) Create(
	ctx context.Context,
	registration *registrationDomain.Registration,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO registrations (id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		registration.ID,
		registration.EventID,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.TeamName,
		string(registration.PaymentStatus),
		registration.PaymentID,
		registration.CreatedAt,
		registration.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create registration")
	}
	return nil
}

// Get retrieves a registration by ID. Returns ErrRegistrationNotFound if it
// doesn't exist.
func (r *PostgreSQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID uuid.UUID,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgRegistrationColumns + ` FROM registrations WHERE id = $1`

	return scanPGRegistration(querier.QueryRowContext(ctx, query, registrationID))
}

// GetPaidByEventAndEmail retrieves the paid registration for an (event, email)
// pair. Returns ErrRegistrationNotFound if none exists. Email must be
// normalized by the caller.
func (r *PostgreSQLRegistrationRepository) GetPaidByEventAndEmail(
	ctx context.Context,
	eventID uuid.UUID,
	email string,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgRegistrationColumns + `
			  FROM registrations
			  WHERE event_id = $1 AND email = $2 AND payment_status = 'paid'`

	return scanPGRegistration(querier.QueryRowContext(ctx, query, eventID, email))
}

// CountAttending counts registrations occupying spots for an event. Pending
// rows never count.
func (r *PostgreSQLRegistrationRepository) CountAttending(
	ctx context.Context,
	eventID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM registrations
			  WHERE event_id = $1 AND payment_status IN ('paid', 'walk-up')`

	var count int
	if err := querier.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count registrations")
	}
	return count, nil
}

// DeletePending removes pending rows for an (event, email) pair so a fresh
// intent can replace an abandoned one.
func (r *PostgreSQLRegistrationRepository) DeletePending(
	ctx context.Context,
	eventID uuid.UUID,
	email string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM registrations
			  WHERE event_id = $1 AND email = $2 AND payment_status = 'pending'`

	if _, err := querier.ExecContext(ctx, query, eventID, email); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registration")
	}
	return nil
}

// UpsertPaid inserts a paid registration or, when a paid row already exists
// for the (event_id, email) pair, updates it in place. Returns the surviving
// row, which keeps replayed webhooks and repeated free RSVPs idempotent.
func (r *PostgreSQLRegistrationRepository) UpsertPaid(
	ctx context.Context,
	registration *registrationDomain.Registration,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO registrations (id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, 'paid', $7, $8, $9)
			  ON CONFLICT (event_id, email) WHERE payment_status = 'paid'
			  DO UPDATE SET full_name = EXCLUDED.full_name,
			                phone = EXCLUDED.phone,
			                team_name = EXCLUDED.team_name,
			                payment_id = COALESCE(EXCLUDED.payment_id, registrations.payment_id),
			                updated_at = EXCLUDED.updated_at
			  RETURNING ` + pgRegistrationColumns

	row := querier.QueryRowContext(
		ctx,
		query,
		registration.ID,
		registration.EventID,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.TeamName,
		registration.PaymentID,
		registration.CreatedAt,
		registration.UpdatedAt,
	)
	result, err := scanPGRegistration(row)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to upsert paid registration")
	}
	return result, nil
}

// Update modifies an existing registration.
func (r *PostgreSQLRegistrationRepository) Update(
	ctx context.Context,
	registration *registrationDomain.Registration,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE registrations
			  SET full_name = $1,
			      email = $2,
			      phone = $3,
			      team_name = $4,
			      payment_status = $5,
			      payment_id = $6,
			      updated_at = $7
			  WHERE id = $8`

	_, err := querier.ExecContext(
		ctx,
		query,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.TeamName,
		string(registration.PaymentStatus),
		registration.PaymentID,
		registration.UpdatedAt,
		registration.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registration")
	}
	return nil
}

// ListByEvent retrieves registrations for an event ordered by creation time
// ascending with pagination.
func (r *PostgreSQLRegistrationRepository) ListByEvent(
	ctx context.Context,
	eventID uuid.UUID,
	offset, limit int,
) ([]*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgRegistrationColumns + `
			  FROM registrations
			  WHERE event_id = $1
			  ORDER BY created_at ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer func() {
		_ = rows.Close()
	}()

	registrations := make([]*registrationDomain.Registration, 0)
	for rows.Next() {
		var registration registrationDomain.Registration
		var status string

		err := rows.Scan(
			&registration.ID,
			&registration.EventID,
			&registration.FullName,
			&registration.Email,
			&registration.Phone,
			&registration.TeamName,
			&status,
			&registration.PaymentID,
			&registration.CreatedAt,
			&registration.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan registration")
		}

		registration.PaymentStatus = registrationDomain.PaymentStatus(status)
		registrations = append(registrations, &registration)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate registrations")
	}

	return registrations, nil
}

// DeleteStalePending removes pending rows created before the given cutoff and
// returns the number of rows swept.
func (r *PostgreSQLRegistrationRepository) DeleteStalePending(
	ctx context.Context,
	olderThan time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM registrations
			  WHERE payment_status = 'pending' AND created_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to sweep pending registrations")
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count swept registrations")
	}
	return swept, nil
}

// scanPGRegistration scans a single registration row, mapping sql.ErrNoRows to
// ErrRegistrationNotFound.
func scanPGRegistration(row *sql.Row) (*registrationDomain.Registration, error) {
	var registration registrationDomain.Registration
	var status string

	err := row.Scan(
		&registration.ID,
		&registration.EventID,
		&registration.FullName,
		&registration.Email,
		&registration.Phone,
		&registration.TeamName,
		&status,
		&registration.PaymentID,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registrationDomain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get registration")
	}

	registration.PaymentStatus = registrationDomain.PaymentStatus(status)
	return &registration, nil
}
