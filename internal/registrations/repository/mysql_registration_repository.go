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

// MySQLRegistrationRepository implements registration persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via
// database.GetTx(). The paid-uniqueness contract rides on a unique key over
// (event_id, paid_email) where paid_email is a generated column holding the
// email only while payment_status = 'paid'.
type MySQLRegistrationRepository struct {
	db *sql.DB
}

// NewMySQLRegistrationRepository creates a new MySQLRegistrationRepository.
func NewMySQLRegistrationRepository(db *sql.DB) *MySQLRegistrationRepository {
	return &MySQLRegistrationRepository{db: db}
}

const mysqlRegistrationColumns = `id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at`

// Create inserts a new registration using BINARY(16) for UUIDs.
func (r *MySQLRegistrationRepository) Create(
	ctx context.Context,
	registration *registrationDomain.Registration,
) error {
	querier := database.GetTx(ctx, r.db)

	args, err := mysqlRegistrationArgs(registration)
	if err != nil {
		return err
	}

	query := `INSERT INTO registrations (id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create registration")
	}
	return nil
}

// Get retrieves a registration by ID. Returns ErrRegistrationNotFound if it
// doesn't exist.
func (r *MySQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID uuid.UUID,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	id, err := registrationID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal registration id")
	}

	query := `SELECT ` + mysqlRegistrationColumns + ` FROM registrations WHERE id = ?`

	return scanMySQLRegistration(querier.QueryRowContext(ctx, query, id))
}

// GetPaidByEventAndEmail retrieves the paid registration for an (event, email)
// pair. Returns ErrRegistrationNotFound if none exists. Email must be
// normalized by the caller.
func (r *MySQLRegistrationRepository) GetPaidByEventAndEmail(
	ctx context.Context,
	eventID uuid.UUID,
	email string,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	rawEventID, err := eventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `SELECT ` + mysqlRegistrationColumns + `
			  FROM registrations
			  WHERE event_id = ? AND email = ? AND payment_status = 'paid'`

	return scanMySQLRegistration(querier.QueryRowContext(ctx, query, rawEventID, email))
}

// CountAttending counts registrations occupying spots for an event. Pending
// rows never count.
func (r *MySQLRegistrationRepository) CountAttending(
	ctx context.Context,
	eventID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	rawEventID, err := eventID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `SELECT COUNT(*) FROM registrations
			  WHERE event_id = ? AND payment_status IN ('paid', 'walk-up')`

	var count int
	if err := querier.QueryRowContext(ctx, query, rawEventID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count registrations")
	}
	return count, nil
}

// DeletePending removes pending rows for an (event, email) pair so a fresh
// intent can replace an abandoned one.
func (r *MySQLRegistrationRepository) DeletePending(
	ctx context.Context,
	eventID uuid.UUID,
	email string,
) error {
	querier := database.GetTx(ctx, r.db)

	rawEventID, err := eventID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `DELETE FROM registrations
			  WHERE event_id = ? AND email = ? AND payment_status = 'pending'`

	if _, err := querier.ExecContext(ctx, query, rawEventID, email); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registration")
	}
	return nil
}

// UpsertPaid inserts a paid registration or, when a paid row already exists
// for the (event_id, email) pair, updates it in place. Returns the surviving
// row, which keeps replayed webhooks and repeated free RSVPs idempotent.
func (r *MySQLRegistrationRepository) UpsertPaid(
	ctx context.Context,
	registration *registrationDomain.Registration,
) (*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	paid := *registration
	paid.PaymentStatus = registrationDomain.PaymentStatusPaid

	args, err := mysqlRegistrationArgs(&paid)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO registrations (id, event_id, full_name, email, phone, team_name,
			  payment_status, payment_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      full_name = VALUES(full_name),
			      phone = VALUES(phone),
			      team_name = VALUES(team_name),
			      payment_status = VALUES(payment_status),
			      payment_id = COALESCE(VALUES(payment_id), payment_id),
			      updated_at = VALUES(updated_at)`

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.Wrap(err, "failed to upsert paid registration")
	}

	// MySQL has no RETURNING; re-read the surviving row.
	result, err := r.GetPaidByEventAndEmail(ctx, registration.EventID, registration.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read upserted registration")
	}
	return result, nil
}

// Update modifies an existing registration.
func (r *MySQLRegistrationRepository) Update(
	ctx context.Context,
	registration *registrationDomain.Registration,
) error {
	querier := database.GetTx(ctx, r.db)

	id, err := registration.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal registration id")
	}

	var paymentID []byte
	if registration.PaymentID != nil {
		paymentID, err = registration.PaymentID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal payment id")
		}
	}

	query := `UPDATE registrations
			  SET full_name = ?,
			      email = ?,
			      phone = ?,
			      team_name = ?,
			      payment_status = ?,
			      payment_id = ?,
			      updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.TeamName,
		string(registration.PaymentStatus),
		paymentID,
		registration.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registration")
	}
	return nil
}

// ListByEvent retrieves registrations for an event ordered by creation time
// ascending with pagination.
func (r *MySQLRegistrationRepository) ListByEvent(
	ctx context.Context,
	eventID uuid.UUID,
	offset, limit int,
) ([]*registrationDomain.Registration, error) {
	querier := database.GetTx(ctx, r.db)

	rawEventID, err := eventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event id")
	}

	query := `SELECT ` + mysqlRegistrationColumns + `
			  FROM registrations
			  WHERE event_id = ?
			  ORDER BY created_at ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, rawEventID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list registrations")
	}
	defer func() {
		_ = rows.Close()
	}()

	registrations := make([]*registrationDomain.Registration, 0)
	for rows.Next() {
		registration, err := scanMySQLRegistrationRow(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate registrations")
	}

	return registrations, nil
}

// DeleteStalePending removes pending rows created before the given cutoff and
// returns the number of rows swept.
func (r *MySQLRegistrationRepository) DeleteStalePending(
	ctx context.Context,
	olderThan time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM registrations
			  WHERE payment_status = 'pending' AND created_at < ?`

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

// mysqlRegistrationArgs marshals a registration into insert arguments with
// BINARY(16) UUIDs.
func mysqlRegistrationArgs(registration *registrationDomain.Registration) ([]any, error) {
	id, err := registration.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal registration id")
	}
	eventID, err := registration.EventID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event id")
	}

	var paymentID []byte
	if registration.PaymentID != nil {
		paymentID, err = registration.PaymentID.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal payment id")
		}
	}

	return []any{
		id,
		eventID,
		registration.FullName,
		registration.Email,
		registration.Phone,
		registration.TeamName,
		string(registration.PaymentStatus),
		paymentID,
		registration.CreatedAt,
		registration.UpdatedAt,
	}, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLRegistration(row *sql.Row) (*registrationDomain.Registration, error) {
	registration, err := scanMySQLRegistrationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registrationDomain.ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func scanMySQLRegistrationRow(scanner rowScanner) (*registrationDomain.Registration, error) {
	var registration registrationDomain.Registration
	var rawID, rawEventID, rawPaymentID []byte
	var status string

	err := scanner.Scan(
		&rawID,
		&rawEventID,
		&registration.FullName,
		&registration.Email,
		&registration.Phone,
		&registration.TeamName,
		&status,
		&rawPaymentID,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan registration")
	}

	registration.ID, err = uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse registration id")
	}
	registration.EventID, err = uuid.FromBytes(rawEventID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse event id")
	}
	if rawPaymentID != nil {
		paymentID, err := uuid.FromBytes(rawPaymentID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse payment id")
		}
		registration.PaymentID = &paymentID
	}

	registration.PaymentStatus = registrationDomain.PaymentStatus(status)
	return &registration, nil
}
