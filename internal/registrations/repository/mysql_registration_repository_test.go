package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

func mustBinaryUUID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	raw, err := id.MarshalBinary()
	require.NoError(t, err)
	return raw
}

func mysqlRegistrationRows(t *testing.T, registrations ...*registrationDomain.Registration) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "event_id", "full_name", "email", "phone", "team_name",
		"payment_status", "payment_id", "created_at", "updated_at",
	})
	for _, r := range registrations {
		var paymentID []byte
		if r.PaymentID != nil {
			paymentID = mustBinaryUUID(t, *r.PaymentID)
		}
		rows.AddRow(mustBinaryUUID(t, r.ID), mustBinaryUUID(t, r.EventID),
			r.FullName, r.Email, r.Phone, r.TeamName,
			string(r.PaymentStatus), paymentID, r.CreatedAt, r.UpdatedAt)
	}
	return rows
}

func TestMySQLRegistrationRepository_UpsertPaid(t *testing.T) {
	t.Run("conflict update moves payment_status to paid", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		registration := sampleRegistration(registrationDomain.PaymentStatusPending)
		paymentID := uuid.Must(uuid.NewV7())
		registration.PaymentID = &paymentID

		paid := *registration
		paid.PaymentStatus = registrationDomain.PaymentStatusPaid

		// A duplicate key must re-assert the paid status, otherwise the
		// surviving row keeps its old payment_status.
		mock.ExpectExec(`ON DUPLICATE KEY UPDATE[\s\S]*payment_status = VALUES\(payment_status\)`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT id, event_id, full_name").
			WithArgs(mustBinaryUUID(t, registration.EventID), registration.Email).
			WillReturnRows(mysqlRegistrationRows(t, &paid))

		repo := NewMySQLRegistrationRepository(db)
		result, err := repo.UpsertPaid(context.Background(), registration)

		require.NoError(t, err)
		assert.Equal(t, registration.ID, result.ID)
		assert.Equal(t, registrationDomain.PaymentStatusPaid, result.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh insert returns the paid row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		registration := sampleRegistration(registrationDomain.PaymentStatusPending)
		paid := *registration
		paid.PaymentStatus = registrationDomain.PaymentStatusPaid

		mock.ExpectExec("INSERT INTO registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, event_id, full_name").
			WithArgs(mustBinaryUUID(t, registration.EventID), registration.Email).
			WillReturnRows(mysqlRegistrationRows(t, &paid))

		repo := NewMySQLRegistrationRepository(db)
		result, err := repo.UpsertPaid(context.Background(), registration)

		require.NoError(t, err)
		assert.Equal(t, registrationDomain.PaymentStatusPaid, result.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
