package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
)

func TestPostgreSQLAuditLogRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := &auditDomain.Entry{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      "system",
		Action:     auditDomain.ActionPaymentConfirmed,
		EntityType: "payment",
		EntityID:   uuid.Must(uuid.NewV7()),
		Detail:     map[string]any{"amount_cents": int64(2500)},
		CreatedAt:  time.Now().UTC(),
	}

	detailJSON, err := json.Marshal(entry.Detail)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO audit_log_entries").
		WithArgs(entry.ID, entry.Actor, string(entry.Action), entry.EntityType, entry.EntityID, detailJSON, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLAuditLogRepository(db)
	err = repo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAuditLogRepository_Create_NilDetail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := &auditDomain.Entry{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      "finance-team",
		Action:     auditDomain.ActionRefundIssued,
		EntityType: "refund",
		EntityID:   uuid.Must(uuid.NewV7()),
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_log_entries").
		WithArgs(entry.ID, entry.Actor, string(entry.Action), entry.EntityType, entry.EntityID, []byte(nil), entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLAuditLogRepository(db)
	err = repo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAuditLogRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entryID := uuid.Must(uuid.NewV7())
	entityID := uuid.Must(uuid.NewV7())
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "detail", "created_at"}).
		AddRow(entryID, "system", "payment_confirmed", "payment", entityID, []byte(`{"k":"v"}`), createdAt)

	mock.ExpectQuery("SELECT id, actor, action, entity_type, entity_id, detail, created_at").
		WithArgs(50, 0).
		WillReturnRows(rows)

	repo := NewPostgreSQLAuditLogRepository(db)
	entries, err := repo.List(context.Background(), 0, 50, nil, nil)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, entryID, entries[0].ID)
	assert.Equal(t, auditDomain.ActionPaymentConfirmed, entries[0].Action)
	assert.Equal(t, map[string]any{"k": "v"}, entries[0].Detail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAuditLogRepository_List_WithTimeFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC()

	mock.ExpectQuery("SELECT id, actor, action, entity_type, entity_id, detail, created_at").
		WithArgs(from, to, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "detail", "created_at"}))

	repo := NewPostgreSQLAuditLogRepository(db)
	entries, err := repo.List(context.Background(), 0, 10, &from, &to)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
