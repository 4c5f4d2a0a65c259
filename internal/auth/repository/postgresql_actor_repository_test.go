package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/courtside/registration/internal/auth/domain"
)

func TestPostgreSQLActorRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	actor := &authDomain.Actor{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       "box-office",
		Role:       authDomain.RoleStaff,
		SecretHash: "hashed-secret",
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO actors").
		WithArgs(actor.ID, actor.Name, actor.Role, actor.SecretHash, actor.IsActive, actor.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLActorRepository(db)
	err = repo.Create(context.Background(), actor)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLActorRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	actorID := uuid.Must(uuid.NewV7())
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "role", "secret_hash", "is_active", "created_at"}).
		AddRow(actorID, "finance-team", "finance", "hashed-secret", true, createdAt)

	mock.ExpectQuery("SELECT id, name, role, secret_hash, is_active, created_at").
		WithArgs(actorID).
		WillReturnRows(rows)

	repo := NewPostgreSQLActorRepository(db)
	actor, err := repo.Get(context.Background(), actorID)
	require.NoError(t, err)

	assert.Equal(t, actorID, actor.ID)
	assert.Equal(t, "finance-team", actor.Name)
	assert.Equal(t, authDomain.RoleFinance, actor.Role)
	assert.True(t, actor.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLActorRepository_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	actorID := uuid.Must(uuid.NewV7())

	mock.ExpectQuery("SELECT id, name, role, secret_hash, is_active, created_at").
		WithArgs(actorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "secret_hash", "is_active", "created_at"}))

	repo := NewPostgreSQLActorRepository(db)
	_, err = repo.Get(context.Background(), actorID)
	assert.ErrorIs(t, err, authDomain.ErrActorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
