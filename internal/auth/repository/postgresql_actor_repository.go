// Package repository provides data persistence for authentication entities.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
)

// PostgreSQLActorRepository implements actor persistence for PostgreSQL.
type PostgreSQLActorRepository struct {
	db *sql.DB
}

// NewPostgreSQLActorRepository creates a new PostgreSQLActorRepository.
func NewPostgreSQLActorRepository(db *sql.DB) *PostgreSQLActorRepository {
	return &PostgreSQLActorRepository{db: db}
}

// Create inserts a new actor.
func (r *PostgreSQLActorRepository) Create(ctx context.Context, actor *authDomain.Actor) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO actors (id, name, role, secret_hash, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		actor.ID,
		actor.Name,
		actor.Role,
		actor.SecretHash,
		actor.IsActive,
		actor.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create actor")
	}
	return nil
}

// Get retrieves an actor by ID.
func (r *PostgreSQLActorRepository) Get(ctx context.Context, actorID uuid.UUID) (*authDomain.Actor, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, role, secret_hash, is_active, created_at
			  FROM actors
			  WHERE id = $1`

	var actor authDomain.Actor
	err := querier.QueryRowContext(ctx, query, actorID).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Role,
		&actor.SecretHash,
		&actor.IsActive,
		&actor.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authDomain.ErrActorNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get actor")
	}

	return &actor, nil
}
