package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
)

// MySQLActorRepository implements actor persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLActorRepository struct {
	db *sql.DB
}

// NewMySQLActorRepository creates a new MySQLActorRepository.
func NewMySQLActorRepository(db *sql.DB) *MySQLActorRepository {
	return &MySQLActorRepository{db: db}
}

// Create inserts a new actor using BINARY(16) for UUIDs.
func (r *MySQLActorRepository) Create(ctx context.Context, actor *authDomain.Actor) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO actors (id, name, role, secret_hash, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := actor.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal actor id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (r *MySQLActorRepository) Get(ctx context.Context, actorID uuid.UUID) (*authDomain.Actor, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, role, secret_hash, is_active, created_at
			  FROM actors
			  WHERE id = ?`

	id, err := actorID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal actor id")
	}

	var actor authDomain.Actor
	var rawID []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
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

	parsed, err := uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse actor id")
	}
	actor.ID = parsed

	return &actor, nil
}
