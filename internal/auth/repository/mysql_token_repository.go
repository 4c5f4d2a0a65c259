package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
)

// MySQLTokenRepository implements token persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQLTokenRepository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new token using BINARY(16) for UUIDs.
func (r *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tokens (id, token_hash, actor_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}
	actorID, err := token.ActorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal actor id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		actorID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// Get retrieves a token by ID. Returns ErrTokenNotFound if the token doesn't exist.
func (r *MySQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_hash, actor_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE id = ?`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal token id")
	}

	return r.scanToken(querier.QueryRowContext(ctx, query, id))
}

// GetByTokenHash retrieves a token by its SHA-256 hash. Returns ErrTokenNotFound
// if no token matches.
func (r *MySQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_hash, actor_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE token_hash = ?`

	return r.scanToken(querier.QueryRowContext(ctx, query, tokenHash))
}

func (r *MySQLTokenRepository) scanToken(row *sql.Row) (*authDomain.Token, error) {
	var token authDomain.Token
	var rawID, rawActorID []byte

	err := row.Scan(
		&rawID,
		&token.TokenHash,
		&rawActorID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	id, err := uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse token id")
	}
	actorID, err := uuid.FromBytes(rawActorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse actor id")
	}
	token.ID = id
	token.ActorID = actorID

	return &token, nil
}
