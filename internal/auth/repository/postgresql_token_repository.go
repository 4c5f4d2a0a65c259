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

// PostgreSQLTokenRepository implements token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQLTokenRepository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new token.
func (r *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tokens (id, token_hash, actor_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.ActorID,
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
func (r *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_hash, actor_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE id = $1`

	var token authDomain.Token
	err := querier.QueryRowContext(ctx, query, tokenID).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ActorID,
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

	return &token, nil
}

// GetByTokenHash retrieves a token by its SHA-256 hash. Returns ErrTokenNotFound
// if no token matches.
func (r *PostgreSQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_hash, actor_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE token_hash = $1`

	var token authDomain.Token
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.ActorID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}

	return &token, nil
}
