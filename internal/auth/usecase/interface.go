// Package usecase defines business logic interfaces for authentication and
// authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
)

// ActorRepository defines persistence operations for administrative actors.
// Implementations must support transaction-aware operations via context propagation.
type ActorRepository interface {
	// Create stores a new actor in the repository.
	Create(ctx context.Context, actor *authDomain.Actor) error

	// Get retrieves an actor by ID. Returns ErrActorNotFound if not found.
	Get(ctx context.Context, actorID uuid.UUID) (*authDomain.Actor, error)
}

// TokenRepository defines persistence operations for bearer tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.Token) error

	// Get retrieves a token by ID. Returns ErrTokenNotFound if not found.
	Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error)

	// GetByTokenHash retrieves a token by its SHA-256 hash.
	// Returns ErrTokenNotFound if no token matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
}

// ActorUseCase defines business logic operations for managing administrative actors.
type ActorUseCase interface {
	// Create generates a new actor with a cryptographically secure secret.
	// The plain secret is only returned once and should be transmitted securely.
	Create(
		ctx context.Context,
		createActorInput *authDomain.CreateActorInput,
	) (*authDomain.CreateActorOutput, error)

	// Get retrieves an actor by ID. Returns ErrActorNotFound if not found.
	Get(ctx context.Context, actorID uuid.UUID) (*authDomain.Actor, error)
}

// TokenUseCase defines business logic operations for issuing and validating
// bearer tokens.
type TokenUseCase interface {
	// Issue authenticates an actor by ID and secret and returns a new bearer token.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate validates a token hash and returns the associated actor.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Actor, error)
}
