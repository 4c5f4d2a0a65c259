package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	authService "github.com/courtside/registration/internal/auth/service"
	"github.com/courtside/registration/internal/config"
)

// tokenUseCase implements TokenUseCase for issuing and validating bearer tokens.
type tokenUseCase struct {
	config        *config.Config
	actorRepo     ActorRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
}

// Issue authenticates an actor and generates a new bearer token.
//
// Security notes:
//   - Returns ErrInvalidCredentials for both non-existent actors and wrong secrets
//     to prevent actor enumeration
//   - Returns ErrActorInactive if the actor exists but is deactivated
//   - The plain token is only returned once
//   - Token expiration comes from Config.AuthTokenExpiration
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	actor, err := t.actorRepo.Get(ctx, issueTokenInput.ActorID)
	if err != nil {
		// If actor not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrActorNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !actor.IsActive {
		return nil, authDomain.ErrActorInactive
	}

	if !t.secretService.CompareSecret(issueTokenInput.ActorSecret, actor.SecretHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ActorID:   actor.ID,
		ExpiresAt: time.Now().UTC().Add(t.config.AuthTokenExpiration),
		RevokedAt: nil,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		TokenID:    token.ID,
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate validates a bearer token hash and returns the associated actor.
//
// Security notes:
//   - Returns ErrInvalidCredentials for token not found, expired, or revoked to
//     prevent enumeration and information leakage
//   - Returns ErrActorInactive if the actor exists but is deactivated
//   - All time comparisons use UTC
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Actor, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.Usable(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	actor, err := t.actorRepo.Get(ctx, token.ActorID)
	if err != nil {
		// Shouldn't happen due to foreign keys, but handle gracefully
		if errors.Is(err, authDomain.ErrActorNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !actor.IsActive {
		return nil, authDomain.ErrActorInactive
	}

	return actor, nil
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	actorRepo ActorRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		actorRepo:     actorRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
	}
}
