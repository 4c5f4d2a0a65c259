// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	authService "github.com/courtside/registration/internal/auth/service"
	apperrors "github.com/courtside/registration/internal/errors"
)

// actorUseCase implements ActorUseCase for managing administrative actors.
type actorUseCase struct {
	actorRepo     ActorRepository
	secretService authService.SecretService
}

// Create generates and persists a new actor with a random secret.
// Returns the actor ID and plain text secret. The plain secret is only returned
// once and must be securely stored by the caller. The hashed version is stored
// in the database.
func (a *actorUseCase) Create(
	ctx context.Context,
	createActorInput *authDomain.CreateActorInput,
) (*authDomain.CreateActorOutput, error) {
	if !createActorInput.Role.Valid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown role "+string(createActorInput.Role))
	}

	// Generate a secure random secret
	plainSecret, hashedSecret, err := a.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	actor := &authDomain.Actor{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       createActorInput.Name,
		Role:       createActorInput.Role,
		SecretHash: hashedSecret,
		IsActive:   createActorInput.IsActive,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.actorRepo.Create(ctx, actor); err != nil {
		return nil, err
	}

	return &authDomain.CreateActorOutput{
		ID:          actor.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Get retrieves an actor by ID.
func (a *actorUseCase) Get(ctx context.Context, actorID uuid.UUID) (*authDomain.Actor, error) {
	return a.actorRepo.Get(ctx, actorID)
}

// NewActorUseCase creates a new ActorUseCase with the provided dependencies.
func NewActorUseCase(actorRepo ActorRepository, secretService authService.SecretService) ActorUseCase {
	return &actorUseCase{
		actorRepo:     actorRepo,
		secretService: secretService,
	}
}
