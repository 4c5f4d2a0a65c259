package domain

import (
	"github.com/courtside/registration/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrActorNotFound indicates an actor with the specified ID was not found.
	ErrActorNotFound = errors.Wrap(errors.ErrNotFound, "actor not found")

	// ErrTokenNotFound indicates a token with the specified hash was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials indicates the presented actor credentials are wrong.
	// Returned for both unknown actors and wrong secrets to prevent enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenExpired indicates the bearer token is past its expiration.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenRevoked indicates the bearer token has been revoked.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token revoked")

	// ErrActorInactive indicates the actor exists but cannot authenticate.
	ErrActorInactive = errors.Wrap(errors.ErrForbidden, "actor is inactive")

	// ErrInsufficientRole indicates the actor lacks the role for this operation.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")
)
