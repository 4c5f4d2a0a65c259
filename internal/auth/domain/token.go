package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a hashed bearer credential for an actor.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ActorID   uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token can authenticate at the given instant.
func (t *Token) Usable(now time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	return now.Before(t.ExpiresAt)
}
