// Package domain defines authentication and authorization domain models.
// Administrative actors authenticate with bearer tokens and are authorized by
// role. There is a single credential abstraction for the whole admin surface;
// no parallel session mechanism exists.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role classifies what an administrative actor may do.
type Role string

const (
	// RoleAdmin grants full administrative access, including refunds.
	RoleAdmin Role = "admin"

	// RoleFinance grants access to payment and refund operations only.
	RoleFinance Role = "finance"

	// RoleStaff grants read access to events and registrations (check-in desk).
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFinance || r == RoleStaff
}

// Actor represents an administrative user of the console.
type Actor struct {
	ID         uuid.UUID
	Name       string
	Role       Role
	SecretHash string //nolint:gosec // hashed actor secret (not plaintext)
	IsActive   bool
	CreatedAt  time.Time
}

// HasAnyRole reports whether the actor holds one of the given roles.
func (a *Actor) HasAnyRole(roles ...Role) bool {
	return slices.Contains(roles, a.Role)
}

// CreateActorInput contains the parameters for creating a new actor.
// The actor secret is generated server-side and cannot be chosen by the caller.
type CreateActorInput struct {
	Name     string
	Role     Role
	IsActive bool
}

// CreateActorOutput contains the result of creating a new actor.
// The PlainSecret is only returned once and must be transmitted securely.
type CreateActorOutput struct {
	ID          uuid.UUID
	PlainSecret string
}

// IssueTokenInput contains the credentials presented when requesting a bearer token.
type IssueTokenInput struct {
	ActorID     uuid.UUID
	ActorSecret string
}

// IssueTokenOutput contains the issued bearer token.
// The PlainToken is only shown once; the ledger stores its hash.
type IssueTokenOutput struct {
	TokenID    uuid.UUID
	PlainToken string
	ExpiresAt  time.Time
}
