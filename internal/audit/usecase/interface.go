// Package usecase defines business logic interfaces for the audit trail.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
)

// AuditLogRepository defines persistence operations for audit entries.
// Implementations must support transaction-aware operations via context propagation.
type AuditLogRepository interface {
	// Create stores a new audit entry in the repository.
	Create(ctx context.Context, entry *auditDomain.Entry) error

	// List retrieves audit entries newest first with pagination and optional
	// inclusive time filters (nil means no bound).
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)
}

// AuditLogUseCase defines business logic operations for recording and
// querying the audit trail.
type AuditLogUseCase interface {
	// Record appends an audit entry for a domain event. The detail parameter
	// is optional and can be nil.
	Record(
		ctx context.Context,
		actor string,
		action auditDomain.Action,
		entityType string,
		entityID uuid.UUID,
		detail map[string]any,
	) error

	// List retrieves audit entries newest first with pagination and optional
	// inclusive time filters.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)
}
