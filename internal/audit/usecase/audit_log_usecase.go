// Package usecase implements business logic orchestration for the audit trail.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	apperrors "github.com/courtside/registration/internal/errors"
)

// auditLogUseCase implements AuditLogUseCase for recording audit entries.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
}

// Record appends an audit entry for a domain event. Generates a unique UUIDv7
// identifier and timestamp. The detail parameter is optional and can be nil.
func (a *auditLogUseCase) Record(
	ctx context.Context,
	actor string,
	action auditDomain.Action,
	entityType string,
	entityID uuid.UUID,
	detail map[string]any,
) error {
	if !action.Valid() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "unknown audit action "+string(action))
	}

	entry := &auditDomain.Entry{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.auditLogRepo.Create(ctx, entry); err != nil {
		return apperrors.Wrap(err, "failed to record audit entry")
	}

	return nil
}

// List retrieves audit entries newest first with pagination and optional
// inclusive time filters. All timestamps are expected in UTC.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	entries, err := a.auditLogRepo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}

	return entries, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
	}
}
