// Package repository provides data persistence for audit entries.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
)

// PostgreSQLAuditLogRepository implements audit entry persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}

// Create inserts a new audit entry. Handles nil detail as database NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	var detailJSON []byte
	var err error

	if entry.Detail != nil {
		detailJSON, err = json.Marshal(entry.Detail)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry detail")
		}
	}

	query := `INSERT INTO audit_log_entries (id, actor, action, entity_type, entity_id, detail, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Actor,
		string(entry.Action),
		entry.EntityType,
		entry.EntityID,
		detailJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}

	return nil
}

// List retrieves audit entries ordered by ID descending (newest first) with
// pagination and optional inclusive time filters (nil means no bound).
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	// Build dynamic WHERE clause based on provided filters
	var conditions []string
	var args []interface{}

	if createdAtFrom != nil {
		args = append(args, *createdAtFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if createdAtTo != nil {
		args = append(args, *createdAtTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT id, actor, action, entity_type, entity_id, detail, created_at
			  FROM audit_log_entries`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		var entry auditDomain.Entry
		var detailJSON []byte
		var action string

		err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&action,
			&entry.EntityType,
			&entry.EntityID,
			&detailJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit entry")
		}

		entry.Action = auditDomain.Action(action)

		if detailJSON != nil {
			if err := json.Unmarshal(detailJSON, &entry.Detail); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit entry detail")
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit entries")
	}

	return entries, nil
}
