package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
)

// MySQLAuditLogRepository implements audit entry persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// NewMySQLAuditLogRepository creates a new MySQL audit log repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}

// Create inserts a new audit entry. Handles nil detail as database NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	var detailJSON []byte
	var err error

	if entry.Detail != nil {
		detailJSON, err = json.Marshal(entry.Detail)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry detail")
		}
	}

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit entry id")
	}
	entityID, err := entry.EntityID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit entity id")
	}

	query := `INSERT INTO audit_log_entries (id, actor, action, entity_type, entity_id, detail, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		entry.Actor,
		string(entry.Action),
		entry.EntityType,
		entityID,
		detailJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}

	return nil
}

// List retrieves audit entries ordered by created_at descending (newest first)
// with pagination and optional inclusive time filters (nil means no bound).
// UUIDs are stored as BINARY(16) and must be unmarshaled.
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	// Build dynamic WHERE clause based on provided filters
	var conditions []string
	var args []interface{}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}

	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, actor, action, entity_type, entity_id, detail, created_at
			  FROM audit_log_entries`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

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
		var rawID, rawEntityID []byte
		var detailJSON []byte
		var action string

		err := rows.Scan(
			&rawID,
			&entry.Actor,
			&action,
			&entry.EntityType,
			&rawEntityID,
			&detailJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit entry")
		}

		entry.ID, err = uuid.FromBytes(rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit entry id")
		}
		entry.EntityID, err = uuid.FromBytes(rawEntityID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit entity id")
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
