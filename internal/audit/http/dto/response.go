// Package dto provides data transfer objects for audit trail API responses.
package dto

import (
	"time"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
)

// AuditEntryResponse represents an audit entry in API responses.
type AuditEntryResponse struct {
	ID         string         `json:"id"`
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MapEntryToResponse converts a domain audit entry to an API response.
func MapEntryToResponse(entry *auditDomain.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID.String(),
		Actor:      entry.Actor,
		Action:     string(entry.Action),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID.String(),
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
}

// ListAuditEntriesResponse represents a paginated list of audit entries.
type ListAuditEntriesResponse struct {
	Data []AuditEntryResponse `json:"data"`
}

// MapEntriesToListResponse converts domain audit entries to a list API response.
func MapEntriesToListResponse(entries []*auditDomain.Entry) ListAuditEntriesResponse {
	responses := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, MapEntryToResponse(entry))
	}
	return ListAuditEntriesResponse{Data: responses}
}
