// Package http provides HTTP handlers for the audit trail.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courtside/registration/internal/audit/http/dto"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
	"github.com/courtside/registration/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit trail queries.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(auditLogUseCase auditUseCase.AuditLogUseCase, logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves audit entries with pagination and optional time filters.
// GET /v1/admin/audit?offset=0&limit=50&created_at_from=...&created_at_to=...
// Requires an admin or finance bearer token. Returns 200 OK with entries ordered
// newest first. Accepts optional created_at_from and created_at_to query
// parameters in RFC3339 format; both boundaries are inclusive.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var createdAtFrom *time.Time
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-08-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtFrom = &utcTime
	}

	var createdAtTo *time.Time
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-08-31T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtTo = &utcTime
	}

	if createdAtFrom != nil && createdAtTo != nil && createdAtFrom.After(*createdAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	entries, err := h.auditLogUseCase.List(c.Request.Context(), offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}
