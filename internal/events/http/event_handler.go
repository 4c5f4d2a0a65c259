// Package http provides HTTP handlers for event management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eventDomain "github.com/courtside/registration/internal/events/domain"
	"github.com/courtside/registration/internal/events/http/dto"
	eventUseCase "github.com/courtside/registration/internal/events/usecase"
	"github.com/courtside/registration/internal/httputil"
	customValidation "github.com/courtside/registration/internal/validation"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	eventUseCase eventUseCase.EventUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler with required dependencies.
func NewEventHandler(eventUseCase eventUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		logger:       logger,
	}
}

// parseEventID extracts and validates the :id path parameter.
func parseEventID(c *gin.Context) (uuid.UUID, error) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event id format: must be a valid UUID")
	}
	return eventID, nil
}

// ListPublishedHandler retrieves published events for the public site.
// GET /v1/events?offset=0&limit=50 - No authentication required.
func (h *EventHandler) ListPublishedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.ListPublished(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// GetHandler retrieves a single event.
// GET /v1/events/:id - No authentication required.
func (h *EventHandler) GetHandler(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	event, err := h.eventUseCase.Get(c.Request.Context(), eventID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// AdminListHandler retrieves events of any status for the admin console.
// GET /v1/admin/events - Requires an admin bearer token.
func (h *EventHandler) AdminListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// CreateHandler creates a new event in draft status.
// POST /v1/admin/events - Requires an admin bearer token.
// Returns 201 Created with the event.
func (h *EventHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	event, err := h.eventUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEventToResponse(event))
}

// UpdateHandler modifies an event's mutable fields.
// PUT /v1/admin/events/:id - Requires an admin bearer token.
func (h *EventHandler) UpdateHandler(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	event, err := h.eventUseCase.Update(c.Request.Context(), eventID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// UpdateStatusHandler moves an event through its lifecycle.
// PATCH /v1/admin/events/:id/status - Requires an admin bearer token.
// Returns 409 Conflict when the transition is not allowed.
func (h *EventHandler) UpdateStatusHandler(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	event, err := h.eventUseCase.UpdateStatus(c.Request.Context(), eventID, eventDomain.Status(req.Status))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}
