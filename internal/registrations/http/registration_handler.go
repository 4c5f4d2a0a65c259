// Package http provides HTTP handlers for registration operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/courtside/registration/internal/auth/http"
	"github.com/courtside/registration/internal/httputil"
	"github.com/courtside/registration/internal/registrations/http/dto"
	registrationUseCase "github.com/courtside/registration/internal/registrations/usecase"
	customValidation "github.com/courtside/registration/internal/validation"
)

// RegistrationHandler handles HTTP requests for registration operations.
type RegistrationHandler struct {
	intentUseCase registrationUseCase.IntentUseCase
	adminUseCase  registrationUseCase.AdminUseCase
	logger        *slog.Logger
}

// NewRegistrationHandler creates a new registration handler with required
// dependencies.
func NewRegistrationHandler(
	intentUseCase registrationUseCase.IntentUseCase,
	adminUseCase registrationUseCase.AdminUseCase,
	logger *slog.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		intentUseCase: intentUseCase,
		adminUseCase:  adminUseCase,
		logger:        logger,
	}
}

// FreeRegistrationHandler completes an RSVP for a free event.
// POST /v1/registrations/free - No authentication required.
// Returns 201 Created with the registration; a repeat submission for the same
// event and email returns the existing registration.
func (h *RegistrationHandler) FreeRegistrationHandler(c *gin.Context) {
	var req dto.FreeRegistrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid event id format: must be a valid UUID"), h.logger)
		return
	}

	registration, err := h.intentUseCase.FinalizeFree(c.Request.Context(), eventID, req.ToContact())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRegistrationToResponse(registration))
}

// ListByEventHandler retrieves registrations for an event.
// GET /v1/admin/events/:id/registrations - Requires a staff, finance or admin
// bearer token.
func (h *RegistrationHandler) ListByEventHandler(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	registrations, err := h.adminUseCase.ListByEvent(c.Request.Context(), eventID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}

// WalkUpHandler records an on-site registration at the check-in desk.
// POST /v1/admin/events/:id/registrations/walkup - Requires a staff or admin
// bearer token.
// Returns 201 Created with the registration, or 409 Conflict when the event
// is at capacity or the participant already holds a paid spot.
func (h *RegistrationHandler) WalkUpHandler(c *gin.Context) {
	eventID, err := parseEventID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.WalkUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	actorName := "unknown"
	if actor, ok := authHTTP.GetActor(c.Request.Context()); ok {
		actorName = actor.Name
	}

	registration, err := h.adminUseCase.MarkWalkUp(c.Request.Context(), eventID, req.ToContact(), actorName)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRegistrationToResponse(registration))
}

// parseEventID extracts and validates the :id path parameter.
func parseEventID(c *gin.Context) (uuid.UUID, error) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event id format: must be a valid UUID")
	}
	return eventID, nil
}
