// Package http provides HTTP handlers for job runner operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/registration/internal/httputil"
	jobUseCase "github.com/courtside/registration/internal/jobs/usecase"
)

// JobHandler handles HTTP requests for job runner operations.
type JobHandler struct {
	runnerUseCase jobUseCase.RunnerUseCase
	logger        *slog.Logger
}

// NewJobHandler creates a new job handler with required dependencies.
func NewJobHandler(runnerUseCase jobUseCase.RunnerUseCase, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		runnerUseCase: runnerUseCase,
		logger:        logger,
	}
}

// RunHandler drains one batch of due jobs immediately.
// POST /v1/admin/jobs/run - Requires an admin bearer token.
// Returns 200 with the counts of the pass.
func (h *JobHandler) RunHandler(c *gin.Context) {
	result, err := h.runnerUseCase.ProcessDue(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}
