// Package http provides HTTP handlers for checkout, webhook and refund
// operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/courtside/registration/internal/auth/http"
	"github.com/courtside/registration/internal/httputil"
	"github.com/courtside/registration/internal/payments/http/dto"
	paymentUseCase "github.com/courtside/registration/internal/payments/usecase"
	customValidation "github.com/courtside/registration/internal/validation"
)

// SignatureHeader carries the provider's webhook signature.
const SignatureHeader = "Provider-Signature"

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	checkoutUseCase paymentUseCase.CheckoutUseCase
	webhookUseCase  paymentUseCase.WebhookUseCase
	refundUseCase   paymentUseCase.RefundUseCase
	logger          *slog.Logger
}

// NewPaymentHandler creates a new payment handler with required dependencies.
func NewPaymentHandler(
	checkoutUseCase paymentUseCase.CheckoutUseCase,
	webhookUseCase paymentUseCase.WebhookUseCase,
	refundUseCase paymentUseCase.RefundUseCase,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		checkoutUseCase: checkoutUseCase,
		webhookUseCase:  webhookUseCase,
		refundUseCase:   refundUseCase,
		logger:          logger,
	}
}

// CheckoutHandler starts a paid registration by brokering a provider checkout
// session.
// POST /v1/checkout - No authentication required, rate limited per client IP.
// Returns 201 Created with the session URL to redirect the participant to.
func (h *PaymentHandler) CheckoutHandler(c *gin.Context) {
	var req dto.CheckoutRequest

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

	output, err := h.checkoutUseCase.CreateSession(c.Request.Context(), eventID, req.ToContact())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCheckoutToResponse(output))
}

// WebhookHandler receives payment provider webhook deliveries.
// POST /v1/webhooks/payment - Authenticated by the signature header, not by a
// bearer token.
// Returns 200 with an acknowledgement once the delivery is recorded; the
// provider retries on any other status.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("failed to read webhook payload"), h.logger)
		return
	}

	err = h.webhookUseCase.Process(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAckResponse{Received: true})
}

// RefundHandler issues a refund against a confirmed payment.
// POST /v1/payments/:id/refunds - Requires an admin or finance bearer token.
// Returns 201 Created with the refund record.
func (h *PaymentHandler) RefundHandler(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid payment id format: must be a valid UUID"), h.logger)
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	actor, _ := authHTTP.GetActor(c.Request.Context())

	refund, err := h.refundUseCase.IssueRefund(c.Request.Context(), paymentUseCase.IssueRefundInput{
		PaymentID:   paymentID,
		AmountCents: req.AmountCents,
		Reason:      req.Reason,
		Actor:       actor,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRefundToResponse(refund))
}
