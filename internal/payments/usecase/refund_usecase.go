package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	auditUseCase "github.com/courtside/registration/internal/audit/usecase"
	authDomain "github.com/courtside/registration/internal/auth/domain"
	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/metrics"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	"github.com/courtside/registration/internal/payments/provider"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// refundUseCase implements RefundUseCase.
type refundUseCase struct {
	paymentRepository      PaymentRepository
	refundRepository       RefundRepository
	registrationRepository RegistrationRepository
	auditLogUseCase        auditUseCase.AuditLogUseCase
	providerClient         provider.Client
	txManager              database.TxManager
	businessMetrics        metrics.BusinessMetrics
	logger                 *slog.Logger
}

// NewRefundUseCase creates a new refund use case with required dependencies.
func NewRefundUseCase(
	paymentRepository PaymentRepository,
	refundRepository RefundRepository,
	registrationRepository RegistrationRepository,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	providerClient provider.Client,
	txManager database.TxManager,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) RefundUseCase {
	return &refundUseCase{
		paymentRepository:      paymentRepository,
		refundRepository:       refundRepository,
		registrationRepository: registrationRepository,
		auditLogUseCase:        auditLogUseCase,
		providerClient:         providerClient,
		txManager:              txManager,
		businessMetrics:        businessMetrics,
		logger:                 logger,
	}
}

// IssueRefund refunds part or all of a confirmed payment. The provider call
// runs before any local write: a provider failure leaves the ledger untouched,
// while a local failure after a successful provider refund is reconciled by
// the charge.refunded webhook.
func (u *refundUseCase) IssueRefund(
	ctx context.Context,
	input IssueRefundInput,
) (refund *paymentDomain.Refund, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		u.businessMetrics.RecordOperation(ctx, "payments", "refund_issue", status)
		u.businessMetrics.RecordDuration(ctx, "payments", "refund_issue", time.Since(start), status)
	}()

	if input.Actor == nil ||
		!input.Actor.HasAnyRole(authDomain.RoleAdmin, authDomain.RoleFinance) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "refunds require the admin or finance role")
	}

	payment, err := u.paymentRepository.Get(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case paymentDomain.StatusPaid, paymentDomain.StatusPartiallyRefunded:
	default:
		return nil, paymentDomain.ErrPaymentNotRefundable
	}

	amountCents := payment.RemainingCents()
	if input.AmountCents != nil {
		amountCents = *input.AmountCents
	}
	if amountCents <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "refund amount must be positive")
	}
	if amountCents > payment.RemainingCents() {
		return nil, paymentDomain.ErrRefundExceedsBalance
	}

	providerRefund, err := u.providerClient.CreateRefund(ctx, provider.RefundInput{
		PaymentIntentID: payment.ProviderPaymentIntentID,
		AmountCents:     amountCents,
		Reason:          input.Reason,
	})
	if err != nil {
		return nil, err
	}

	refund = &paymentDomain.Refund{
		ID:               uuid.Must(uuid.NewV7()),
		PaymentID:        payment.ID,
		ProviderRefundID: providerRefund.RefundID,
		AmountCents:      amountCents,
		Reason:           input.Reason,
		ActorID:          &input.Actor.ID,
		CreatedAt:        time.Now().UTC(),
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.refundRepository.Create(ctx, refund); err != nil {
			return err
		}

		updated, err := u.paymentRepository.IncrementRefunded(ctx, payment.ID, amountCents)
		if err != nil {
			return err
		}

		if updated.Status == paymentDomain.StatusRefunded {
			if err := u.releaseRegistration(ctx, updated.RegistrationID); err != nil {
				return err
			}
		}

		return u.auditLogUseCase.Record(
			ctx,
			input.Actor.Name,
			auditDomain.ActionRefundIssued,
			"payment",
			payment.ID,
			map[string]any{
				"refund_id":          refund.ID.String(),
				"provider_refund_id": providerRefund.RefundID,
				"amount_cents":       amountCents,
				"reason":             input.Reason,
			},
		)
	})
	if err != nil {
		// The provider refund succeeded; the webhook delivery will bring the
		// ledger back in line.
		u.logger.Error(
			"failed to record refund after provider call",
			slog.String("payment_id", payment.ID.String()),
			slog.String("provider_refund_id", providerRefund.RefundID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return refund, nil
}

// releaseRegistration downgrades the registration for a fully refunded
// payment, freeing its spot.
func (u *refundUseCase) releaseRegistration(ctx context.Context, registrationID uuid.UUID) error {
	registration, err := u.registrationRepository.Get(ctx, registrationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	registration.PaymentStatus = registrationDomain.PaymentStatusRefunded
	registration.UpdatedAt = time.Now().UTC()
	return u.registrationRepository.Update(ctx, registration)
}
