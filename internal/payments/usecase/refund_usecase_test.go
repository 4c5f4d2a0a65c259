package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	authDomain "github.com/courtside/registration/internal/auth/domain"
	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/metrics"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	"github.com/courtside/registration/internal/payments/provider"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

type refundFixture struct {
	useCase          RefundUseCase
	paymentRepo      *mockPaymentRepository
	refundRepo       *mockRefundRepository
	registrationRepo *mockRegistrationRepository
	auditLog         *mockAuditLogUseCase
	providerClient   *mockProviderClient
}

func newRefundFixture() *refundFixture {
	f := &refundFixture{
		paymentRepo:      &mockPaymentRepository{},
		refundRepo:       &mockRefundRepository{},
		registrationRepo: &mockRegistrationRepository{},
		auditLog:         &mockAuditLogUseCase{},
		providerClient:   &mockProviderClient{},
	}
	f.useCase = NewRefundUseCase(
		f.paymentRepo,
		f.refundRepo,
		f.registrationRepo,
		f.auditLog,
		f.providerClient,
		passthroughTxManager{},
		metrics.NewNoOpBusinessMetrics(),
		testLogger(),
	)
	return f
}

func financeActor() *authDomain.Actor {
	return &authDomain.Actor{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     "finance-desk",
		Role:     authDomain.RoleFinance,
		IsActive: true,
	}
}

func paidPayment() *paymentDomain.Payment {
	return &paymentDomain.Payment{
		ID:                      uuid.Must(uuid.NewV7()),
		RegistrationID:          uuid.Must(uuid.NewV7()),
		EventID:                 uuid.Must(uuid.NewV7()),
		ProviderSessionID:       "cs_test_1",
		ProviderPaymentIntentID: "pi_1",
		AmountCents:             2500,
		Currency:                "eur",
		Status:                  paymentDomain.StatusPaid,
	}
}

func TestRefundUseCase_IssueRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("full refund releases the registration", func(t *testing.T) {
		f := newRefundFixture()

		actor := financeActor()
		payment := paidPayment()
		registration := pendingRegistration(payment.EventID)
		registration.ID = payment.RegistrationID
		registration.PaymentStatus = registrationDomain.PaymentStatusPaid
		updated := *payment
		updated.RefundedCents = 2500
		updated.Status = paymentDomain.StatusRefunded

		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)
		f.providerClient.On("CreateRefund", ctx, provider.RefundInput{
			PaymentIntentID: "pi_1",
			AmountCents:     2500,
			Reason:          "event cancelled",
		}).Return(&provider.Refund{RefundID: "re_1", Status: "succeeded"}, nil)
		f.refundRepo.On("Create", ctx, mock.MatchedBy(func(r *paymentDomain.Refund) bool {
			return r.PaymentID == payment.ID &&
				r.AmountCents == 2500 &&
				r.ProviderRefundID == "re_1" &&
				r.ActorID != nil && *r.ActorID == actor.ID
		})).Return(nil)
		f.paymentRepo.On("IncrementRefunded", ctx, payment.ID, int64(2500)).
			Return(&updated, nil)
		f.registrationRepo.On("Get", ctx, payment.RegistrationID).Return(registration, nil)
		f.registrationRepo.On("Update", ctx, mock.MatchedBy(func(r *registrationDomain.Registration) bool {
			return r.PaymentStatus == registrationDomain.PaymentStatusRefunded
		})).Return(nil)
		f.auditLog.On("Record", ctx, "finance-desk", auditDomain.ActionRefundIssued,
			"payment", payment.ID, mock.Anything).Return(nil)

		refund, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID: payment.ID,
			Reason:    "event cancelled",
			Actor:     actor,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2500), refund.AmountCents)
		assert.Equal(t, "re_1", refund.ProviderRefundID)
		f.registrationRepo.AssertExpectations(t)
		f.auditLog.AssertExpectations(t)
	})

	t.Run("partial refund keeps the registration", func(t *testing.T) {
		f := newRefundFixture()

		actor := financeActor()
		payment := paidPayment()
		amount := int64(1000)
		updated := *payment
		updated.RefundedCents = 1000
		updated.Status = paymentDomain.StatusPartiallyRefunded

		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)
		f.providerClient.On("CreateRefund", ctx, mock.MatchedBy(func(input provider.RefundInput) bool {
			return input.AmountCents == 1000
		})).Return(&provider.Refund{RefundID: "re_2", Status: "succeeded"}, nil)
		f.refundRepo.On("Create", ctx, mock.AnythingOfType("*domain.Refund")).Return(nil)
		f.paymentRepo.On("IncrementRefunded", ctx, payment.ID, int64(1000)).
			Return(&updated, nil)
		f.auditLog.On("Record", ctx, "finance-desk", auditDomain.ActionRefundIssued,
			"payment", payment.ID, mock.Anything).Return(nil)

		refund, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID:   payment.ID,
			AmountCents: &amount,
			Reason:      "late withdrawal",
			Actor:       actor,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1000), refund.AmountCents)
		f.registrationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("staff role is forbidden", func(t *testing.T) {
		f := newRefundFixture()

		actor := financeActor()
		actor.Role = authDomain.RoleStaff

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID: uuid.Must(uuid.NewV7()),
			Actor:     actor,
		})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.paymentRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("missing actor is forbidden", func(t *testing.T) {
		f := newRefundFixture()

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID: uuid.Must(uuid.NewV7()),
		})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unconfirmed payment is not refundable", func(t *testing.T) {
		f := newRefundFixture()

		payment := paidPayment()
		payment.Status = paymentDomain.StatusRequiresPayment
		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID: payment.ID,
			Actor:     financeActor(),
		})

		assert.ErrorIs(t, err, paymentDomain.ErrPaymentNotRefundable)
		f.providerClient.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything)
	})

	t.Run("amount above the remaining balance is rejected", func(t *testing.T) {
		f := newRefundFixture()

		payment := paidPayment()
		payment.RefundedCents = 2000
		payment.Status = paymentDomain.StatusPartiallyRefunded
		amount := int64(1000)
		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID:   payment.ID,
			AmountCents: &amount,
			Actor:       financeActor(),
		})

		assert.ErrorIs(t, err, paymentDomain.ErrRefundExceedsBalance)
		f.providerClient.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		f := newRefundFixture()

		payment := paidPayment()
		amount := int64(0)
		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID:   payment.ID,
			AmountCents: &amount,
			Actor:       financeActor(),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("provider failure leaves the ledger untouched", func(t *testing.T) {
		f := newRefundFixture()

		payment := paidPayment()
		f.paymentRepo.On("Get", ctx, payment.ID).Return(payment, nil)
		f.providerClient.On("CreateRefund", ctx, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "payment provider request failed"))

		_, err := f.useCase.IssueRefund(ctx, IssueRefundInput{
			PaymentID: payment.ID,
			Actor:     financeActor(),
		})

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		f.refundRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.paymentRepo.AssertNotCalled(t, "IncrementRefunded",
			mock.Anything, mock.Anything, mock.Anything)
	})
}
