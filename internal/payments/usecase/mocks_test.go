package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/courtside/registration/internal/audit/domain"
	eventDomain "github.com/courtside/registration/internal/events/domain"
	jobDomain "github.com/courtside/registration/internal/jobs/domain"
	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	"github.com/courtside/registration/internal/payments/provider"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *paymentDomain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepository) Get(
	ctx context.Context,
	paymentID uuid.UUID,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetByProviderSessionID(
	ctx context.Context,
	sessionID string,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetByProviderPaymentIntentID(
	ctx context.Context,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) MarkPaid(
	ctx context.Context,
	sessionID, paymentIntentID string,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, sessionID, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) MarkFailed(
	ctx context.Context,
	registrationID uuid.UUID,
	paymentIntentID string,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, registrationID, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) IncrementRefunded(
	ctx context.Context,
	paymentID uuid.UUID,
	amountCents int64,
) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, paymentID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) SetRefundedTotal(
	ctx context.Context,
	paymentID uuid.UUID,
	totalCents int64,
) (*paymentDomain.Payment, bool, error) {
	args := m.Called(ctx, paymentID, totalCents)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Bool(1), args.Error(2)
}

type mockRefundRepository struct {
	mock.Mock
}

func (m *mockRefundRepository) Create(ctx context.Context, refund *paymentDomain.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *mockRefundRepository) ListByPayment(
	ctx context.Context,
	paymentID uuid.UUID,
) ([]*paymentDomain.Refund, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*paymentDomain.Refund), args.Error(1)
}

type mockWebhookEventRepository struct {
	mock.Mock
}

func (m *mockWebhookEventRepository) Insert(
	ctx context.Context,
	event *paymentDomain.WebhookEvent,
) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

type mockRegistrationRepository struct {
	mock.Mock
}

func (m *mockRegistrationRepository) Get(
	ctx context.Context,
	registrationID uuid.UUID,
) (*registrationDomain.Registration, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrationDomain.Registration), args.Error(1)
}

func (m *mockRegistrationRepository) GetPaidByEventAndEmail(
	ctx context.Context,
	eventID uuid.UUID,
	email string,
) (*registrationDomain.Registration, error) {
	args := m.Called(ctx, eventID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrationDomain.Registration), args.Error(1)
}

func (m *mockRegistrationRepository) Update(
	ctx context.Context,
	registration *registrationDomain.Registration,
) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Get(
	ctx context.Context,
	eventID uuid.UUID,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

type mockIntentCreator struct {
	mock.Mock
}

func (m *mockIntentCreator) CreateIntent(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
) (*registrationDomain.Registration, error) {
	args := m.Called(ctx, eventID, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrationDomain.Registration), args.Error(1)
}

type mockProviderClient struct {
	mock.Mock
}

func (m *mockProviderClient) CreateCheckoutSession(
	ctx context.Context,
	input provider.CheckoutSessionInput,
) (*provider.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CheckoutSession), args.Error(1)
}

func (m *mockProviderClient) CreateRefund(
	ctx context.Context,
	input provider.RefundInput,
) (*provider.Refund, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Refund), args.Error(1)
}

type mockJobScheduler struct {
	mock.Mock
}

func (m *mockJobScheduler) Schedule(
	ctx context.Context,
	jobType jobDomain.JobType,
	payload map[string]any,
	runAt time.Time,
) error {
	args := m.Called(ctx, jobType, payload, runAt)
	return args.Error(0)
}

type mockAuditLogUseCase struct {
	mock.Mock
}

func (m *mockAuditLogUseCase) Record(
	ctx context.Context,
	actor string,
	action auditDomain.Action,
	entityType string,
	entityID uuid.UUID,
	detail map[string]any,
) error {
	args := m.Called(ctx, actor, action, entityType, entityID, detail)
	return args.Error(0)
}

func (m *mockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Entry), args.Error(1)
}

// passthroughTxManager runs the function directly; the repositories are
// mocked so no real transaction is needed.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stampingTxManager marks the context handed to the function so tests can
// assert which repository calls run inside the transaction.
type stampingTxManager struct{}

type txStampKey struct{}

func (stampingTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txStampKey{}, true))
}

func inTx(ctx context.Context) bool {
	return ctx.Value(txStampKey{}) != nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
