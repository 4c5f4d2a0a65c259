// Package mocks provides mock implementations of payment use case interfaces
// for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	paymentDomain "github.com/courtside/registration/internal/payments/domain"
	paymentUseCase "github.com/courtside/registration/internal/payments/usecase"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// MockCheckoutUseCase is a mock implementation of usecase.CheckoutUseCase.
type MockCheckoutUseCase struct {
	mock.Mock
}

func (m *MockCheckoutUseCase) CreateSession(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
) (*paymentUseCase.CheckoutOutput, error) {
	args := m.Called(ctx, eventID, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentUseCase.CheckoutOutput), args.Error(1)
}

// MockWebhookUseCase is a mock implementation of usecase.WebhookUseCase.
type MockWebhookUseCase struct {
	mock.Mock
}

func (m *MockWebhookUseCase) Process(
	ctx context.Context,
	payload []byte,
	signatureHeader string,
) error {
	args := m.Called(ctx, payload, signatureHeader)
	return args.Error(0)
}

// MockRefundUseCase is a mock implementation of usecase.RefundUseCase.
type MockRefundUseCase struct {
	mock.Mock
}

func (m *MockRefundUseCase) IssueRefund(
	ctx context.Context,
	input paymentUseCase.IssueRefundInput,
) (*paymentDomain.Refund, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Refund), args.Error(1)
}
