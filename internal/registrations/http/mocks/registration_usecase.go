// Package mocks provides mock implementations of registration use case
// interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
)

// MockIntentUseCase is a mock implementation of usecase.IntentUseCase.
type MockIntentUseCase struct {
	mock.Mock
}

func (m *MockIntentUseCase) CreateIntent(
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

func (m *MockIntentUseCase) FinalizeFree(
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

func (m *MockIntentUseCase) SweepPending(
	ctx context.Context,
	olderThan time.Duration,
) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdminUseCase is a mock implementation of usecase.AdminUseCase.
type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) ListByEvent(
	ctx context.Context,
	eventID uuid.UUID,
	offset, limit int,
) ([]*registrationDomain.Registration, error) {
	args := m.Called(ctx, eventID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registrationDomain.Registration), args.Error(1)
}

func (m *MockAdminUseCase) MarkWalkUp(
	ctx context.Context,
	eventID uuid.UUID,
	contact *registrationDomain.Contact,
	actor string,
) (*registrationDomain.Registration, error) {
	args := m.Called(ctx, eventID, contact, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registrationDomain.Registration), args.Error(1)
}
