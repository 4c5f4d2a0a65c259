// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	eventDomain "github.com/courtside/registration/internal/events/domain"
)

// MockEventUseCase is a mock implementation of EventUseCase for testing.
type MockEventUseCase struct {
	mock.Mock
}

// Create mocks the Create method of EventUseCase.
func (m *MockEventUseCase) Create(
	ctx context.Context,
	input *eventDomain.CreateEventInput,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

// Get mocks the Get method of EventUseCase.
func (m *MockEventUseCase) Get(ctx context.Context, eventID uuid.UUID) (*eventDomain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

// ListPublished mocks the ListPublished method of EventUseCase.
func (m *MockEventUseCase) ListPublished(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventDomain.Event), args.Error(1)
}

// List mocks the List method of EventUseCase.
func (m *MockEventUseCase) List(ctx context.Context, offset, limit int) ([]*eventDomain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventDomain.Event), args.Error(1)
}

// Update mocks the Update method of EventUseCase.
func (m *MockEventUseCase) Update(
	ctx context.Context,
	eventID uuid.UUID,
	input *eventDomain.UpdateEventInput,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, eventID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method of EventUseCase.
func (m *MockEventUseCase) UpdateStatus(
	ctx context.Context,
	eventID uuid.UUID,
	status eventDomain.Status,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, eventID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}
