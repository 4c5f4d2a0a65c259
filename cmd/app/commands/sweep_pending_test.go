package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	registrationMocks "github.com/courtside/registration/internal/registrations/http/mocks"
)

func TestRunSweepPending(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	olderThan := 30 * time.Minute

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &registrationMocks.MockIntentUseCase{}
		mockUseCase.On("SweepPending", ctx, olderThan).Return(int64(7), nil)

		var out bytes.Buffer
		err := RunSweepPending(ctx, mockUseCase, logger, &out, olderThan, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Swept 7 pending registration(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &registrationMocks.MockIntentUseCase{}
		mockUseCase.On("SweepPending", ctx, olderThan).Return(int64(3), nil)

		var out bytes.Buffer
		err := RunSweepPending(ctx, mockUseCase, logger, &out, olderThan, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 3`)
		require.Contains(t, out.String(), `"older_than": "30m0s"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-duration", func(t *testing.T) {
		mockUseCase := &registrationMocks.MockIntentUseCase{}
		err := RunSweepPending(ctx, mockUseCase, logger, &bytes.Buffer{}, 0, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "older-than must be a positive duration")
	})

	t.Run("sweep-failure", func(t *testing.T) {
		mockUseCase := &registrationMocks.MockIntentUseCase{}
		mockUseCase.On("SweepPending", ctx, olderThan).
			Return(int64(0), fmt.Errorf("connection refused"))

		err := RunSweepPending(ctx, mockUseCase, logger, &bytes.Buffer{}, olderThan, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to sweep pending registrations")
		mockUseCase.AssertExpectations(t)
	})
}
