package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jobUseCase "github.com/courtside/registration/internal/jobs/usecase"
)

// RunJobRunner runs the scheduled job runner loop as a standalone worker.
// Blocks until receiving SIGINT/SIGTERM; a canceled context is a clean exit.
func RunJobRunner(
	ctx context.Context,
	runnerUseCase jobUseCase.RunnerUseCase,
	logger *slog.Logger,
) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting standalone job runner")

	if err := runnerUseCase.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("job runner stopped")
	return nil
}
