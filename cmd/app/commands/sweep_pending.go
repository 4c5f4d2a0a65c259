package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	registrationUseCase "github.com/courtside/registration/internal/registrations/usecase"
)

// RunSweepPending deletes pending registrations older than the cutoff,
// releasing the spots they held. Supports text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunSweepPending(
	ctx context.Context,
	intentUseCase registrationUseCase.IntentUseCase,
	logger *slog.Logger,
	writer io.Writer,
	olderThan time.Duration,
	format string,
) error {
	if olderThan <= 0 {
		return fmt.Errorf("older-than must be a positive duration, got: %s", olderThan)
	}

	logger.Info("sweeping pending registrations",
		slog.Duration("older_than", olderThan),
	)

	count, err := intentUseCase.SweepPending(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("failed to sweep pending registrations: %w", err)
	}

	if format == "json" {
		outputSweepPendingJSON(writer, count, olderThan)
	} else {
		outputSweepPendingText(writer, count, olderThan)
	}

	logger.Info("sweep completed",
		slog.Int64("count", count),
		slog.Duration("older_than", olderThan),
	)

	return nil
}

// outputSweepPendingText outputs the result in human-readable text format.
func outputSweepPendingText(writer io.Writer, count int64, olderThan time.Duration) {
	fmt.Fprintf(writer, "Swept %d pending registration(s) older than %s\n", count, olderThan)
}

// outputSweepPendingJSON outputs the result in JSON format for machine consumption.
func outputSweepPendingJSON(writer io.Writer, count int64, olderThan time.Duration) {
	result := map[string]interface{}{
		"count":      count,
		"older_than": olderThan.String(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
