package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/courtside/registration/internal/auth/domain"
	authUseCase "github.com/courtside/registration/internal/auth/usecase"
)

// RunCreateActor creates a new administrative actor with a generated secret.
// The plain secret is printed once and never stored; only its hash is kept.
//
// Requirements: Database must be migrated and accessible.
func RunCreateActor(
	ctx context.Context,
	actorUseCase authUseCase.ActorUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, role string,
	active bool,
	format string,
) error {
	actorRole := authDomain.Role(role)
	if !actorRole.Valid() {
		return fmt.Errorf("invalid role: %s (valid options: admin, finance, staff)", role)
	}

	logger.Info("creating actor",
		slog.String("name", name),
		slog.String("role", role),
		slog.Bool("active", active),
	)

	output, err := actorUseCase.Create(ctx, &authDomain.CreateActorInput{
		Name:     name,
		Role:     actorRole,
		IsActive: active,
	})
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}

	if format == "json" {
		outputCreateActorJSON(writer, output, name, role, active)
	} else {
		outputCreateActorText(writer, output, name, role, active)
	}

	logger.Info("actor created", slog.String("actor_id", output.ID.String()))

	return nil
}

// outputCreateActorText outputs the result in human-readable text format.
func outputCreateActorText(
	writer io.Writer,
	output *authDomain.CreateActorOutput,
	name, role string,
	active bool,
) {
	fmt.Fprintln(writer, "Actor created successfully!")
	fmt.Fprintf(writer, "ID:     %s\n", output.ID)
	fmt.Fprintf(writer, "Name:   %s\n", name)
	fmt.Fprintf(writer, "Role:   %s\n", role)
	fmt.Fprintf(writer, "Active: %t\n", active)
	fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	fmt.Fprintln(writer, "")
	fmt.Fprintln(writer, "Store the secret securely. It cannot be retrieved again.")
}

// outputCreateActorJSON outputs the result in JSON format for machine consumption.
func outputCreateActorJSON(
	writer io.Writer,
	output *authDomain.CreateActorOutput,
	name, role string,
	active bool,
) {
	result := map[string]interface{}{
		"id":     output.ID.String(),
		"name":   name,
		"role":   role,
		"active": active,
		"secret": output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
