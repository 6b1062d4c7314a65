package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/notevault/internal/auth/usecase"
)

// RunCleanExpiredTokens deletes session tokens whose lifetime has elapsed.
// Supports text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	out io.Writer,
	format string,
) error {
	logger.Info("cleaning expired tokens")

	count, err := tokenUseCase.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	if format == "json" {
		if err := outputCleanExpiredJSON(out, count); err != nil {
			return err
		}
	} else {
		outputCleanExpiredText(out, count)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(out io.Writer, count int64) {
	fmt.Fprintf(out, "Successfully deleted %d expired token(s)\n", count)
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(out io.Writer, count int64) error {
	result := map[string]interface{}{
		"count": count,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(out, string(jsonBytes))
	return nil
}
