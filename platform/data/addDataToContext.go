package data

import (
	"context"
	"fmt"
	"log/slog"
)

// AddDataToContextHelper implements the common logic for adding runtime data
// to a context ahead of evaluation. Engine evaluators delegate their
// data.Setter implementation here to keep behavior consistent.
func AddDataToContextHelper(
	ctx context.Context,
	logger *slog.Logger,
	provider Provider,
	d ...map[string]any,
) (context.Context, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if provider == nil {
		logger.WarnContext(ctx, "no data provider available for context preparation")
		return ctx, fmt.Errorf("no data provider available")
	}

	enrichedCtx, err := provider.AddDataToContext(ctx, d...)
	if err != nil {
		return ctx, fmt.Errorf("failed to prepare context: %w", err)
	}

	return enrichedCtx, nil
}
