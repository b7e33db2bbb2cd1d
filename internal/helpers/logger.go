package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a configured handler and logger pair for a component
// of the evaluation pipeline. If the provided handler is nil, a default text
// handler writing to stderr is created and grouped under the component name.
//
// Parameters:
//   - handler: the slog.Handler to use, or nil for defaults
//   - componentName: the name of the component (e.g. "pyexpr", "script")
//   - groupName: optional additional group name within the component
func SetupLogger(handler slog.Handler, componentName string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stderr, nil)
		handler = defaultHandler.WithGroup(componentName)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	var logger *slog.Logger
	if groupName != "" {
		logger = slog.New(handler.WithGroup(groupName))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
