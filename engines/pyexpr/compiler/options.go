package compiler

import (
	"fmt"
	"log/slog"
	"os"
)

// FunctionalOption is a function that configures a Compiler instance.
type FunctionalOption func(*Compiler) error

// WithLogHandler creates an option to set the log handler for the compiler.
// This is the preferred logging option as the slog.Handler interface offers
// the most flexibility.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		// Clear logger if handler is explicitly set
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the compiler,
// for users who want to customize their logging group configuration.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		// Clear handler if logger is explicitly set
		c.logHandler = nil
		return nil
	}
}

// applyDefaults sets the default values for a compiler.
func (c *Compiler) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
}

// validate checks if the compiler configuration is complete.
func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
