// Package compiler validates restricted-Python scripts and prepares them
// for evaluation.
package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/robbyt/go-toolscript/engines/pyexpr/compiler/internal/parse"
	"github.com/robbyt/go-toolscript/internal/helpers"
	"github.com/robbyt/go-toolscript/platform/script"
)

// Compiler parses restricted-Python source into an executable syntax tree,
// rejecting any construct outside the evaluator's allow-list.
type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new pyexpr Compiler instance with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "pyexpr", "Compiler")
	}

	return c, nil
}

func (c *Compiler) String() string {
	return "pyexpr.Compiler"
}

// Compile reads, normalizes, parses, and validates the script content.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	scriptBodyBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.compile(scriptBodyBytes)
}

func (c *Compiler) compile(scriptBodyBytes []byte) (*executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(scriptBodyBytes) == 0 {
		logger.Error("Compile called with empty script")
		return nil, ErrContentNil
	}

	// Strip any Markdown fences the generating model wrapped around the code
	cleaned := []byte(parse.Clean(string(scriptBodyBytes)))

	file, err := parse.Parse(cleaned)
	if err != nil {
		logger.Warn("Validation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if file == nil {
		logger.Error("Parse returned a nil syntax tree")
		return nil, ErrBytecodeNil
	}

	exec := newExecutable(cleaned, file)
	if exec == nil {
		logger.Warn("Failed to create executable from syntax tree")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Validation completed")
	return exec, nil
}
