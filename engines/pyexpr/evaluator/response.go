package evaluator

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robbyt/go-toolscript/engines/pyexpr/internal"
	"github.com/robbyt/go-toolscript/platform/data"
	"github.com/robbyt/go-toolscript/platform/tool"
)

// execResult wraps the native Go value produced by an evaluation together
// with execution metadata. It implements platform.EvaluatorResponse.
type execResult struct {
	value       any
	execTime    time.Duration
	scriptExeID string
	logHandler  slog.Handler
	logger      *slog.Logger
}

func newEvalResult(handler slog.Handler, value any, execTime time.Duration, versionID string) *execResult {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stderr, nil)
		handler = defaultHandler.WithGroup("pyexpr")
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	return &execResult{
		value:       value,
		execTime:    execTime,
		scriptExeID: versionID,
		logHandler:  handler,
		logger:      slog.New(handler.WithGroup("execResult")),
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf(
		"ExecResult{Type: %s, Value: %v, ExecTime: %s, ScriptExeID: %s}",
		r.Type(), r.value, r.GetExecTime(), r.GetScriptExeID())
}

// Type maps the native result value to the platform type enum.
func (r *execResult) Type() data.Types {
	return internal.TypeOf(r.value)
}

// Inspect returns a script-language rendering of the result value.
func (r *execResult) Inspect() string {
	return tool.Str(r.value)
}

// Interface returns the native Go value.
func (r *execResult) Interface() any {
	return r.value
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}
