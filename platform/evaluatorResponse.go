package platform

import "github.com/robbyt/go-toolscript/platform/data"

// EvaluatorResponse is the value produced by a completed evaluation,
// wrapping the native Go result with some execution metadata.
type EvaluatorResponse interface {
	// Type returns the shape of the result value.
	Type() data.Types

	// Inspect returns a string representation of the result value.
	Inspect() string

	// Interface converts the result to a native Go value.
	Interface() any

	// GetScriptExeID returns the ID of the executable unit that produced
	// this response.
	GetScriptExeID() string

	// GetExecTime returns the wall-clock duration of the evaluation.
	GetExecTime() string
}
