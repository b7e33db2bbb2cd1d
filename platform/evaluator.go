package platform

import (
	"context"

	"github.com/robbyt/go-toolscript/platform/data"
)

// EvalOnly is the interface for the generic code evaluator.
type EvalOnly interface {
	// Eval evaluates the pre-compiled script with data from the context.
	// The script, tool registry, and configuration were provided during
	// evaluator creation; runtime data is retrieved using the
	// ExecutableUnit's DataProvider.
	//
	// This design encourages the "compile once, run many times" pattern,
	// where script parsing is separated from execution. For dynamic data,
	// use a ContextProvider with the constants.EvalData key.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// Evaluator combines the EvalOnly and data.Setter interfaces, providing a
// unified API for data preparation and script evaluation. The two steps can
// be performed separately while maintaining their logical connection.
type Evaluator interface {
	EvalOnly
	data.Setter
}
