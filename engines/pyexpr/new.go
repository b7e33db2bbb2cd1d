// Package pyexpr assembles the restricted-Python engine: a compiler that
// validates the allowed grammar subset and an evaluator that walks the
// resulting syntax tree against a caller-supplied tool registry.
package pyexpr

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-toolscript/engines/pyexpr/compiler"
	"github.com/robbyt/go-toolscript/engines/pyexpr/evaluator"
	"github.com/robbyt/go-toolscript/platform/constants"
	"github.com/robbyt/go-toolscript/platform/data"
	"github.com/robbyt/go-toolscript/platform/script"
	"github.com/robbyt/go-toolscript/platform/script/loader"
	"github.com/robbyt/go-toolscript/platform/tool"
)

// FromPyExprLoader creates a pyexpr evaluator from a loader, with dynamic
// runtime bindings only (ContextProvider). Use AddDataToContext on the
// returned evaluator to seed variables for a given Eval call.
func FromPyExprLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	toolbox tool.Registry,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(
		logHandler,
		ldr,
		data.NewContextProvider(constants.EvalData),
		toolbox,
	)
}

// FromPyExprLoaderWithData creates a pyexpr evaluator with both static and
// dynamic binding capabilities: staticData is bound on every run, and
// per-run data added with AddDataToContext overrides it.
func FromPyExprLoaderWithData(
	logHandler slog.Handler,
	ldr loader.Loader,
	toolbox tool.Registry,
	staticData map[string]any,
) (*evaluator.Evaluator, error) {
	staticProvider := data.NewStaticProvider(staticData)
	dynamicProvider := data.NewContextProvider(constants.EvalData)
	compositeProvider := data.NewCompositeProvider(staticProvider, dynamicProvider)

	return NewEvaluator(
		logHandler,
		ldr,
		compositeProvider,
		toolbox,
	)
}

// NewCompiler creates a new pyexpr compiler using the functional options
// pattern. Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles the script from the loader and returns an evaluator
// ready for execution, implementing the platform.Evaluator interface.
func NewEvaluator(
	logHandler slog.Handler,
	ldr loader.Loader,
	dataProvider data.Provider,
	toolbox tool.Registry,
) (*evaluator.Evaluator, error) {
	if dataProvider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	var compilerOpts []compiler.FunctionalOption
	if logHandler != nil {
		compilerOpts = append(compilerOpts, compiler.WithLogHandler(logHandler))
	}
	comp, err := NewCompiler(compilerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pyexpr compiler: %w", err)
	}

	execUnitID := ""
	if sourceURL := ldr.GetSourceURL(); sourceURL != nil {
		execUnitID = sourceURL.String()
	}

	execUnit, err := script.NewExecutableUnit(
		logHandler,
		execUnitID,
		ldr,
		comp,
		dataProvider,
	)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit, toolbox), nil
}
