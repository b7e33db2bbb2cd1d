// Package toolscript safely executes a restricted subset of Python-style
// expression syntax, typically generated by a language model, against a
// caller-supplied registry of named tools. The grammar permits assignment,
// tool calls, literals, single-comparison conditionals, name references and
// subscripts; everything else is rejected. Calling a registered tool is the
// only way evaluated code can affect anything outside its own variables.
package toolscript

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-toolscript/engines/pyexpr"
	"github.com/robbyt/go-toolscript/platform"
	"github.com/robbyt/go-toolscript/platform/script/loader"
	"github.com/robbyt/go-toolscript/platform/tool"
)

// FromString creates an evaluator from inline script source. The returned
// evaluator follows the "compile once, run many times" pattern: per-run
// variable bindings are supplied with AddDataToContext before each Eval.
func FromString(
	code string,
	toolbox tool.Registry,
	logHandler slog.Handler,
) (platform.Evaluator, error) {
	l, err := loader.NewFromString(code)
	if err != nil {
		return nil, err
	}

	return pyexpr.FromPyExprLoader(logHandler, l, toolbox)
}

// FromFile creates an evaluator from a script file on disk.
func FromFile(
	path string,
	toolbox tool.Registry,
	logHandler slog.Handler,
) (platform.Evaluator, error) {
	l, err := loader.NewFromDisk(path)
	if err != nil {
		return nil, err
	}

	return pyexpr.FromPyExprLoader(logHandler, l, toolbox)
}

// Evaluate parses and runs code in one shot against the provided tools,
// returning the native Go result value: the value of the last top-level
// statement, or the "result" binding fallback, or the whole binding table.
//
// Example:
//
//	add := tool.Func(func(_ context.Context, args []any, _ map[string]any) (any, error) {
//	    return args[0].(int64) + args[1].(int64), nil
//	})
//	result, err := toolscript.Evaluate(ctx, "result = add(2, 3)", tool.Registry{"add": add})
func Evaluate(ctx context.Context, code string, toolbox tool.Registry) (any, error) {
	ev, err := FromString(code, toolbox, slog.Default().Handler())
	if err != nil {
		return nil, err
	}

	resp, err := ev.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("evaluator returned a nil response")
	}

	return resp.Interface(), nil
}

// EvaluateWithBuiltins is like Evaluate, but merges the base builtin tools
// (print, range, float, int, bool, str) under the caller's toolbox, letting
// the toolbox shadow any builtin by name.
func EvaluateWithBuiltins(ctx context.Context, code string, toolbox tool.Registry) (any, error) {
	merged := tool.Merge(tool.Builtins(slog.Default().Handler()), toolbox)
	return Evaluate(ctx, code, merged)
}
