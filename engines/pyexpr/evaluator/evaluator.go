// Package evaluator walks validated pyexpr syntax trees against a tool
// registry and a per-run binding table.
package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-toolscript/internal/helpers"
	"github.com/robbyt/go-toolscript/platform"
	"github.com/robbyt/go-toolscript/platform/data"
	"github.com/robbyt/go-toolscript/platform/script"
	"github.com/robbyt/go-toolscript/platform/tool"
)

// Evaluator executes a compiled restricted-Python script on the pyexpr
// engine. Each Eval call owns a fresh binding table, so a single Evaluator
// is safe for concurrent use as long as the registered tools are.
type Evaluator struct {
	// toolbox is the read-only registry of callables the script may invoke
	toolbox tool.Registry

	// execUnit contains the compiled script and data provider
	execUnit *script.ExecutableUnit

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator. The toolbox is copied, so later mutation of
// the caller's registry does not affect running evaluations.
func New(
	handler slog.Handler,
	execUnit *script.ExecutableUnit,
	toolbox tool.Registry,
) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "pyexpr", "Evaluator")

	return &Evaluator{
		toolbox:    maps.Clone(toolbox),
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "pyexpr.Evaluator"
}

// loadInputData retrieves the initial variable bindings using the data
// provider in the executable unit. An absent provider yields an empty map,
// which matches the contract of a fresh, empty binding table.
func (be *Evaluator) loadInputData(ctx context.Context) (map[string]any, error) {
	logger := be.logger.WithGroup("loadInputData")

	if be.execUnit == nil || be.execUnit.GetDataProvider() == nil {
		logger.DebugContext(ctx, "no data provider available, starting with an empty binding table")
		return make(map[string]any), nil
	}

	inputData, err := be.execUnit.GetDataProvider().GetData(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get input data from provider", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "input data loaded from provider", "inputData", inputData)
	return inputData, nil
}

// Eval walks the compiled syntax tree, executing each top-level statement
// in order against the tool registry and a fresh binding table seeded from
// the data provider.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	if be.execUnit == nil {
		return nil, fmt.Errorf("executable unit is nil")
	}
	if be.execUnit.GetContent() == nil {
		return nil, fmt.Errorf("content is nil")
	}

	bytecode := be.execUnit.GetContent().GetByteCode()
	if bytecode == nil {
		return nil, fmt.Errorf("bytecode is nil")
	}

	exeID := be.execUnit.GetID()
	if exeID == "" {
		return nil, fmt.Errorf("exeID is empty")
	}
	logger := be.logger.WithGroup("Eval").With("exeID", exeID, "runID", uuid.NewString())

	file, ok := bytecode.(*syntax.File)
	if !ok {
		return nil, fmt.Errorf("invalid bytecode type: expected *syntax.File, got %T", bytecode)
	}

	rawInputData, err := be.loadInputData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input data: %w", err)
	}

	state := newBindings(rawInputData)

	startTime := time.Now()
	value, err := execFile(ctx, file, state, be.toolbox)
	execTime := time.Since(startTime)

	if err != nil {
		logger.WarnContext(ctx, "exec failed", "error", err, "execTime", execTime)
		return nil, fmt.Errorf("exec error: %w", err)
	}

	logger.DebugContext(ctx, "exec complete", "execTime", execTime)
	return newEvalResult(be.logHandler, value, execTime, exeID), nil
}

// AddDataToContext implements the data.Setter interface, which stores and
// prepares runtime bindings that will seed a later Eval call.
func (be *Evaluator) AddDataToContext(
	ctx context.Context,
	d ...map[string]any,
) (context.Context, error) {
	logger := be.logger.WithGroup("AddDataToContext")

	if be.execUnit == nil || be.execUnit.GetDataProvider() == nil {
		return ctx, fmt.Errorf("no data provider available")
	}

	return data.AddDataToContextHelper(
		ctx,
		logger,
		be.execUnit.GetDataProvider(),
		d...,
	)
}
