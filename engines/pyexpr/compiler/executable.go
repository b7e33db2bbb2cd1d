package compiler

import (
	"go.starlark.net/syntax"

	engineTypes "github.com/robbyt/go-toolscript/engines/types"
)

// executable is a parsed and validated pyexpr script. The "bytecode" for
// this engine is the validated syntax tree itself; the evaluator walks it
// directly.
type executable struct {
	source []byte
	file   *syntax.File
}

func newExecutable(source []byte, file *syntax.File) *executable {
	if len(source) == 0 || file == nil {
		return nil
	}
	return &executable{
		source: source,
		file:   file,
	}
}

// GetSource returns the normalized script source.
func (e *executable) GetSource() string {
	return string(e.source)
}

// GetByteCode returns the validated syntax tree as an opaque value.
func (e *executable) GetByteCode() any {
	return e.file
}

// GetPyExprByteCode returns the validated syntax tree with its concrete type.
func (e *executable) GetPyExprByteCode() *syntax.File {
	return e.file
}

// GetEngineType returns the engine type for this executable.
func (e *executable) GetEngineType() engineTypes.Type {
	return engineTypes.Pyexpr
}
