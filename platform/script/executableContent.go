package script

import (
	engineTypes "github.com/robbyt/go-toolscript/engines/types"
)

// ExecutableContent represents validated script content that is ready for
// evaluation. It provides access to the original source and the parsed
// form the target engine executes.
type ExecutableContent interface {
	// GetSource returns the original script content as a string, after any
	// loader- or compiler-side normalization (e.g. Markdown fence removal).
	GetSource() string

	// GetByteCode returns the compiled form of the script in an
	// engine-specific format. The engine asserts this into the concrete
	// type it requires and returns an error at eval time on a mismatch.
	GetByteCode() any

	// GetEngineType returns the engine this script is intended to run on.
	GetEngineType() engineTypes.Type
}
