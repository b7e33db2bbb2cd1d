package script

import "io"

// Compiler defines the interface for validating scripts before execution.
// It checks syntax and the restricted-grammar rules, and returns a valid
// script as ExecutableContent ready for evaluation.
type Compiler interface {
	// Compile reads the full script content from the reader, validates it,
	// and returns it as executable content. The reader is closed before
	// Compile returns. Validation failures (syntax errors, constructs
	// outside the allowed grammar) are returned as errors.
	Compile(scriptReader io.ReadCloser) (ExecutableContent, error)
}
