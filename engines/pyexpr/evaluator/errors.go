package evaluator

import (
	"errors"
	"fmt"
)

// InterpreterError is the single error kind raised for any rule violation
// during evaluation: an unsupported construct, a call to an unregistered
// tool, a destructuring arity mismatch, or an unsupported comparison. The
// message carries enough context for a calling layer to construct a
// corrective re-prompt for the code-generating model.
type InterpreterError struct {
	Msg string
}

func (e *InterpreterError) Error() string {
	return e.Msg
}

// interpErrorf builds an InterpreterError with a formatted message.
func interpErrorf(format string, args ...any) *InterpreterError {
	return &InterpreterError{Msg: fmt.Sprintf(format, args...)}
}

// IsInterpreterError reports whether any error in err's chain is an
// InterpreterError.
func IsInterpreterError(err error) bool {
	var ie *InterpreterError
	return errors.As(err, &ie)
}
