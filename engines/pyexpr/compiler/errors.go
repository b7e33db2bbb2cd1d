package compiler

import "errors"

var (
	ErrContentNil         = errors.New("pyexpr content is nil")
	ErrValidationFailed   = errors.New("pyexpr script validation error")
	ErrBytecodeNil        = errors.New("pyexpr parse returned nil syntax tree")
	ErrExecCreationFailed = errors.New("unable to create pyexpr executable")
)
