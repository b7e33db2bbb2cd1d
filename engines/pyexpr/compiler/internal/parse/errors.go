package parse

import "errors"

var (
	ErrContentNil       = errors.New("pyexpr content is nil")
	ErrParseFailed      = errors.New("failed to parse pyexpr script")
	ErrDisallowedSyntax = errors.New("disallowed syntax")
)
