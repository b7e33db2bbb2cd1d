// Package types defines the engine identifiers used by the platform layer.
package types

// Type identifies which engine an executable targets.
type Type string

const (
	// Pyexpr is the restricted Python-expression engine.
	Pyexpr Type = "pyexpr"

	// Unsupported represents an unknown engine type.
	Unsupported Type = "unsupported"
)

func (t Type) String() string {
	return string(t)
}
