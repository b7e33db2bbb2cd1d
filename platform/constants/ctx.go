// Description: constants used for accessing values stored in context objects.
package constants

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// EvalData is the key used to store runtime evaluation data in the
	// context. A ContextProvider reads this map back during Eval and seeds
	// the binding table with it before the script runs.
	EvalData ContextKey = "eval_data"
)
