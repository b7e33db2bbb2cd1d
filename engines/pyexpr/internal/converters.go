package internal

import (
	"fmt"
	"math/big"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-toolscript/platform/data"
)

// LiteralValue converts a parsed literal into its native Go value:
// strings stay strings, integers become int64 (arbitrary-precision values
// are passed through as *big.Int), floats become float64.
func LiteralValue(lit *syntax.Literal) (any, error) {
	switch v := lit.Value.(type) {
	case string, int64, float64, *big.Int:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported literal value %q of type %T", lit.Raw, lit.Value)
	}
}

// TypeOf maps a native Go value produced by the evaluator or a tool to the
// platform's result type enum.
func TypeOf(v any) data.Types {
	switch v.(type) {
	case nil:
		return data.NONE
	case bool:
		return data.BOOL
	case int64, *big.Int:
		return data.INT
	case float64:
		return data.FLOAT
	case string:
		return data.STRING
	case []any:
		return data.LIST
	case map[string]any:
		return data.MAP
	case error:
		return data.ERROR
	default:
		return data.OBJECT
	}
}
