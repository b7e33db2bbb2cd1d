package tool

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/robbyt/go-toolscript/internal/helpers"
)

// Builtins returns the base registry every script may use without the
// embedding application registering anything: print, range, float, int,
// bool, str. Output from print is routed through the provided slog handler,
// keeping the evaluator itself free of I/O.
func Builtins(handler slog.Handler) Registry {
	_, logger := helpers.SetupLogger(handler, "tool", "builtins")

	return Registry{
		"print": Func(func(ctx context.Context, args []any, _ map[string]any) (any, error) {
			parts := make([]string, len(args))
			for i, arg := range args {
				parts[i] = Str(arg)
			}
			logger.InfoContext(ctx, strings.Join(parts, " "))
			return nil, nil
		}),

		"range": Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			if err := rejectKwargs("range", kwargs); err != nil {
				return nil, err
			}
			start, stop, step := int64(0), int64(0), int64(1)
			switch len(args) {
			case 1:
				var err error
				if stop, err = toInt("range", args[0]); err != nil {
					return nil, err
				}
			case 2, 3:
				var err error
				if start, err = toInt("range", args[0]); err != nil {
					return nil, err
				}
				if stop, err = toInt("range", args[1]); err != nil {
					return nil, err
				}
				if len(args) == 3 {
					if step, err = toInt("range", args[2]); err != nil {
						return nil, err
					}
				}
			default:
				return nil, fmt.Errorf("range expected 1 to 3 arguments, got %d", len(args))
			}
			if step == 0 {
				return nil, fmt.Errorf("range step argument must not be zero")
			}

			out := []any{}
			if step > 0 {
				for i := start; i < stop; i += step {
					out = append(out, i)
				}
			} else {
				for i := start; i > stop; i += step {
					out = append(out, i)
				}
			}
			return out, nil
		}),

		"float": Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			if err := exactlyOne("float", args, kwargs); err != nil {
				return nil, err
			}
			switch v := args[0].(type) {
			case int64:
				return float64(v), nil
			case float64:
				return v, nil
			case bool:
				if v {
					return 1.0, nil
				}
				return 0.0, nil
			case string:
				f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err != nil {
					return nil, fmt.Errorf("could not convert string to float: %q", v)
				}
				return f, nil
			default:
				return nil, fmt.Errorf("float argument must be a string or a number, not %T", v)
			}
		}),

		"int": Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			if err := exactlyOne("int", args, kwargs); err != nil {
				return nil, err
			}
			switch v := args[0].(type) {
			case int64:
				return v, nil
			case float64:
				return int64(math.Trunc(v)), nil
			case bool:
				if v {
					return int64(1), nil
				}
				return int64(0), nil
			case string:
				i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid literal for int: %q", v)
				}
				return i, nil
			default:
				return nil, fmt.Errorf("int argument must be a string or a number, not %T", v)
			}
		}),

		"bool": Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			if err := exactlyOne("bool", args, kwargs); err != nil {
				return nil, err
			}
			return Truthy(args[0]), nil
		}),

		"str": Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			if err := exactlyOne("str", args, kwargs); err != nil {
				return nil, err
			}
			return Str(args[0]), nil
		}),
	}
}

// Str renders a value the way the script language would: nil is "None" and
// booleans are capitalized. Everything else uses the native Go rendering.
func Str(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Truthy reports the truthiness of a value: nil, false, zero, empty string,
// empty list and empty map are false; everything else is true.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func toInt(name string, v any) (int64, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%s argument must be an integer, not %T", name, v)
	}
}

func exactlyOne(name string, args []any, kwargs map[string]any) error {
	if err := rejectKwargs(name, kwargs); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%s expected exactly 1 argument, got %d", name, len(args))
	}
	return nil
}

func rejectKwargs(name string, kwargs map[string]any) error {
	if len(kwargs) > 0 {
		return fmt.Errorf("%s takes no keyword arguments", name)
	}
	return nil
}
