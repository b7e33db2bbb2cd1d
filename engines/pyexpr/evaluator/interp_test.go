package evaluator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-toolscript/platform/tool"
)

func mustParse(t *testing.T, code string) *syntax.File {
	t.Helper()
	opts := &syntax.FileOptions{While: true, TopLevelControl: true, GlobalReassign: true}
	f, err := opts.Parse("", []byte(code), 0)
	require.NoError(t, err, "test scripts must be syntactically valid")
	return f
}

func run(t *testing.T, code string, seed map[string]any, tools tool.Registry) (any, error) {
	t.Helper()
	return execFile(context.Background(), mustParse(t, code), newBindings(seed), tools)
}

func addTool() tool.Tool {
	return tool.Func(func(_ context.Context, args []any, _ map[string]any) (any, error) {
		sum := int64(0)
		for _, a := range args {
			sum += a.(int64)
		}
		return sum, nil
	})
}

func concatTool() tool.Tool {
	return tool.Func(func(_ context.Context, args []any, _ map[string]any) (any, error) {
		out := ""
		for _, a := range args {
			out += a.(string)
		}
		return out, nil
	})
}

func TestExecFile_Results(t *testing.T) {
	t.Parallel()

	tools := tool.Registry{"add": addTool(), "concat": concatTool()}

	t.Run("result binding is returned", func(t *testing.T) {
		v, err := run(t, "result = add(2, 3)", nil, tools)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	})

	t.Run("no result binding returns whole table", func(t *testing.T) {
		v, err := run(t, "x = 1\ny = 2", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": int64(1), "y": int64(2)}, v)
	})

	t.Run("substring match in insertion order", func(t *testing.T) {
		code := "intermediate = add(1, 1)\nfinal_result = add(2, 2)\nother_result = add(3, 3)"
		v, err := run(t, code, nil, tools)
		require.NoError(t, err)
		assert.Equal(t, int64(4), v, "first bound name containing 'result' wins")
	})

	t.Run("exact result beats substring match", func(t *testing.T) {
		code := "my_result = add(1, 1)\nresult = add(2, 3)"
		v, err := run(t, code, nil, tools)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	})

	t.Run("empty script returns empty table", func(t *testing.T) {
		v, err := run(t, "", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, v)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		code := "result = concat('a', 'b')"
		first, err := run(t, code, nil, tools)
		require.NoError(t, err)
		second, err := run(t, code, nil, tools)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestExecFile_Calls(t *testing.T) {
	t.Parallel()

	t.Run("unknown tool", func(t *testing.T) {
		_, err := run(t, "foo()", nil, tool.Registry{})
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "foo")
	})

	t.Run("unknown tool with other tools registered", func(t *testing.T) {
		_, err := run(t, "result = missing(1)", nil, tool.Registry{"add": addTool()})
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("positional order preserved", func(t *testing.T) {
		v, err := run(t, "result = concat('a', 'b', 'c')", nil,
			tool.Registry{"concat": concatTool()})
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("duplicate positional args preserved", func(t *testing.T) {
		v, err := run(t, "result = add(2, 2)", nil, tool.Registry{"add": addTool()})
		require.NoError(t, err)
		assert.Equal(t, int64(4), v, "duplicate-valued arguments must not collapse")
	})

	t.Run("keyword arguments", func(t *testing.T) {
		echo := tool.Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
			return fmt.Sprintf("%v %v", args[0], kwargs["unit"]), nil
		})
		v, err := run(t, "result = fmt(42, unit='ms')", nil, tool.Registry{"fmt": echo})
		require.NoError(t, err)
		assert.Equal(t, "42 ms", v)
	})

	t.Run("variable as argument", func(t *testing.T) {
		v, err := run(t, "x = 2\nresult = add(x, 3)", nil, tool.Registry{"add": addTool()})
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	})

	t.Run("nested call as argument", func(t *testing.T) {
		v, err := run(t, "result = add(add(1, 2), 3)", nil, tool.Registry{"add": addTool()})
		require.NoError(t, err)
		assert.Equal(t, int64(6), v)
	})

	t.Run("tool error is wrapped, not an InterpreterError", func(t *testing.T) {
		boom := tool.Func(func(_ context.Context, _ []any, _ map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		})
		_, err := run(t, "result = fetch()", nil, tool.Registry{"fetch": boom})
		require.Error(t, err)
		assert.False(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "fetch")
		assert.Contains(t, err.Error(), "backend unavailable")
	})
}

func TestExecFile_Assignment(t *testing.T) {
	t.Parallel()

	pair := tool.Func(func(_ context.Context, _ []any, _ map[string]any) (any, error) {
		return []any{int64(1), "two"}, nil
	})

	t.Run("destructuring with matching arity", func(t *testing.T) {
		v, err := run(t, "a, b = pair()", nil, tool.Registry{"pair": pair})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": int64(1), "b": "two"}, v)
	})

	t.Run("destructuring arity mismatch", func(t *testing.T) {
		_, err := run(t, "a, b, c = pair()", nil, tool.Registry{"pair": pair})
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "expected 3 values but got 2")
	})

	t.Run("destructuring a non-sequence", func(t *testing.T) {
		_, err := run(t, "a, b = add(1, 2)", nil, tool.Registry{"add": addTool()})
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "expected 2 values")
	})

	t.Run("rebinding a name keeps table size", func(t *testing.T) {
		v, err := run(t, "x = 1\nx = 2", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": int64(2)}, v)
	})

	t.Run("augmented assignment rejected", func(t *testing.T) {
		_, err := run(t, "x = 1\nx += 1", nil, nil)
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
	})
}

func TestExecFile_Conditionals(t *testing.T) {
	t.Parallel()

	t.Run("true branch", func(t *testing.T) {
		code := "if 1 == 1:\n    result = 'yes'\nelse:\n    result = 'no'"
		v, err := run(t, code, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "yes", v)
	})

	t.Run("false branch", func(t *testing.T) {
		code := "if 1 == 2:\n    result = 'yes'\nelse:\n    result = 'no'"
		v, err := run(t, code, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "no", v)
	})

	t.Run("exactly one branch runs", func(t *testing.T) {
		var calls []string
		record := tool.Func(func(_ context.Context, args []any, _ map[string]any) (any, error) {
			calls = append(calls, args[0].(string))
			return nil, nil
		})
		code := "if 2 > 1:\n    mark('then')\nelse:\n    mark('else')"
		_, err := run(t, code, nil, tool.Registry{"mark": record})
		require.NoError(t, err)
		assert.Equal(t, []string{"then"}, calls)
	})

	t.Run("missing else branch is a no-op", func(t *testing.T) {
		code := "result = 'init'\nif 1 == 2:\n    result = 'changed'"
		v, err := run(t, code, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "init", v)
	})

	t.Run("elif chains", func(t *testing.T) {
		code := "x = 2\nif x == 1:\n    result = 'one'\nelif x == 2:\n    result = 'two'\nelse:\n    result = 'many'"
		v, err := run(t, code, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})

	t.Run("non-comparison condition rejected", func(t *testing.T) {
		_, err := run(t, "x = 1\nif x:\n    result = 'truthy'", nil, nil)
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "condition")
	})
}

func TestExecFile_Comparisons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want any
	}{
		{"int equality", "if 1 == 1:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"int float equality", "if 1 == 1.0:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"inequality", "if 1 != 2:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"less than", "if 1 < 2:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"less or equal", "if 2 <= 2:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"greater than", "if 3 > 2.5:\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"greater or equal", "if 2 >= 3:\n    result = 'y'\nelse:\n    result = 'n'", "n"},
		{"string ordering", "if 'abc' < 'abd':\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"string equality", "if 'a' == 'a':\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"substring membership", "if 'ell' in 'hello':\n    result = 'y'\nelse:\n    result = 'n'", "y"},
		{"not in string", "if 'z' not in 'hello':\n    result = 'y'\nelse:\n    result = 'n'", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := run(t, tt.code, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("membership in seeded list", func(t *testing.T) {
		seed := map[string]any{"items": []any{int64(1), int64(2)}}
		v, err := run(t, "if 2 in items:\n    result = 'y'\nelse:\n    result = 'n'", seed, nil)
		require.NoError(t, err)
		assert.Equal(t, "y", v)
	})

	t.Run("membership in seeded map checks keys", func(t *testing.T) {
		seed := map[string]any{"table": map[string]any{"name": "Ada"}}
		v, err := run(t, "if 'name' in table:\n    result = 'y'\nelse:\n    result = 'n'", seed, nil)
		require.NoError(t, err)
		assert.Equal(t, "y", v)
	})

	t.Run("ordering across incompatible types", func(t *testing.T) {
		_, err := run(t, "if 'a' < 1:\n    result = 'y'", nil, nil)
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
	})
}

func TestExecFile_Subscripts(t *testing.T) {
	t.Parallel()

	seed := map[string]any{
		"items": []any{int64(10), "two", int64(30)},
		"table": map[string]any{"name": "Ada", "age": int64(36)},
		"word":  "héllo",
	}

	tests := []struct {
		name    string
		code    string
		want    any
		wantErr string
	}{
		{name: "list index", code: "result = items[1]", want: "two"},
		{name: "negative list index", code: "result = items[-1]", want: int64(30)},
		{name: "list index out of range", code: "result = items[3]", wantErr: "out of range"},
		{name: "map key", code: "result = table['name']", want: "Ada"},
		{name: "missing map key", code: "result = table['city']", wantErr: "not found"},
		{name: "string index is rune-aware", code: "result = word[1]", want: "é"},
		{name: "negative string index", code: "result = word[-1]", want: "o"},
		{name: "non-integer list index", code: "result = items['a']", wantErr: "must be integers"},
		{name: "subscript of a number", code: "x = 1\nresult = x[0]", wantErr: "cannot subscript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := run(t, tt.code, seed, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsInterpreterError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestExecFile_Names(t *testing.T) {
	t.Parallel()

	t.Run("constants", func(t *testing.T) {
		v, err := run(t, "a = True\nb = False", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": true, "b": false}, v)
	})

	t.Run("None binds and falls through the fallback", func(t *testing.T) {
		v, err := run(t, "result = None", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("unbound name", func(t *testing.T) {
		_, err := run(t, "x = y", nil, nil)
		require.Error(t, err)
		assert.True(t, IsInterpreterError(err))
		assert.Contains(t, err.Error(), "`y` is not defined")
	})
}

func TestExecFile_DisallowedConstructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"for loop", "for i in items:\n    x = 1", "for loop"},
		{"while loop", "while 1 == 1:\n    x = 1", "while loop"},
		{"function definition", "def f():\n    return 1", "function definition"},
		{"return at top level", "return 1", "return statement"},
		{"arithmetic", "x = 1 + 2", "binary operator +"},
		{"attribute access", "x = table.name", "attribute access"},
		{"list literal", "x = [1, 2]", "list literal"},
		{"dict literal", "x = {}", "dict literal"},
		{"lambda", "x = lambda: 1", "lambda"},
		{"comparison outside condition", "x = 1 == 1", "comparison outside an if condition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.code, nil, nil)
			require.Error(t, err)
			assert.True(t, IsInterpreterError(err), "expected InterpreterError, got %T", err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "not supported")
		})
	}
}

func TestExecFile_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execFile(ctx, mustParse(t, "x = 1"), newBindings(nil), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBindings(t *testing.T) {
	t.Parallel()

	t.Run("seed keys inserted in sorted order", func(t *testing.T) {
		b := newBindings(map[string]any{"z_result": 1, "a_result": 2})
		v, ok := b.findResult()
		require.True(t, ok)
		assert.Equal(t, 2, v, "sorted seeding makes the scan deterministic")
	})

	t.Run("no result found", func(t *testing.T) {
		b := newBindings(map[string]any{"x": 1})
		_, ok := b.findResult()
		assert.False(t, ok)
	})
}
