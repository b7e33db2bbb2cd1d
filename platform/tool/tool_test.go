package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc(t *testing.T) {
	t.Parallel()

	echo := Func(func(_ context.Context, args []any, kwargs map[string]any) (any, error) {
		return []any{args, kwargs}, nil
	})

	v, err := echo.Invoke(context.Background(), []any{int64(1)}, map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{int64(1)}, map[string]any{"k": "v"}}, v)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	noop := Func(func(_ context.Context, _ []any, _ map[string]any) (any, error) {
		return nil, nil
	})

	t.Run("has", func(t *testing.T) {
		r := Registry{"add": noop}
		assert.True(t, r.Has("add"))
		assert.False(t, r.Has("subtract"))
	})

	t.Run("names sorted", func(t *testing.T) {
		r := Registry{"translate": noop, "add": noop, "search": noop}
		assert.Equal(t, []string{"add", "search", "translate"}, r.Names())
	})

	t.Run("empty registry", func(t *testing.T) {
		r := Registry{}
		assert.False(t, r.Has("anything"))
		assert.Empty(t, r.Names())
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := Func(func(_ context.Context, _ []any, _ map[string]any) (any, error) {
		return "base", nil
	})
	override := Func(func(_ context.Context, _ []any, _ map[string]any) (any, error) {
		return "override", nil
	})

	t.Run("overlay shadows base", func(t *testing.T) {
		merged := Merge(Registry{"f": base, "g": base}, Registry{"f": override})

		v, err := merged["f"].Invoke(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "override", v)

		v, err = merged["g"].Invoke(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "base", v)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		baseReg := Registry{"f": base}
		Merge(baseReg, Registry{"f": override})

		v, err := baseReg["f"].Invoke(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "base", v)
	})

	t.Run("nil base", func(t *testing.T) {
		merged := Merge(nil, Registry{"f": base})
		assert.True(t, merged.Has("f"))
	})
}
