// Package tool defines the callable capabilities that evaluated scripts may
// invoke. Calling a registered tool is the only way a script can have any
// effect outside its own binding table.
package tool

import (
	"context"
	"sort"
)

// Tool is a named, externally supplied callable capability. The evaluator
// invokes it with the evaluated positional and keyword arguments and treats
// the call as an opaque synchronous operation.
type Tool interface {
	Invoke(ctx context.Context, args []any, kwargs map[string]any) (any, error)
}

// Func adapts a plain function to the Tool interface.
type Func func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Invoke implements the Tool interface.
func (f Func) Invoke(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	return f(ctx, args, kwargs)
}

// Registry maps tool names to implementations. It is supplied by the
// embedding application and treated as read-only during evaluation.
type Registry map[string]Tool

// Has reports whether a tool with the given name is registered.
func (r Registry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Names returns the registered tool names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new Registry combining the base with the overlays.
// Later registries override earlier entries under the same name, so an
// application toolbox can shadow the builtins.
func Merge(base Registry, overlays ...Registry) Registry {
	merged := make(Registry, len(base))
	for name, t := range base {
		merged[name] = t
	}
	for _, overlay := range overlays {
		for name, t := range overlay {
			merged[name] = t
		}
	}
	return merged
}
