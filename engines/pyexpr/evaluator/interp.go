package evaluator

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-toolscript/engines/pyexpr/internal"
	"github.com/robbyt/go-toolscript/platform/tool"
)

// bindings is the mutable variable table for one evaluation run. Insertion
// order is tracked so the result-discovery fallback scans names
// deterministically.
type bindings struct {
	values map[string]any
	order  []string
}

// newBindings creates a binding table, optionally seeded with initial
// variables from a data provider. Seed keys are inserted in sorted order
// for determinism.
func newBindings(seed map[string]any) *bindings {
	b := &bindings{
		values: make(map[string]any, len(seed)),
	}
	if len(seed) > 0 {
		keys := make([]string, 0, len(seed))
		for k := range seed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.set(k, seed[k])
		}
	}
	return b
}

func (b *bindings) set(name string, v any) {
	if _, exists := b.values[name]; !exists {
		b.order = append(b.order, name)
	}
	b.values[name] = v
}

func (b *bindings) get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// findResult applies the result-discovery heuristic: an exact binding named
// "result" wins, then the first bound name containing the substring
// "result" in insertion order.
func (b *bindings) findResult() (any, bool) {
	if v, ok := b.values["result"]; ok {
		return v, true
	}
	for _, name := range b.order {
		if strings.Contains(name, "result") {
			return b.values[name], true
		}
	}
	return nil, false
}

func (b *bindings) toMap() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// execFile evaluates every top-level statement in order against the shared
// binding table and tool registry, then applies the result fallback: the
// last statement's value if it produced one, else the "result" binding
// heuristic, else the whole binding table.
func execFile(
	ctx context.Context,
	file *syntax.File,
	state *bindings,
	tools tool.Registry,
) (any, error) {
	var result any
	for _, stmt := range file.Stmts {
		// Cooperative cancellation point between statements; a tool that
		// never returns still blocks, which the caller must bound.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := execStmt(ctx, stmt, state, tools)
		if err != nil {
			return nil, err
		}
		result = v
	}

	if result != nil {
		return result, nil
	}
	if v, ok := state.findResult(); ok {
		return v, nil
	}
	return state.toMap(), nil
}

// execStmt evaluates a single statement. Assignments, expression statements
// and conditionals all produce the no-value sentinel (nil); only the result
// fallback in execFile can turn a run of such statements into a value.
func execStmt(
	ctx context.Context,
	stmt syntax.Stmt,
	state *bindings,
	tools tool.Registry,
) (any, error) {
	switch s := stmt.(type) {
	case *syntax.AssignStmt:
		if s.Op != syntax.EQ {
			return nil, interpErrorf("augmented assignment (%s) is not supported", s.Op)
		}
		return nil, execAssign(ctx, s, state, tools)

	case *syntax.ExprStmt:
		// Evaluated for effect only; the value is discarded.
		if _, err := evalExpr(ctx, s.X, state, tools); err != nil {
			return nil, err
		}
		return nil, nil

	case *syntax.IfStmt:
		return nil, execIf(ctx, s, state, tools)

	default:
		return nil, interpErrorf("%s is not supported", internal.NodeName(stmt))
	}
}

// execAssign evaluates the right-hand side once, then binds it to a single
// identifier or destructures it into N identifiers with exact arity.
func execAssign(
	ctx context.Context,
	assign *syntax.AssignStmt,
	state *bindings,
	tools tool.Registry,
) error {
	value, err := evalExpr(ctx, assign.RHS, state, tools)
	if err != nil {
		return err
	}

	switch target := internal.Unparen(assign.LHS).(type) {
	case *syntax.Ident:
		state.set(target.Name, value)
		return nil

	case *syntax.TupleExpr:
		return destructure(target.List, value, state)

	case *syntax.ListExpr:
		return destructure(target.List, value, state)

	default:
		return interpErrorf("assignment to %s is not supported", internal.NodeName(assign.LHS))
	}
}

func destructure(targets []syntax.Expr, value any, state *bindings) error {
	seq, ok := value.([]any)
	if !ok {
		return interpErrorf("expected %d values but got %s", len(targets), describeValue(value))
	}
	if len(seq) != len(targets) {
		return interpErrorf("expected %d values but got %d", len(targets), len(seq))
	}

	for i, target := range targets {
		ident, ok := internal.Unparen(target).(*syntax.Ident)
		if !ok {
			return interpErrorf("assignment to %s is not supported", internal.NodeName(target))
		}
		state.set(ident.Name, seq[i])
	}
	return nil
}

// execIf evaluates the test as a comparison and runs exactly one branch.
// An empty else branch is a no-op.
func execIf(
	ctx context.Context,
	ifStmt *syntax.IfStmt,
	state *bindings,
	tools tool.Registry,
) error {
	cond, err := evalCondition(ctx, ifStmt.Cond, state, tools)
	if err != nil {
		return err
	}

	branch := ifStmt.False
	if cond {
		branch = ifStmt.True
	}
	for _, stmt := range branch {
		if _, err := execStmt(ctx, stmt, state, tools); err != nil {
			return err
		}
	}
	return nil
}

// evalExpr dispatches on the expression's syntactic tag. Everything outside
// the allow-list raises an InterpreterError naming the construct.
func evalExpr(
	ctx context.Context,
	expr syntax.Expr,
	state *bindings,
	tools tool.Registry,
) (any, error) {
	switch e := expr.(type) {
	case *syntax.Literal:
		v, err := internal.LiteralValue(e)
		if err != nil {
			return nil, interpErrorf("%s", err.Error())
		}
		return v, nil

	case *syntax.Ident:
		return resolveName(e.Name, state)

	case *syntax.ParenExpr:
		return evalExpr(ctx, e.X, state, tools)

	case *syntax.CallExpr:
		return evalCall(ctx, e, state, tools)

	case *syntax.IndexExpr:
		return evalSubscript(ctx, e, state, tools)

	case *syntax.BinaryExpr:
		if internal.IsComparisonOp(e.Op) {
			return nil, interpErrorf("a comparison outside an if condition is not supported")
		}
		return nil, interpErrorf("binary operator %s is not supported", e.Op)

	default:
		return nil, interpErrorf("%s is not supported", internal.NodeName(expr))
	}
}

// resolveName looks up an identifier. True, False and None are constants of
// the grammar rather than bindings; any other unbound name raises an
// InterpreterError instead of leaking a raw map lookup failure.
func resolveName(name string, state *bindings) (any, error) {
	switch name {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	}

	if v, ok := state.get(name); ok {
		return v, nil
	}
	return nil, interpErrorf("the variable `%s` is not defined", name)
}

// evalCall resolves the callee against the tool registry, evaluates every
// argument, and invokes the tool. Positional arguments keep call order and
// duplicates.
func evalCall(
	ctx context.Context,
	call *syntax.CallExpr,
	state *bindings,
	tools tool.Registry,
) (any, error) {
	fn, ok := internal.Unparen(call.Fn).(*syntax.Ident)
	if !ok {
		return nil, interpErrorf("calling a %s is not supported", internal.NodeName(call.Fn))
	}

	t, ok := tools[fn.Name]
	if !ok {
		return nil, interpErrorf(
			"it is not permitted to evaluate other functions than the provided tools (tried to execute %s)",
			fn.Name)
	}

	var args []any
	kwargs := make(map[string]any)
	for _, arg := range call.Args {
		// Keyword arguments arrive as name=value binary expressions.
		if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
			if ident, ok := kw.X.(*syntax.Ident); ok {
				v, err := evalExpr(ctx, kw.Y, state, tools)
				if err != nil {
					return nil, err
				}
				kwargs[ident.Name] = v
				continue
			}
		}

		v, err := evalExpr(ctx, arg, state, tools)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	result, err := t.Invoke(ctx, args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", fn.Name, err)
	}
	return result, nil
}

// evalSubscript evaluates the container first, then the index, and returns
// container[index] with Python-style semantics.
func evalSubscript(
	ctx context.Context,
	sub *syntax.IndexExpr,
	state *bindings,
	tools tool.Registry,
) (any, error) {
	container, err := evalExpr(ctx, sub.X, state, tools)
	if err != nil {
		return nil, err
	}
	index, err := evalExpr(ctx, sub.Y, state, tools)
	if err != nil {
		return nil, err
	}
	return subscript(container, index)
}

func subscript(container, index any) (any, error) {
	switch c := container.(type) {
	case []any:
		i, ok := index.(int64)
		if !ok {
			return nil, interpErrorf("list indices must be integers, not %s", describeValue(index))
		}
		if i < 0 {
			i += int64(len(c))
		}
		if i < 0 || i >= int64(len(c)) {
			return nil, interpErrorf("index %v out of range for a list of length %d", index, len(c))
		}
		return c[i], nil

	case string:
		i, ok := index.(int64)
		if !ok {
			return nil, interpErrorf("string indices must be integers, not %s", describeValue(index))
		}
		runes := []rune(c)
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return nil, interpErrorf("index %v out of range for a string of length %d", index, len(runes))
		}
		return string(runes[i]), nil

	case map[string]any:
		key, ok := index.(string)
		if !ok {
			return nil, interpErrorf("map keys must be strings, not %s", describeValue(index))
		}
		v, ok := c[key]
		if !ok {
			return nil, interpErrorf("key %q not found in map", key)
		}
		return v, nil

	default:
		return nil, interpErrorf("cannot subscript a value of type %s", describeValue(container))
	}
}

// evalCondition evaluates an if-statement test, which must be a single
// comparison; chained comparisons are rejected by the parser.
func evalCondition(
	ctx context.Context,
	cond syntax.Expr,
	state *bindings,
	tools tool.Registry,
) (bool, error) {
	be, ok := internal.Unparen(cond).(*syntax.BinaryExpr)
	if !ok || !internal.IsComparisonOp(be.Op) {
		return false, interpErrorf("%s is not supported as a condition", internal.NodeName(cond))
	}

	left, err := evalExpr(ctx, be.X, state, tools)
	if err != nil {
		return false, err
	}
	right, err := evalExpr(ctx, be.Y, state, tools)
	if err != nil {
		return false, err
	}

	return compare(be.Op, left, right)
}

// compare dispatches a single comparison operator. Equality is deep and
// numeric-aware; ordering covers numbers and strings; membership covers
// substring, list element, and map key checks.
func compare(op syntax.Token, left, right any) (bool, error) {
	switch op {
	case syntax.EQL:
		return equals(left, right), nil
	case syntax.NEQ:
		return !equals(left, right), nil
	case syntax.LT, syntax.LE, syntax.GT, syntax.GE:
		return order(op, left, right)
	case syntax.IN:
		return member(left, right)
	case syntax.NOT_IN:
		in, err := member(left, right)
		return !in, err
	default:
		return false, interpErrorf("operator not supported: %s", op)
	}
}

func equals(left, right any) bool {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return lf == rf
	}
	return reflect.DeepEqual(left, right)
}

func order(op syntax.Token, left, right any) (bool, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return orderResult(op, lf < rf, lf == rf), nil
	}

	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		return orderResult(op, ls < rs, ls == rs), nil
	}

	return false, interpErrorf("'%s' not supported between %s and %s",
		op, describeValue(left), describeValue(right))
}

func orderResult(op syntax.Token, less, equal bool) bool {
	switch op {
	case syntax.LT:
		return less
	case syntax.LE:
		return less || equal
	case syntax.GT:
		return !less && !equal
	default: // syntax.GE
		return !less
	}
}

func member(needle, haystack any) (bool, error) {
	switch h := haystack.(type) {
	case string:
		s, ok := needle.(string)
		if !ok {
			return false, interpErrorf("'in <string>' requires a string, not %s", describeValue(needle))
		}
		return strings.Contains(h, s), nil

	case []any:
		for _, v := range h {
			if equals(needle, v) {
				return true, nil
			}
		}
		return false, nil

	case map[string]any:
		key, ok := needle.(string)
		if !ok {
			return false, interpErrorf("'in <map>' requires a string key, not %s", describeValue(needle))
		}
		_, present := h[key]
		return present, nil

	default:
		return false, interpErrorf("value of type %s is not a container", describeValue(haystack))
	}
}

func asFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func describeValue(v any) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%T", v)
}
