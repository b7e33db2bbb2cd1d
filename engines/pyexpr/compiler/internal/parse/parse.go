// Package parse turns restricted-Python source text into a validated
// syntax tree. Parsing is delegated to the Starlark parser (a Python
// dialect, so the allowed grammar subset parses identically); validation
// then rejects everything outside the evaluator's allow-list so that bad
// scripts fail at compile time rather than halfway through a run.
package parse

import (
	"fmt"
	"strings"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-toolscript/engines/pyexpr/internal"
)

// Clean strips a surrounding Markdown code fence, which language models
// commonly wrap around generated code.
func Clean(code string) string {
	code = strings.TrimSpace(code)
	lines := strings.Split(code, "\n")
	if len(lines) > 0 {
		switch strings.TrimSpace(lines[0]) {
		case "```", "```py", "```python":
			lines = lines[1:]
		}
	}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// Parse parses the source text and validates that every statement and
// expression is within the restricted grammar.
func Parse(src []byte) (*syntax.File, error) {
	if src == nil {
		return nil, ErrContentNil
	}

	// Permissive parse options: the allow-list below is the single
	// gatekeeper, and it produces friendlier errors than the parser's own
	// dialect restrictions would.
	opts := &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}
	f, err := opts.Parse("", src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	for _, stmt := range f.Stmts {
		if err := validateStmt(stmt); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func validateStmt(stmt syntax.Stmt) error {
	switch s := stmt.(type) {
	case *syntax.AssignStmt:
		if s.Op != syntax.EQ {
			return disallowed(s, fmt.Sprintf("augmented assignment (%s)", s.Op))
		}
		if err := validateAssignTargets(s.LHS); err != nil {
			return err
		}
		return validateExpr(s.RHS)

	case *syntax.ExprStmt:
		return validateExpr(s.X)

	case *syntax.IfStmt:
		if err := validateCondition(s.Cond); err != nil {
			return err
		}
		for _, branch := range [][]syntax.Stmt{s.True, s.False} {
			for _, inner := range branch {
				if err := validateStmt(inner); err != nil {
					return err
				}
			}
		}
		return nil

	default:
		return disallowed(stmt, internal.NodeName(stmt))
	}
}

func validateAssignTargets(lhs syntax.Expr) error {
	switch target := internal.Unparen(lhs).(type) {
	case *syntax.Ident:
		return nil
	case *syntax.TupleExpr:
		return allIdents(target, target.List)
	case *syntax.ListExpr:
		return allIdents(target, target.List)
	default:
		return disallowed(lhs, "assignment to "+internal.NodeName(lhs))
	}
}

func allIdents(container syntax.Expr, list []syntax.Expr) error {
	for _, e := range list {
		if _, ok := internal.Unparen(e).(*syntax.Ident); !ok {
			return disallowed(container, "assignment to "+internal.NodeName(e))
		}
	}
	return nil
}

func validateCondition(cond syntax.Expr) error {
	be, ok := internal.Unparen(cond).(*syntax.BinaryExpr)
	if !ok || !internal.IsComparisonOp(be.Op) {
		return disallowed(cond, internal.NodeName(cond)+" as a condition")
	}
	if err := validateExpr(be.X); err != nil {
		return err
	}
	return validateExpr(be.Y)
}

func validateExpr(e syntax.Expr) error {
	switch e := e.(type) {
	case *syntax.Literal:
		return nil

	case *syntax.Ident:
		return nil

	case *syntax.ParenExpr:
		return validateExpr(e.X)

	case *syntax.CallExpr:
		if _, ok := internal.Unparen(e.Fn).(*syntax.Ident); !ok {
			return disallowed(e, "calling a "+internal.NodeName(e.Fn))
		}
		for _, arg := range e.Args {
			// Keyword arguments arrive as name=value binary expressions.
			if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
				if _, ok := kw.X.(*syntax.Ident); ok {
					if err := validateExpr(kw.Y); err != nil {
						return err
					}
					continue
				}
			}
			if err := validateExpr(arg); err != nil {
				return err
			}
		}
		return nil

	case *syntax.IndexExpr:
		if err := validateExpr(e.X); err != nil {
			return err
		}
		return validateExpr(e.Y)

	case *syntax.BinaryExpr:
		// Comparisons are only valid as if-statement conditions, which are
		// validated by validateCondition before reaching this point.
		if internal.IsComparisonOp(e.Op) {
			return disallowed(e, "a comparison outside an if condition")
		}
		return disallowed(e, fmt.Sprintf("binary operator %s", e.Op))

	default:
		return disallowed(e, internal.NodeName(e))
	}
}

func disallowed(n syntax.Node, what string) error {
	start, _ := n.Span()
	return fmt.Errorf("%w: %s is not supported (line %d)", ErrDisallowedSyntax, what, start.Line)
}
