package internal

import (
	"fmt"
	"strings"

	"go.starlark.net/syntax"
)

// NodeName returns a short human-readable name for a syntax node, used in
// error messages sent back to the code-generating model.
func NodeName(n syntax.Node) string {
	switch n.(type) {
	case *syntax.AssignStmt:
		return "assignment"
	case *syntax.BranchStmt:
		return "branch statement"
	case *syntax.DefStmt:
		return "function definition"
	case *syntax.ExprStmt:
		return "expression statement"
	case *syntax.ForStmt:
		return "for loop"
	case *syntax.IfStmt:
		return "if statement"
	case *syntax.LoadStmt:
		return "load statement"
	case *syntax.ReturnStmt:
		return "return statement"
	case *syntax.WhileStmt:
		return "while loop"
	case *syntax.BinaryExpr:
		return "binary expression"
	case *syntax.CallExpr:
		return "function call"
	case *syntax.Comprehension:
		return "comprehension"
	case *syntax.CondExpr:
		return "conditional expression"
	case *syntax.DictExpr:
		return "dict literal"
	case *syntax.DotExpr:
		return "attribute access"
	case *syntax.Ident:
		return "identifier"
	case *syntax.IndexExpr:
		return "subscript"
	case *syntax.LambdaExpr:
		return "lambda"
	case *syntax.ListExpr:
		return "list literal"
	case *syntax.Literal:
		return "literal"
	case *syntax.SliceExpr:
		return "slice"
	case *syntax.TupleExpr:
		return "tuple"
	case *syntax.UnaryExpr:
		return "unary expression"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax.")
	}
}

// IsComparisonOp reports whether the token is one of the supported
// comparison operators. Identity comparisons (`is` / `is not`) do not
// exist in this grammar and fail at parse time.
func IsComparisonOp(op syntax.Token) bool {
	switch op {
	case syntax.EQL, syntax.NEQ, syntax.LT, syntax.LE, syntax.GT, syntax.GE,
		syntax.IN, syntax.NOT_IN:
		return true
	default:
		return false
	}
}

// Unparen removes any grouping parentheses around an expression.
func Unparen(e syntax.Expr) syntax.Expr {
	for {
		p, ok := e.(*syntax.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
