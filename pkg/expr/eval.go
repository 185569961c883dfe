package expr

import (
	"fmt"
	"strings"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// Tri is a three-valued boolean. Comparisons against null cells yield
// TriNull, which propagates through AND/OR with Kleene semantics. A row
// passes a rule only on TriTrue; TriNull counts as failing.
type Tri uint8

const (
	TriNull Tri = iota
	TriFalse
	TriTrue
)

// allowedFuncs is the fixed function allow-list. It is deliberately a
// constant set: row rules must not reach arbitrary code.
var allowedFuncs = map[string]struct{}{
	"is_null":  {},
	"not_null": {},
}

// Eval evaluates a parsed expression against every row of the dataset.
// It validates column references and function calls up front, so the
// returned error is the only failure path; per-row evaluation is total.
func Eval(node Expr, ds *dataset.Dataset) ([]Tri, error) {
	if err := validate(node, ds); err != nil {
		return nil, err
	}
	out := make([]Tri, ds.NumRows())
	for row := range out {
		out[row] = truthy(evalValue(node, ds, row))
	}
	return out, nil
}

// EvalRule parses and evaluates a rule expression in one step.
func EvalRule(input string, ds *dataset.Dataset) ([]Tri, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Eval(node, ds)
}

// validate walks the AST checking identifiers and calls before any row
// is evaluated.
func validate(node Expr, ds *dataset.Dataset) error {
	switch n := node.(type) {
	case *Ident:
		if !ds.HasColumn(n.Name) {
			return &EvalError{Message: fmt.Sprintf("unknown column in expression: %s", n.Name)}
		}
	case *NumberLit, *StringLit:
	case *CompareExpr:
		if err := validate(n.Left, ds); err != nil {
			return err
		}
		return validate(n.Right, ds)
	case *AndExpr:
		if err := validate(n.Left, ds); err != nil {
			return err
		}
		return validate(n.Right, ds)
	case *OrExpr:
		if err := validate(n.Left, ds); err != nil {
			return err
		}
		return validate(n.Right, ds)
	case *CallExpr:
		if _, ok := allowedFuncs[n.Name]; !ok {
			return &EvalError{Message: fmt.Sprintf("function not allowed: %s", n.Name)}
		}
		if len(n.Args) != 1 {
			return &EvalError{Message: fmt.Sprintf("%s requires exactly one argument", n.Name)}
		}
		return validate(n.Args[0], ds)
	default:
		return &EvalError{Message: "invalid expression node"}
	}
	return nil
}

// evalValue evaluates a node for one row, producing a cell value.
// Boolean sub-results are materialized as bool cells; the null tri-state
// maps to the null cell.
func evalValue(node Expr, ds *dataset.Dataset, row int) dataset.Value {
	switch n := node.(type) {
	case *Ident:
		cell, _ := ds.Cell(n.Name, row)
		return cell
	case *NumberLit:
		return dataset.Number(n.Value)
	case *StringLit:
		return dataset.Text(n.Value)
	case *CompareExpr:
		return triValue(compare(n.Op, evalValue(n.Left, ds, row), evalValue(n.Right, ds, row)))
	case *AndExpr:
		return triValue(triAnd(truthy(evalValue(n.Left, ds, row)), truthy(evalValue(n.Right, ds, row))))
	case *OrExpr:
		return triValue(triOr(truthy(evalValue(n.Left, ds, row)), truthy(evalValue(n.Right, ds, row))))
	case *CallExpr:
		arg := evalValue(n.Args[0], ds, row)
		switch n.Name {
		case "is_null":
			return dataset.Bool(arg.IsNull())
		case "not_null":
			return dataset.Bool(!arg.IsNull())
		}
	}
	return dataset.Null()
}

// compare applies a comparison operator to two cells. A null operand
// yields TriNull rather than true or false. Operands are compared
// numerically when both sides have a numeric reading and at least one is
// a number or boolean; otherwise text operands compare as strings. A
// comparison with no common reading yields TriNull: ambiguous rows are
// never silently accepted.
func compare(op CompareOp, left, right dataset.Value) Tri {
	if left.IsNull() || right.IsNull() {
		return TriNull
	}

	numericContext := left.Kind() == dataset.KindNumber || right.Kind() == dataset.KindNumber ||
		left.Kind() == dataset.KindBool || right.Kind() == dataset.KindBool
	if numericContext {
		ln, lok := left.AsNumber()
		rn, rok := right.AsNumber()
		if !lok || !rok {
			return TriNull
		}
		return fromBool(applyNumeric(op, ln, rn))
	}

	// Text against text: equality and lexicographic ordering.
	return fromBool(applyString(op, left.String(), right.String()))
}

func applyNumeric(op CompareOp, l, r float64) bool {
	switch op {
	case OpLT:
		return l < r
	case OpLE:
		return l <= r
	case OpGT:
		return l > r
	case OpGE:
		return l >= r
	case OpEQ:
		return l == r
	default:
		return l != r
	}
}

func applyString(op CompareOp, l, r string) bool {
	c := strings.Compare(l, r)
	switch op {
	case OpLT:
		return c < 0
	case OpLE:
		return c <= 0
	case OpGT:
		return c > 0
	case OpGE:
		return c >= 0
	case OpEQ:
		return c == 0
	default:
		return c != 0
	}
}

// truthy reduces a cell to a tri-state: null stays null, booleans map
// directly, numbers are true when nonzero, text when nonempty.
func truthy(v dataset.Value) Tri {
	switch v.Kind() {
	case dataset.KindNull:
		return TriNull
	case dataset.KindBool:
		b, _ := v.AsBool()
		return fromBool(b)
	case dataset.KindNumber:
		n, _ := v.AsNumber()
		return fromBool(n != 0)
	default:
		return fromBool(v.String() != "")
	}
}

func triValue(t Tri) dataset.Value {
	switch t {
	case TriNull:
		return dataset.Null()
	case TriTrue:
		return dataset.Bool(true)
	default:
		return dataset.Bool(false)
	}
}

func fromBool(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// triAnd implements Kleene conjunction: false dominates, null otherwise
// propagates.
func triAnd(a, b Tri) Tri {
	if a == TriFalse || b == TriFalse {
		return TriFalse
	}
	if a == TriNull || b == TriNull {
		return TriNull
	}
	return TriTrue
}

// triOr implements Kleene disjunction: true dominates, null otherwise
// propagates.
func triOr(a, b Tri) Tri {
	if a == TriTrue || b == TriTrue {
		return TriTrue
	}
	if a == TriNull || b == TriNull {
		return TriNull
	}
	return TriFalse
}
