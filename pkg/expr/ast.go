package expr

// Expr is a node of a parsed row-rule expression. The node set is closed:
// identifiers, number and string literals, comparisons, AND/OR, and calls
// to allow-listed functions.
type Expr interface {
	exprNode()
}

// Ident references a dataset column by name.
type Ident struct {
	Name string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

// CompareOp is a comparison operator.
type CompareOp string

const (
	OpLT CompareOp = "<"
	OpLE CompareOp = "<="
	OpGT CompareOp = ">"
	OpGE CompareOp = ">="
	OpEQ CompareOp = "=="
	OpNE CompareOp = "!="
)

// CompareExpr compares two operands.
type CompareExpr struct {
	Op    CompareOp
	Left  Expr
	Right Expr
}

// AndExpr is a logical conjunction.
type AndExpr struct {
	Left  Expr
	Right Expr
}

// OrExpr is a logical disjunction.
type OrExpr struct {
	Left  Expr
	Right Expr
}

// CallExpr calls a function by name. Only allow-listed functions may be
// evaluated; the parser accepts any name so the evaluator can report a
// precise error.
type CallExpr struct {
	Name string
	Args []Expr
}

func (*Ident) exprNode()       {}
func (*NumberLit) exprNode()   {}
func (*StringLit) exprNode()   {}
func (*CompareExpr) exprNode() {}
func (*AndExpr) exprNode()     {}
func (*OrExpr) exprNode()      {}
func (*CallExpr) exprNode()    {}
