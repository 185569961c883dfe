package expr

import "fmt"

// SyntaxError reports a malformed expression with the offending position.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// EvalError reports an expression that parsed but cannot be evaluated
// against the dataset, such as an unknown column reference or a call to
// a function outside the allow-list.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error: %s", e.Message)
}
