// Package expr implements the row-rule expression language: a tokenizer,
// a recursive descent parser, and a three-valued evaluator over datasets.
//
// Grammar, lowest to highest precedence:
//
//	expression → or_expr
//	or_expr    → and_expr (OR and_expr)*
//	and_expr   → comparison (AND comparison)*
//	comparison → primary [("<" | "<=" | ">" | ">=" | "==" | "!=") primary]
//	primary    → "(" expression ")" | ident | ident "(" arg_list ")" | NUMBER | STRING
//
// Function calls are restricted to an explicit allow-list at evaluation
// time; see eval.go.
package expr

import (
	"fmt"
	"strconv"
)

// Parser parses a row-rule expression into an AST.
type Parser struct {
	lexer *Lexer
	token Token // current token
	peek  Token // lookahead token
}

// NewParser creates a parser for the given expression source.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse tokenizes and parses the expression. Trailing input after a
// complete expression is a SyntaxError.
func Parse(input string) (Expr, error) {
	p := NewParser(input)
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.token.Type == TOKEN_ILLEGAL {
		return nil, p.errorf("invalid character %q", p.token.Literal)
	}
	if p.token.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected token %s after expression", p.token.Type)
	}
	return node, nil
}

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.token.Pos, Message: fmt.Sprintf(format, args...)}
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t TokenType) error {
	if p.token.Type != t {
		return p.errorf("expected %s, got %s", t, p.token.Type)
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.token.Type == TOKEN_OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.token.Type == TOKEN_AND {
		p.nextToken()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}
	return left, nil
}

// parseComparison parses at most one comparison; chaining like a < b < c
// is not part of the grammar.
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	var op CompareOp
	switch p.token.Type {
	case TOKEN_LT:
		op = OpLT
	case TOKEN_LE:
		op = OpLE
	case TOKEN_GT:
		op = OpGT
	case TOKEN_GE:
		op = OpGE
	case TOKEN_EQ:
		op = OpEQ
	case TOKEN_NE:
		op = OpNE
	default:
		return left, nil
	}
	p.nextToken()

	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &CompareExpr{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch p.token.Type {
	case TOKEN_LPAREN:
		p.nextToken()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case TOKEN_IDENT:
		name := p.token.Literal
		p.nextToken()
		if p.token.Type == TOKEN_LPAREN {
			return p.parseCall(name)
		}
		return &Ident{Name: name}, nil

	case TOKEN_NUMBER:
		f, err := strconv.ParseFloat(p.token.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", p.token.Literal)
		}
		p.nextToken()
		return &NumberLit{Value: f}, nil

	case TOKEN_STRING:
		lit := &StringLit{Value: p.token.Literal}
		p.nextToken()
		return lit, nil

	case TOKEN_EOF:
		return nil, p.errorf("unexpected end of expression")

	case TOKEN_ILLEGAL:
		return nil, p.errorf("invalid character %q", p.token.Literal)

	default:
		return nil, p.errorf("unexpected token %s", p.token.Type)
	}
}

// parseCall parses the argument list of a function call. The opening
// paren is the current token.
func (p *Parser) parseCall(name string) (Expr, error) {
	p.nextToken() // consume '('

	call := &CallExpr{Name: name}
	if p.token.Type != TOKEN_RPAREN {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		for p.token.Type == TOKEN_COMMA {
			p.nextToken()
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}
