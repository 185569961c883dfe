package expr

import "strings"

// TokenType identifies a lexical token class.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_STRING

	TOKEN_LT
	TOKEN_LE
	TOKEN_GT
	TOKEN_GE
	TOKEN_EQ
	TOKEN_NE

	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_COMMA

	TOKEN_AND
	TOKEN_OR
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_IDENT:   "IDENT",
	TOKEN_NUMBER:  "NUMBER",
	TOKEN_STRING:  "STRING",
	TOKEN_LT:      "<",
	TOKEN_LE:      "<=",
	TOKEN_GT:      ">",
	TOKEN_GE:      ">=",
	TOKEN_EQ:      "==",
	TOKEN_NE:      "!=",
	TOKEN_LPAREN:  "(",
	TOKEN_RPAREN:  ")",
	TOKEN_COMMA:   ",",
	TOKEN_AND:     "AND",
	TOKEN_OR:      "OR",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position locates a token inside the source expression.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// LookupIdent maps the keyword spellings of AND/OR (case-insensitive) to
// their token types; every other identifier stays TOKEN_IDENT.
func LookupIdent(ident string) TokenType {
	switch strings.ToLower(ident) {
	case "and":
		return TOKEN_AND
	case "or":
		return TOKEN_OR
	default:
		return TOKEN_IDENT
	}
}
