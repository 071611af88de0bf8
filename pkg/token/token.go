package token

import "fmt"

type TokenType string

const (
	// Special
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers & Literals
	IDENT = "IDENT"
	INT   = "INT"
	FLOAT = "FLOAT"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT     = "<"
	GT     = ">"
	EQ     = "=="
	NOT_EQ = "!="
	LTE    = "<="
	GTE    = ">="
	AND    = "&&"
	OR     = "||"

	// Delimiters
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	WHILE = "WHILE"
)

// Token is a single lexical unit. Int and Float carry the converted payload
// of INT and FLOAT tokens; they are zero for every other kind.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Int     int64
	Float   float64
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, line %d)", t.Type, t.Literal, t.Line)
}

// Describe names the token the way error messages refer to it.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case IDENT, INT, FLOAT, ILLEGAL:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}

var keywords = map[string]TokenType{
	"while": WHILE,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
