package lexer

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"whilec/pkg/token"
)

// IllegalCharError reports a character that starts no token. The lexer
// skips the character and keeps scanning.
type IllegalCharError struct {
	Char rune
	Line int
}

func (e *IllegalCharError) Error() string {
	return fmt.Sprintf("illegal character %q on line %d", e.Char, e.Line)
}

// LiteralRangeError reports a numeric literal that does not fit int64 or
// float64. The literal is emitted as an ILLEGAL token.
type LiteralRangeError struct {
	Text string
	Line int
}

func (e *LiteralRangeError) Error() string {
	return fmt.Sprintf("numeric literal %s out of range on line %d", e.Text, e.Line)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int

	diagnostics []error
	logger      *slog.Logger
}

type Option func(*Lexer)

// WithLogger reports every diagnostic on logger at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Tokenize drains a fresh lexer over input. The returned slice always ends
// with an EOF token.
func Tokenize(input string, opts ...Option) ([]token.Token, []error) {
	l := New(input, opts...)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, l.Diagnostics()
}

// Diagnostics returns the illegal-character and literal-range errors seen
// so far, in source order.
func (l *Lexer) Diagnostics() []error {
	return l.diagnostics
}

// Line is the line the scanner is currently on.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) NextToken() token.Token {
	for {
		for l.ch == ' ' || l.ch == '\t' {
			l.readChar()
		}
		if l.ch == '\n' {
			l.skipNewlines()
			continue
		}

		var tok token.Token

		switch l.ch {
		case '=':
			tok = l.either('=', token.EQ, token.ASSIGN)
		case '!':
			tok = l.either('=', token.NOT_EQ, token.BANG)
		case '<':
			tok = l.either('=', token.LTE, token.LT)
		case '>':
			tok = l.either('=', token.GTE, token.GT)
		case '&':
			if l.peekChar() != '&' {
				l.illegal()
				continue
			}
			tok = l.pair(token.AND)
		case '|':
			if l.peekChar() != '|' {
				l.illegal()
				continue
			}
			tok = l.pair(token.OR)
		case '+':
			tok = newToken(token.PLUS, l.ch, l.line)
		case '-':
			tok = newToken(token.MINUS, l.ch, l.line)
		case '*':
			tok = newToken(token.ASTERISK, l.ch, l.line)
		case '/':
			tok = newToken(token.SLASH, l.ch, l.line)
		case '%':
			tok = newToken(token.PERCENT, l.ch, l.line)
		case '(':
			tok = newToken(token.LPAREN, l.ch, l.line)
		case ')':
			tok = newToken(token.RPAREN, l.ch, l.line)
		case '{':
			tok = newToken(token.LBRACE, l.ch, l.line)
		case '}':
			tok = newToken(token.RBRACE, l.ch, l.line)
		case ';':
			tok = newToken(token.SEMICOLON, l.ch, l.line)
		default:
			if l.ch == 0 && l.atEnd() {
				return token.Token{Type: token.EOF, Literal: "", Line: l.line}
			}
			if isLetter(l.ch) {
				tok.Line = l.line
				tok.Literal = l.readIdentifier()
				tok.Type = token.LookupIdent(tok.Literal)
				return tok
			}
			if isDigit(l.ch) {
				return l.readNumber()
			}
			l.illegal()
			continue
		}

		l.readChar()
		return tok
	}
}

// either emits two when the next char is second, otherwise one.
func (l *Lexer) either(second byte, two, one token.TokenType) token.Token {
	if l.peekChar() == second {
		return l.pair(two)
	}
	return newToken(one, l.ch, l.line)
}

// pair consumes the first char of a two-char operator; NextToken consumes
// the second.
func (l *Lexer) pair(tokenType token.TokenType) token.Token {
	ch := l.ch
	l.readChar()
	return token.Token{Type: tokenType, Literal: string(ch) + string(l.ch), Line: l.line}
}

func (l *Lexer) skipNewlines() {
	for l.ch == '\n' {
		l.line++
		l.readChar()
	}
}

func (l *Lexer) illegal() {
	r, size := utf8.DecodeRuneInString(l.input[l.position:])
	l.report(&IllegalCharError{Char: r, Line: l.line})
	for i := 0; i < size; i++ {
		l.readChar()
	}
}

func (l *Lexer) report(err error) {
	l.diagnostics = append(l.diagnostics, err)
	l.logger.Warn("lexer diagnostic", "line", l.line, "error", err.Error())
}

func newToken(tokenType token.TokenType, ch byte, line int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Line: line}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// readNumber matches digits '.' digits before plain digits, so "1.5" is a
// single FLOAT and "1." is an INT followed by whatever '.' turns out to be.
func (l *Lexer) readNumber() token.Token {
	tok := token.Token{Type: token.INT, Line: l.line}
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tok.Type = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Literal = l.input[position:l.position]

	var err error
	if tok.Type == token.FLOAT {
		tok.Float, err = strconv.ParseFloat(tok.Literal, 64)
	} else {
		tok.Int, err = strconv.ParseInt(tok.Literal, 10, 64)
	}
	if err != nil {
		l.report(&LiteralRangeError{Text: tok.Literal, Line: tok.Line})
		return token.Token{Type: token.ILLEGAL, Literal: tok.Literal, Line: tok.Line}
	}
	return tok
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
