package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"whilec/pkg/ast"
	"whilec/pkg/lexer"
	"whilec/pkg/token"
)

// DefaultMaxDepth bounds nesting of parentheses and blocks.
const DefaultMaxDepth = 512

// Mode selects the root rule.
type Mode int

const (
	ModeExpression Mode = iota // root rule Expression
	ModePrimary                // root rule Primary
	ModeStatement              // root rule WhileStatement
)

var modeNames = map[Mode]string{
	ModeExpression: "expression",
	ModePrimary:    "primary",
	ModeStatement:  "statement",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "expression", "primary" or "statement" to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown parse mode %q", s)
}

// SyntaxError is returned for the first token that cannot extend the
// active rule. Premature end of input shows up as an EOF token.
type SyntaxError struct {
	Token    token.Token
	Rule     string
	Expected []token.TokenType
	Msg      string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: syntax error in %s: ", e.Token.Line, e.Rule)
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString("unexpected " + e.Token.Describe())
	}
	if len(e.Expected) > 0 {
		b.WriteString(" (expected " + describeExpected(e.Expected) + ")")
	}
	return b.String()
}

func describeExpected(types []token.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		switch t {
		case token.IDENT:
			names[i] = "identifier"
		case token.INT:
			names[i] = "integer"
		case token.FLOAT:
			names[i] = "float"
		case token.EOF:
			names[i] = "end of input"
		case token.WHILE:
			names[i] = `"while"`
		default:
			names[i] = fmt.Sprintf("%q", string(t))
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// Parser is a single-use recursive descent parser over one lexer. It keeps
// exactly one token of lookahead.
type Parser struct {
	l *lexer.Lexer

	curToken token.Token

	depth    int
	maxDepth int
	logger   *slog.Logger
}

type Option func(*Parser)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.nextToken()

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

// Parse runs the root rule for mode and requires the input to end there.
func (p *Parser) Parse(mode Mode) (ast.Node, error) {
	switch mode {
	case ModeExpression:
		exp, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return exp, nil
	case ModePrimary:
		exp, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}
		return exp, nil
	case ModeStatement:
		stmt, err := p.ParseWhileStatement()
		if err != nil {
			return nil, err
		}
		return stmt, nil
	}
	return nil, fmt.Errorf("unknown parse mode %s", mode)
}

// ParseExpression parses a whole input as one Expression.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	exp, err := p.parseExpression()
	if err == nil {
		err = p.expectEOF("Expression")
	}
	if err != nil {
		return nil, p.failed(err)
	}
	return exp, nil
}

// ParsePrimary parses a whole input as one Primary: a literal, an
// identifier or a parenthesized expression.
func (p *Parser) ParsePrimary() (ast.Expression, error) {
	exp, err := p.parsePrimary()
	if err == nil {
		err = p.expectEOF("Primary")
	}
	if err != nil {
		return nil, p.failed(err)
	}
	return exp, nil
}

// ParseWhileStatement parses a whole input as one while statement.
func (p *Parser) ParseWhileStatement() (*ast.WhileStatement, error) {
	stmt, err := p.parseWhileStatement()
	if err == nil {
		err = p.expectEOF("WhileStatement")
	}
	if err != nil {
		return nil, p.failed(err)
	}
	return stmt, nil
}

func (p *Parser) failed(err error) error {
	p.logger.Debug("syntax error", "line", p.curToken.Line, "error", err.Error())
	return err
}

// whileStatement = "while" "(" expression ")" statement
func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	const rule = "WhileStatement"

	tok := p.curToken
	if err := p.expect(rule, token.WHILE); err != nil {
		return nil, err
	}
	if err := p.expect(rule, token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(rule, token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(tok, cond, body)
}

var statementStart = []token.TokenType{
	token.LBRACE, token.MINUS, token.BANG, token.IDENT, token.INT, token.FLOAT, token.LPAREN,
}

// statement = "{" statementList "}" | expression ";"
func (p *Parser) parseStatement() (ast.Statement, error) {
	const rule = "Statement"

	if p.curTokenIs(token.LBRACE) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return block, nil
	}
	if !p.curTokenIsAny(statementStart...) {
		return nil, p.unexpected(rule, statementStart...)
	}

	tok := p.curToken
	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(rule, token.SEMICOLON); err != nil {
		return nil, err
	}
	stmt, err := ast.NewExprStatement(tok, exp)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// statementList = statement statement*
func (p *Parser) parseBlock() (*ast.Block, error) {
	const rule = "StatementList"

	tok := p.curToken
	if err := p.enter(rule); err != nil {
		return nil, err
	}
	defer p.leave()
	p.nextToken()

	stmts := []ast.Statement{}
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.curTokenIs(token.RBRACE) {
			break
		}
	}
	p.nextToken()

	return ast.NewBlock(tok, stmts)
}

// expression = conjunction ("||" conjunction)*
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseChain(p.parseConjunction, token.OR)
}

// conjunction = equality ("&&" equality)*
func (p *Parser) parseConjunction() (ast.Expression, error) {
	return p.parseChain(p.parseEquality, token.AND)
}

// equality = relation [("==" | "!=") relation]
func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseOptional(p.parseRelation, token.EQ, token.NOT_EQ)
}

// relation = addition [("<" | ">" | "<=" | ">=") addition]
func (p *Parser) parseRelation() (ast.Expression, error) {
	return p.parseOptional(p.parseAddition, token.LT, token.GT, token.LTE, token.GTE)
}

// addition = term (("+" | "-") term)*
func (p *Parser) parseAddition() (ast.Expression, error) {
	return p.parseChain(p.parseTerm, token.PLUS, token.MINUS)
}

// term = factor (("*" | "/" | "%") factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseChain(p.parseFactor, token.ASTERISK, token.SLASH, token.PERCENT)
}

// factor = ("-" | "!") primary | primary
func (p *Parser) parseFactor() (ast.Expression, error) {
	op, ok := ast.UnaryOperator(p.curToken.Type)
	if !ok {
		return p.parsePrimary()
	}

	tok := p.curToken
	p.nextToken()
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	u, err := ast.NewUnaryOp(tok, op, operand)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// primary = IDENT | INT | FLOAT | "(" expression ")"
func (p *Parser) parsePrimary() (ast.Expression, error) {
	const rule = "Primary"

	switch p.curToken.Type {
	case token.IDENT, token.INT, token.FLOAT:
		lit, err := ast.NewLiteral(p.curToken)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return lit, nil
	case token.LPAREN:
		if err := p.enter(rule); err != nil {
			return nil, err
		}
		defer p.leave()
		p.nextToken()
		exp, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(rule, token.RPAREN); err != nil {
			return nil, err
		}
		return exp, nil
	}
	return nil, p.unexpected(rule, token.IDENT, token.INT, token.FLOAT, token.LPAREN)
}

// parseChain folds operand (op operand)* to the left.
func (p *Parser) parseChain(operand func() (ast.Expression, error), ops ...token.TokenType) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.curTokenIsAny(ops...) {
		left, err = p.parseBinary(left, operand)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseOptional accepts at most one operator: comparisons do not chain.
func (p *Parser) parseOptional(operand func() (ast.Expression, error), ops ...token.TokenType) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	if p.curTokenIsAny(ops...) {
		return p.parseBinary(left, operand)
	}
	return left, nil
}

func (p *Parser) parseBinary(left ast.Expression, operand func() (ast.Expression, error)) (ast.Expression, error) {
	tok := p.curToken
	op, ok := ast.BinaryOperator(tok.Type)
	if !ok {
		return nil, fmt.Errorf("parser: %s is not a binary operator", tok.Type)
	}
	p.nextToken()
	right, err := operand()
	if err != nil {
		return nil, err
	}
	b, err := ast.NewBinaryOp(tok, op, left, right)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Parser) enter(rule string) error {
	if p.depth >= p.maxDepth {
		return &SyntaxError{
			Token: p.curToken,
			Rule:  rule,
			Msg:   fmt.Sprintf("nesting deeper than %d", p.maxDepth),
		}
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) curTokenIsAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.curToken.Type == t {
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(rule string, t token.TokenType) error {
	if !p.curTokenIs(t) {
		return p.unexpected(rule, t)
	}
	p.nextToken()
	return nil
}

func (p *Parser) expectEOF(rule string) error {
	if !p.curTokenIs(token.EOF) {
		return p.unexpected(rule, token.EOF)
	}
	return nil
}

func (p *Parser) unexpected(rule string, expected ...token.TokenType) error {
	return &SyntaxError{Token: p.curToken, Rule: rule, Expected: expected}
}
