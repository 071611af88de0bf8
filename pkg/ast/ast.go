package ast

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"whilec/pkg/token"
)

// Node is implemented only by the node types in this package. Consumers
// switch over the concrete types and treat anything else as a bug.
type Node interface {
	TokenLiteral() string
	String() string
	node()
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

var (
	errNilOperand     = errors.New("ast: nil operand")
	errNilStatement   = errors.New("ast: nil statement")
	errUnknownLiteral = errors.New("ast: unknown literal kind")
)

// LiteralKind is fixed when a Literal is built from its token.
type LiteralKind string

const (
	KindInt   LiteralKind = "INT"
	KindFloat LiteralKind = "FLOAT"
	KindID    LiteralKind = "ID"
)

// Statements

type ExprStatement struct {
	Token token.Token // the first token of the expression
	Expr  Expression
}

func NewExprStatement(tok token.Token, expr Expression) (*ExprStatement, error) {
	if expr == nil {
		return nil, errNilOperand
	}
	return &ExprStatement{Token: tok, Expr: expr}, nil
}

func (es *ExprStatement) node()                {}
func (es *ExprStatement) statementNode()       {}
func (es *ExprStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExprStatement) String() string       { return es.Expr.String() + ";" }

type Block struct {
	Token      token.Token // '{'
	Statements []Statement
}

func NewBlock(tok token.Token, stmts []Statement) (*Block, error) {
	for _, s := range stmts {
		if s == nil {
			return nil, errNilStatement
		}
	}
	return &Block{Token: tok, Statements: stmts}, nil
}

func (b *Block) node()                {}
func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range b.Statements {
		out.WriteString(" " + s.String())
	}
	out.WriteString(" }")
	return out.String()
}

type WhileStatement struct {
	Token     token.Token // 'while'
	Condition Expression
	Body      Statement // *Block or *ExprStatement
}

func NewWhileStatement(tok token.Token, cond Expression, body Statement) (*WhileStatement, error) {
	if cond == nil || body == nil {
		return nil, errNilOperand
	}
	return &WhileStatement{Token: tok, Condition: cond, Body: body}, nil
}

func (ws *WhileStatement) node()                {}
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("while (")
	out.WriteString(ws.Condition.String())
	out.WriteString(") ")
	out.WriteString(ws.Body.String())
	return out.String()
}

// Expressions

// Literal is a leaf. Exactly one of Int, Float, Name is meaningful,
// selected by Kind.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	Int   int64
	Float float64
	Name  string
}

// NewLiteral derives the literal's kind from the token it was read from.
func NewLiteral(tok token.Token) (*Literal, error) {
	switch tok.Type {
	case token.INT:
		return &Literal{Token: tok, Kind: KindInt, Int: tok.Int}, nil
	case token.FLOAT:
		return &Literal{Token: tok, Kind: KindFloat, Float: tok.Float}, nil
	case token.IDENT:
		return &Literal{Token: tok, Kind: KindID, Name: tok.Literal}, nil
	}
	return nil, fmt.Errorf("%w: token %s", errUnknownLiteral, tok.Type)
}

// Value returns the payload as int64, float64 or string.
func (l *Literal) Value() any {
	switch l.Kind {
	case KindInt:
		return l.Int
	case KindFloat:
		return l.Float
	default:
		return l.Name
	}
}

func (l *Literal) node()                {}
func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string {
	switch l.Kind {
	case KindInt:
		return strconv.FormatInt(l.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	default:
		return l.Name
	}
}

type UnaryOp struct {
	Token   token.Token // the prefix token, '-' or '!'
	Op      Operator
	Operand Expression
}

func NewUnaryOp(tok token.Token, op Operator, operand Expression) (*UnaryOp, error) {
	if !op.IsUnary() {
		return nil, fmt.Errorf("ast: %s is not a unary operator", op)
	}
	if operand == nil {
		return nil, errNilOperand
	}
	return &UnaryOp{Token: tok, Op: op, Operand: operand}, nil
}

func (u *UnaryOp) node()                {}
func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) String() string {
	return "(" + u.Op.String() + u.Operand.String() + ")"
}

type BinaryOp struct {
	Token token.Token // the operator token, e.g. +
	Op    Operator
	Left  Expression
	Right Expression
}

func NewBinaryOp(tok token.Token, op Operator, left, right Expression) (*BinaryOp, error) {
	if !op.IsBinary() {
		return nil, fmt.Errorf("ast: %s is not a binary operator", op)
	}
	if left == nil || right == nil {
		return nil, errNilOperand
	}
	return &BinaryOp{Token: tok, Op: op, Left: left, Right: right}, nil
}

func (b *BinaryOp) node()                {}
func (b *BinaryOp) expressionNode()      {}
func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Op.String() + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}
