package ast

import "whilec/pkg/token"

type Operator int

const (
	OpInvalid Operator = iota

	// binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLT
	OpGT
	OpLTE
	OpGTE
	OpEq
	OpNotEq
	OpAnd
	OpOr

	// unary
	OpNeg
	OpNot
)

var operatorText = [...]string{
	OpInvalid: "<invalid>",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "%",
	OpLT:      "<",
	OpGT:      ">",
	OpLTE:     "<=",
	OpGTE:     ">=",
	OpEq:      "==",
	OpNotEq:   "!=",
	OpAnd:     "&&",
	OpOr:      "||",
	OpNeg:     "-",
	OpNot:     "!",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorText) {
		return operatorText[OpInvalid]
	}
	return operatorText[op]
}

func (op Operator) IsBinary() bool { return op >= OpAdd && op <= OpOr }
func (op Operator) IsUnary() bool  { return op == OpNeg || op == OpNot }

var binaryOperators = map[token.TokenType]Operator{
	token.PLUS:     OpAdd,
	token.MINUS:    OpSub,
	token.ASTERISK: OpMul,
	token.SLASH:    OpDiv,
	token.PERCENT:  OpMod,
	token.LT:       OpLT,
	token.GT:       OpGT,
	token.LTE:      OpLTE,
	token.GTE:      OpGTE,
	token.EQ:       OpEq,
	token.NOT_EQ:   OpNotEq,
	token.AND:      OpAnd,
	token.OR:       OpOr,
}

var unaryOperators = map[token.TokenType]Operator{
	token.MINUS: OpNeg,
	token.BANG:  OpNot,
}

// BinaryOperator maps an operator token to its binary operator.
func BinaryOperator(t token.TokenType) (Operator, bool) {
	op, ok := binaryOperators[t]
	return op, ok
}

// UnaryOperator maps a prefix token to its unary operator.
func UnaryOperator(t token.TokenType) (Operator, bool) {
	op, ok := unaryOperators[t]
	return op, ok
}
