package ast

import (
	"fmt"
	"strconv"
)

// ToMap converts a tree into nested maps and slices that encode cleanly as
// JSON or YAML. Every map carries its node type under "node".
func ToMap(node Node) map[string]any {
	switch n := node.(type) {
	case nil:
		return nil
	case *Literal:
		return map[string]any{"node": "Literal", "kind": string(n.Kind), "value": n.Value()}
	case *UnaryOp:
		return map[string]any{"node": "UnaryOp", "op": n.Op.String(), "operand": ToMap(n.Operand)}
	case *BinaryOp:
		return map[string]any{
			"node":  "BinaryOp",
			"op":    n.Op.String(),
			"left":  ToMap(n.Left),
			"right": ToMap(n.Right),
		}
	case *ExprStatement:
		return map[string]any{"node": "ExprStatement", "expr": ToMap(n.Expr)}
	case *Block:
		stmts := make([]any, 0, len(n.Statements))
		for _, s := range n.Statements {
			stmts = append(stmts, ToMap(s))
		}
		return map[string]any{"node": "Block", "statements": stmts}
	case *WhileStatement:
		return map[string]any{
			"node":      "WhileStatement",
			"condition": ToMap(n.Condition),
			"body":      ToMap(n.Body),
		}
	}
	panic(fmt.Sprintf("ast: unexpected node %T", node))
}

// OutlineLine is one row of an indented tree rendering.
type OutlineLine struct {
	Depth  int
	Role   string // edge from the parent: "left", "body", "[0]", ...
	Type   string
	Detail string
}

// Outline flattens a tree into pre-order rows for indented display.
func Outline(root Node) []OutlineLine {
	var lines []OutlineLine
	var visit func(Node, int, string)
	visit = func(node Node, depth int, role string) {
		line := OutlineLine{Depth: depth, Role: role, Type: TypeName(node)}
		switch n := node.(type) {
		case *Literal:
			line.Detail = n.String() + " " + string(n.Kind)
			lines = append(lines, line)
		case *UnaryOp:
			line.Detail = n.Op.String()
			lines = append(lines, line)
			visit(n.Operand, depth+1, "operand")
		case *BinaryOp:
			line.Detail = n.Op.String()
			lines = append(lines, line)
			visit(n.Left, depth+1, "left")
			visit(n.Right, depth+1, "right")
		case *ExprStatement:
			lines = append(lines, line)
			visit(n.Expr, depth+1, "expr")
		case *Block:
			line.Detail = strconv.Itoa(len(n.Statements)) + " statements"
			lines = append(lines, line)
			for i, s := range n.Statements {
				visit(s, depth+1, "["+strconv.Itoa(i)+"]")
			}
		case *WhileStatement:
			lines = append(lines, line)
			visit(n.Condition, depth+1, "condition")
			visit(n.Body, depth+1, "body")
		}
	}
	if root != nil {
		visit(root, 0, "")
	}
	return lines
}
