package ast

import "fmt"

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *Literal:
		return nil
	case *UnaryOp:
		return []Node{n.Operand}
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	case *ExprStatement:
		return []Node{n.Expr}
	case *Block:
		children := make([]Node, 0, len(n.Statements))
		for _, s := range n.Statements {
			children = append(children, s)
		}
		return children
	case *WhileStatement:
		return []Node{n.Condition, n.Body}
	}
	panic(fmt.Sprintf("ast: unexpected node %T", node))
}

// Walk calls visitor for node and then for every descendant, depth first.
func Walk(node Node, visitor func(Node)) {
	if node == nil {
		return
	}

	visitor(node)

	for _, child := range Children(node) {
		Walk(child, visitor)
	}
}

// Insights summarizes a tree: how many nodes of each type it has, which
// identifiers it reads and how deep the tree goes.
type Insights struct {
	Nodes       map[string]int
	Operators   map[string]int
	Identifiers []string
	MaxDepth    int
}

func Inspect(root Node) Insights {
	insights := Insights{
		Nodes:     map[string]int{},
		Operators: map[string]int{},
	}
	seen := map[string]bool{}

	var visit func(Node, int)
	visit = func(node Node, depth int) {
		if depth > insights.MaxDepth {
			insights.MaxDepth = depth
		}
		insights.Nodes[TypeName(node)]++
		switch n := node.(type) {
		case *Literal:
			if n.Kind == KindID && !seen[n.Name] {
				seen[n.Name] = true
				insights.Identifiers = append(insights.Identifiers, n.Name)
			}
		case *UnaryOp:
			insights.Operators["unary "+n.Op.String()]++
		case *BinaryOp:
			insights.Operators[n.Op.String()]++
		}
		for _, child := range Children(node) {
			visit(child, depth+1)
		}
	}
	if root != nil {
		visit(root, 1)
	}
	return insights
}

// TypeName is the node's type without the package qualifier.
func TypeName(node Node) string {
	switch node.(type) {
	case *Literal:
		return "Literal"
	case *UnaryOp:
		return "UnaryOp"
	case *BinaryOp:
		return "BinaryOp"
	case *ExprStatement:
		return "ExprStatement"
	case *Block:
		return "Block"
	case *WhileStatement:
		return "WhileStatement"
	}
	panic(fmt.Sprintf("ast: unexpected node %T", node))
}

// Equal reports whether a and b have the same shape, operators and literal
// values. Tokens are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Kind == y.Kind && x.Int == y.Int && x.Float == y.Float && x.Name == y.Name
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *ExprStatement:
		y, ok := b.(*ExprStatement)
		return ok && Equal(x.Expr, y.Expr)
	case *Block:
		y, ok := b.(*Block)
		if !ok || len(x.Statements) != len(y.Statements) {
			return false
		}
		for i := range x.Statements {
			if !Equal(x.Statements[i], y.Statements[i]) {
				return false
			}
		}
		return true
	case *WhileStatement:
		y, ok := b.(*WhileStatement)
		return ok && Equal(x.Condition, y.Condition) && Equal(x.Body, y.Body)
	}
	panic(fmt.Sprintf("ast: unexpected node %T", a))
}
