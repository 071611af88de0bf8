package main

import (
	"fmt"
	"os"

	"whilec/pkg/ast"
	"whilec/pkg/lexer"
	"whilec/pkg/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/debug_parser '<code>' [expression|primary|statement]")
		os.Exit(1)
	}

	mode := parser.ModeExpression
	if len(os.Args) > 2 {
		m, err := parser.ParseMode(os.Args[2])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		mode = m
	}

	l := lexer.New(os.Args[1])
	p := parser.New(l)
	root, err := p.Parse(mode)

	if diags := l.Diagnostics(); len(diags) != 0 {
		fmt.Println("Lexer diagnostics:")
		for _, d := range diags {
			fmt.Printf("  %v\n", d)
		}
		fmt.Println()
	}

	if err != nil {
		fmt.Printf("Parser error:\n  %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("AST:\n%s\n\nTree:\n", root.String())
	for _, line := range ast.Outline(root) {
		fmt.Printf("%*s%s %s %s\n", line.Depth*2, "", line.Role, line.Type, line.Detail)
	}
}
