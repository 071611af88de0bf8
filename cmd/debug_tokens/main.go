package main

import (
	"fmt"
	"os"

	"whilec/pkg/lexer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/debug_tokens '<code>'")
		os.Exit(1)
	}

	input := os.Args[1]
	toks, diags := lexer.Tokenize(input)

	fmt.Printf("Input: %q\n\n", input)
	fmt.Println("Tokens:")
	fmt.Println("-------")
	for _, tok := range toks {
		fmt.Printf("%-10s %-20s (line %d)\n", tok.Type, fmt.Sprintf("'%s'", tok.Literal), tok.Line)
	}

	if len(diags) != 0 {
		fmt.Println("\nDiagnostics:")
		for _, d := range diags {
			fmt.Printf("  %v\n", d)
		}
	}
}
