package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"whilec/pkg/ast"
	"whilec/pkg/frontend"
)

func newInspectCmd(a *app) *cobra.Command {
	var file, mode string

	cmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "Summarize node types, operators and identifiers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, file)
			if err != nil {
				return err
			}
			m, err := a.mode(mode)
			if err != nil {
				return err
			}

			res, err := frontend.Parse(src, m, a.frontendOptions()...)
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
			if err != nil {
				return err
			}
			printInsights(cmd.OutOrStdout(), ast.Inspect(res.Root))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read source from a file")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "expression, primary or statement (default from config)")
	return cmd
}

func printInsights(w io.Writer, in ast.Insights) {
	fmt.Fprintf(w, "Nodes (%d)\n", total(in.Nodes))
	for _, name := range sortedKeys(in.Nodes) {
		fmt.Fprintf(w, "  · %-15s %d\n", name, in.Nodes[name])
	}

	fmt.Fprintf(w, "Operators (%d)\n", total(in.Operators))
	if len(in.Operators) == 0 {
		fmt.Fprintln(w, "  · No operators.")
	}
	for _, op := range sortedKeys(in.Operators) {
		fmt.Fprintf(w, "  · %-15s %d\n", op, in.Operators[op])
	}

	fmt.Fprintf(w, "Identifiers (%d)\n", len(in.Identifiers))
	if len(in.Identifiers) > 0 {
		fmt.Fprintf(w, "  · %s\n", strings.Join(in.Identifiers, ", "))
	}

	fmt.Fprintf(w, "Depth %d\n", in.MaxDepth)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
