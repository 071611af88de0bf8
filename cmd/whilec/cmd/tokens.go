package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"whilec/pkg/frontend"
)

func newTokensCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tokens [source]",
		Short: "Print the token stream",
		Example: `  whilec tokens "x <= 10 && y"
  whilec tokens --file loop.w`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, file)
			if err != nil {
				return err
			}

			toks, diags := frontend.Tokenize(src, a.frontendOptions()...)
			out := cmd.OutOrStdout()
			for _, tok := range toks {
				fmt.Fprintf(out, "%-10s %-20q line %d\n", tok.Type, tok.Literal, tok.Line)
			}
			printDiagnostics(cmd.ErrOrStderr(), diags)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read source from a file")
	return cmd
}
