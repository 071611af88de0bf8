package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whilec/pkg/frontend"
)

const prompt = ">>> "

func newReplCmd(a *app) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively and echo the parenthesized tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.mode(mode)
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "whilec repl (%s mode), Ctrl-D to exit\n", m)

			for {
				fmt.Fprint(out, prompt)
				if !in.Scan() {
					fmt.Fprintln(out)
					return in.Err()
				}
				line := in.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}

				res, err := frontend.Parse(line, m, a.frontendOptions()...)
				for _, d := range res.Diagnostics {
					fmt.Fprintf(out, "warning: %v\n", d)
				}
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				fmt.Fprintln(out, res.Root.String())
			}
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "expression, primary or statement (default from config)")
	return cmd
}
