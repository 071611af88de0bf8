package cmd

import (
	"github.com/spf13/cobra"

	"whilec/pkg/frontend"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		file   string
		mode   string
		format string
		color  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [source]",
		Short: "Parse source and print the syntax tree",
		Example: `  whilec parse "1 + 2 * 3"
  whilec parse --mode statement "while (i < 3) { (i + 1); }"
  whilec parse --format yaml --file loop.w`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args, file)
			if err != nil {
				return err
			}
			m, err := a.mode(mode)
			if err != nil {
				return err
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("color") {
				color = a.cfg.Output.Color
			}

			res, err := frontend.Parse(src, m, a.frontendOptions()...)
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), res.Root, format, color)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read source from a file")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "expression, primary or statement (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "text, json or yaml (default from config)")
	cmd.Flags().BoolVar(&color, "color", false, "colorize text output")
	return cmd
}
