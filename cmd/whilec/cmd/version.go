package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"whilec/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		// Skips config loading from the root command.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "whilec %s\n", version.Version)
			fmt.Fprintf(out, "Build Date: %s\n", version.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", version.GitCommit)
		},
	}
}
