package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"whilec/internal/config"
	"whilec/internal/logging"
	"whilec/pkg/frontend"
	"whilec/pkg/parser"
)

const defaultConfigFile = "whilec.toml"

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "whilec",
		Short: "Tokenizer and parser for a tiny while language",
		Long: `whilec turns source text into tokens or an abstract syntax tree.

Expressions use || && == != < > <= >= + - * / % and unary - and !.
Statement mode accepts a single loop:

  while (x < 5) { (x + 1); (y * 2); }`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newInspectCmd(a),
		newReplCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(stderr io.Writer) error {
	var err error
	switch {
	case a.cfgFile != "":
		a.cfg, err = config.Load(a.cfgFile)
	case fileExists(defaultConfigFile):
		a.cfg, err = config.Load(defaultConfigFile)
	default:
		a.cfg = config.Default()
	}
	if err != nil {
		return err
	}

	if err := a.cfg.LoadEnv(".env"); err != nil {
		return err
	}
	if a.verbose {
		a.cfg.Log.Level = "debug"
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger = logging.New(a.cfg.Log, stderr)
	return nil
}

func (a *app) frontendOptions() []frontend.Option {
	return []frontend.Option{
		frontend.WithLogger(a.logger),
		frontend.WithMaxDepth(a.cfg.Parser.MaxDepth),
		frontend.WithMaxInputLength(a.cfg.Parser.MaxInputLength),
	}
}

// mode resolves a --mode flag value, falling back to the configured mode.
func (a *app) mode(flag string) (parser.Mode, error) {
	if flag == "" {
		flag = a.cfg.Parser.Mode
	}
	return parser.ParseMode(flag)
}

// readSource takes the source from --file when set, otherwise from the
// single positional argument.
func readSource(args []string, file string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", errors.New("pass either --file or a source argument, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) != 1 {
		return "", errors.New("expected exactly one source argument")
	}
	return args[0], nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func printDiagnostics(w io.Writer, diags []error) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %v\n", d)
	}
}
