// Package frontend runs the tokenizer and parser as one call.
//
// Tokenize and Parse build fresh lexer and parser instances on every call,
// so they are safe to call from any number of goroutines.
package frontend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"whilec/pkg/ast"
	"whilec/pkg/lexer"
	"whilec/pkg/parser"
	"whilec/pkg/token"
)

// DefaultMaxInputLength is the largest source accepted by Parse, in bytes.
const DefaultMaxInputLength = 64 << 10

// ErrInputTooLong is returned before tokenizing when the source exceeds the
// configured limit.
var ErrInputTooLong = errors.New("input too long")

// Result describes one parse run. Root is nil when the parse failed;
// Diagnostics holds the lexer's illegal-character reports either way.
type Result struct {
	ID          uuid.UUID
	Mode        parser.Mode
	Root        ast.Node
	Diagnostics []error
}

// DiagnosticMessages renders Diagnostics as strings.
func (r *Result) DiagnosticMessages() []string {
	msgs := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		msgs = append(msgs, d.Error())
	}
	return msgs
}

type options struct {
	logger         *slog.Logger
	maxInputLength int
	maxDepth       int
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMaxInputLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInputLength = n
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxInputLength: DefaultMaxInputLength,
		maxDepth:       parser.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tokenize returns every token of source, ending with EOF, plus the
// diagnostics for skipped characters.
func Tokenize(source string, opts ...Option) ([]token.Token, []error) {
	o := buildOptions(opts)
	return lexer.Tokenize(source, lexer.WithLogger(o.logger))
}

// Parse tokenizes and parses source with the root rule selected by mode.
// A syntax error is returned as *parser.SyntaxError together with a Result
// that has no Root.
func Parse(source string, mode parser.Mode, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	res := &Result{ID: uuid.New(), Mode: mode}
	logger := o.logger.With("id", res.ID.String(), "mode", mode.String())

	if len(source) > o.maxInputLength {
		err := fmt.Errorf("%w: %d > %d bytes", ErrInputTooLong, len(source), o.maxInputLength)
		logger.Warn("parse failed", "error", err.Error())
		return res, err
	}

	logger.Debug("parse started", "length", len(source))

	l := lexer.New(source, lexer.WithLogger(logger))
	p := parser.New(l, parser.WithLogger(logger), parser.WithMaxDepth(o.maxDepth))

	root, err := p.Parse(mode)
	res.Diagnostics = l.Diagnostics()
	if err != nil {
		logger.Warn("parse failed",
			"error", err.Error(),
			"diagnostics", len(res.Diagnostics),
		)
		return res, err
	}

	res.Root = root
	logger.Debug("parse finished", "diagnostics", len(res.Diagnostics))
	return res, nil
}
