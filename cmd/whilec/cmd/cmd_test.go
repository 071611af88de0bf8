package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"whilec/pkg/frontend"
	"whilec/pkg/parser"
)

// run executes the root command in an empty directory so no local config
// or .env file leaks into the result.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestTokensCommand(t *testing.T) {
	out, stderr, err := run(t, "", "tokens", "x <= 1 @")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 token lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "<=") || !strings.HasPrefix(lines[3], "EOF") {
		t.Errorf("unexpected token lines:\n%s", out)
	}
	if !strings.Contains(stderr, "illegal character '@'") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr)
	}
}

func TestParseCommandText(t *testing.T) {
	out, _, err := run(t, "", "parse", "1 + x")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "BinaryOp +\n  left: Literal 1 INT\n  right: Literal x ID\n"
	if out != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, out)
	}
}

func TestParseCommandJSON(t *testing.T) {
	out, _, err := run(t, "", "parse", "--mode", "statement", "--format", "json",
		"while (i < 3) { (i + 1); }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if tree["node"] != "WhileStatement" {
		t.Errorf("root node = %v", tree["node"])
	}
	body, ok := tree["body"].(map[string]any)
	if !ok || body["node"] != "Block" {
		t.Errorf("body = %v", tree["body"])
	}
}

func TestParseCommandYAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.w")
	if err := os.WriteFile(path, []byte("-(a * 2.5)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "parse", "--format", "yaml", "--file", path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if tree["node"] != "UnaryOp" || tree["op"] != "-" {
		t.Errorf("unexpected tree: %v", tree)
	}
	operand := tree["operand"].(map[string]any)
	right := operand["right"].(map[string]any)
	if right["value"] != 2.5 {
		t.Errorf("float literal = %v", right["value"])
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{[]string{"parse", "1 +"}, "unexpected EOF"},
		{[]string{"parse", "--mode", "program", "x"}, "unknown parse mode"},
		{[]string{"parse", "--format", "xml", "x"}, "unknown output format"},
		{[]string{"parse"}, "expected exactly one source argument"},
		{[]string{"parse", "--file", "missing.w", "x"}, "not both"},
	}

	for _, tt := range tests {
		_, _, err := run(t, "", tt.args...)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%v: error = %q, want it to contain %q", tt.args, err, tt.wantErr)
		}
	}
}

func TestModeFromEnvironment(t *testing.T) {
	t.Setenv("WHILEC_MODE", "statement")

	out, _, err := run(t, "", "parse", "while (x) x;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.HasPrefix(out, "WhileStatement") {
		t.Errorf("expected statement mode from environment, got:\n%s", out)
	}
}

func TestInspectCommand(t *testing.T) {
	out, _, err := run(t, "", "inspect", "--mode", "statement",
		"while (x < 5) { (x + 1); (-y * 2); }")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{
		"Operators (4)",
		"unary -",
		"Identifiers (2)",
		"x, y",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestReplCommand(t *testing.T) {
	out, _, err := run(t, "1 + 2 * 3\n\n(1\n", "repl")
	if err != nil {
		t.Fatalf("repl failed: %v", err)
	}

	if !strings.Contains(out, "(1 + (2 * 3))") {
		t.Errorf("repl did not echo the tree:\n%s", out)
	}
	if !strings.Contains(out, "error: ") {
		t.Errorf("repl did not report the syntax error:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "whilec ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRenderLineColor(t *testing.T) {
	res, err := frontend.Parse("a", parser.ModeExpression)
	if err != nil {
		t.Fatal(err)
	}

	var plain bytes.Buffer
	if err := writeTree(&plain, res.Root, "text", false); err != nil {
		t.Fatal(err)
	}
	if plain.String() != "Literal a ID\n" {
		t.Errorf("plain = %q", plain.String())
	}

	var colored bytes.Buffer
	if err := writeTree(&colored, res.Root, "text", true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "Literal") || !strings.Contains(colored.String(), "a ID") {
		t.Errorf("colored = %q", colored.String())
	}
}
