package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"whilec/pkg/ast"
)

var (
	roleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	typeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func writeTree(w io.Writer, root ast.Node, format string, color bool) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.ToMap(root))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ToMap(root)); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, line := range ast.Outline(root) {
			fmt.Fprintln(w, renderLine(line, color))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderLine formats one outline row as "  role: Type detail".
func renderLine(line ast.OutlineLine, color bool) string {
	role, typ, detail := line.Role, line.Type, line.Detail
	if color {
		if role != "" {
			role = roleStyle.Render(role)
		}
		typ = typeStyle.Render(typ)
		if detail != "" {
			detail = detailStyle.Render(detail)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", line.Depth))
	if line.Role != "" {
		b.WriteString(role)
		b.WriteString(": ")
	}
	b.WriteString(typ)
	if line.Detail != "" {
		b.WriteString(" ")
		b.WriteString(detail)
	}
	return b.String()
}
