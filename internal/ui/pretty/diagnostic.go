package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/regexmatch/pkg/session"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Only the first line of the message is shown inline; the rest is indented
// underneath. sourceLine is printed as context when non-empty.
func (s *Styles) FormatDiagnostic(path string, diag session.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), diag.Line+1)

	first, rest, _ := strings.Cut(diag.Message, "\n")

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(first),
		s.Kind.Render("("+string(diag.Kind)+")"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine))
	}

	if rest = strings.TrimSpace(rest); rest != "" {
		for _, line := range strings.Split(rest, "\n") {
			builder.WriteString("    " + s.Dim.Render(line) + "\n")
		}
	}

	return builder.String()
}

// FormatSourceContext formats the offending line with a caret under its
// first character.
func (s *Styles) FormatSourceContext(line string) string {
	const indent = "        "

	trimmed := strings.TrimLeft(line, " \t")
	padding := strings.Repeat(" ", len(line)-len(trimmed))

	return indent + s.SourceLine.Render(line) + "\n" +
		indent + padding + s.Caret.Render("^") + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, blockCount, issueCount int) string {
	header := s.FilePath.Render(path)

	var parts []string
	parts = append(parts, plural(blockCount, "block", "blocks"))
	if issueCount > 0 {
		parts = append(parts, plural(issueCount, "issue", "issues"))
	}

	return header + s.Dim.Render(" ("+strings.Join(parts, ", ")+")")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
