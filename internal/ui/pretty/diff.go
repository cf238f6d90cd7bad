package pretty

import (
	"strings"

	"github.com/yaklabco/regexmatch/pkg/fix"
)

// FormatDiff renders a unified diff with added and removed lines colored.
func (s *Styles) FormatDiff(diff *fix.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		builder.WriteString(s.diffLine(line) + "\n")
	}
	return builder.String()
}

func (s *Styles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return s.Bold.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}
