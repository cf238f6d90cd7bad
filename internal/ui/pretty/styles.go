// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/regexmatch/pkg/config"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Diagnostic styles
	Error    lipgloss.Style
	Warning  lipgloss.Style
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Message  lipgloss.Style

	// Source context
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Test document highlighting
	Pattern   lipgloss.Style
	Delimiter lipgloss.Style
	Match     lipgloss.Style
	Groups    []lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Diff styles
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffContext lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates Styles with the given color mode and highlight palette.
// Empty palette entries fall back to the defaults.
func NewStyles(colorEnabled bool, colors config.ColorsConfig) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles(withDefaults(colors))
}

func withDefaults(colors config.ColorsConfig) config.ColorsConfig {
	def := config.DefaultColors()
	if colors.Match == "" {
		colors.Match = def.Match
	}
	if colors.Delimiter == "" {
		colors.Delimiter = def.Delimiter
	}
	if len(colors.Groups) == 0 {
		colors.Groups = def.Groups
	}
	return colors
}

func newColorStyles(colors config.ColorsConfig) *Styles {
	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	groups := make([]lipgloss.Style, len(colors.Groups))
	for i, c := range colors.Groups {
		groups[i] = highlight.Background(lipgloss.Color(c))
	}

	return &Styles{
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:  lipgloss.NewStyle(),

		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Pattern:   lipgloss.NewStyle().Bold(true),
		Delimiter: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Delimiter)),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color(colors.Match)),
		Groups:    groups,

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffContext: lipgloss.NewStyle(),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		FilePath:       plain,
		Location:       plain,
		Kind:           plain,
		Message:        plain,
		SourceLine:     plain,
		Caret:          plain,
		Pattern:        plain,
		Delimiter:      plain,
		Match:          plain,
		Groups:         []lipgloss.Style{plain},
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffHunk:       plain,
		DiffContext:    plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// Group returns the style of the capture group at index i, cycling
// through the palette.
func (s *Styles) Group(i int) lipgloss.Style {
	if len(s.Groups) == 0 {
		return s.Match
	}
	return s.Groups[i%len(s.Groups)]
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
