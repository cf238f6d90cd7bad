package pretty

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/runner"
	"github.com/yaklabco/regexmatch/pkg/session"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 12
	minLineWidth     = 4
	minPatternWidth  = 16
	minMatchesWidth  = 7
	maxPatternWidth  = 48
	heavySeparator   = "="
	lightSeparator   = "-"
	statusOK         = "ok"
	statusNoMatch    = "no match"
	ellipsis         = "..."
	defaultTermWidth = 100
)

// TableRow is one block in the block table.
type TableRow struct {
	File    string
	Line    int
	Pattern string
	Matches int
	Status  string
	Failed  bool
}

// TableFormatter formats runner results as one row per block.
type TableFormatter struct {
	styles     *Styles
	workingDir string
	termWidth  int
}

// NewTableFormatter creates a new table formatter. Paths are shown relative
// to workingDir when it is set; separators never exceed termWidth.
func NewTableFormatter(styles *Styles, workingDir string, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, workingDir: workingDir, termWidth: termWidth}
}

type columnWidths struct {
	file, line, pattern, matches int
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	groups := t.collectRows(result)
	if len(groups) == 0 {
		return ""
	}

	widths := calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatRow(widths, "FILE", "LINE", "PATTERN", "MATCHES", "STATUS", t.styles.TableHeader))
	builder.WriteString(t.separator(widths, heavySeparator))

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.separator(widths, lightSeparator))
		}
		for _, row := range group {
			statusStyle := t.styles.Success
			if row.Failed {
				statusStyle = t.styles.Error
			}
			builder.WriteString(t.formatRow(widths,
				row.File,
				strconv.Itoa(row.Line),
				truncate(row.Pattern, maxPatternWidth),
				strconv.Itoa(row.Matches),
				statusStyle.Render(row.Status),
				lipgloss.NewStyle(),
			))
		}
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	return builder.String()
}

func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		path := t.displayPath(file.Path)

		if file.Error != nil && len(file.Blocks) == 0 {
			groups = append(groups, []TableRow{{File: path, Status: file.Error.Error(), Failed: true}})
			continue
		}

		counts := make(map[int]int, len(file.Matches))
		for _, bm := range file.Matches {
			counts[bm.Index] = len(bm.Results)
		}

		var rows []TableRow
		for _, d := range file.Diagnostics {
			if d.Kind == session.KindFormat {
				rows = append(rows, TableRow{File: path, Line: d.Line + 1, Status: "format error", Failed: true})
			}
		}

		for i, b := range file.Blocks {
			meta := b.Info()
			row := TableRow{
				File:    path,
				Line:    meta.PatternLine + 1,
				Pattern: meta.RawPattern,
				Matches: counts[i],
				Status:  statusOK,
			}
			switch eb := b.(type) {
			case *blocks.ErroredBlock:
				row.Status = firstLine(eb.Err.Message)
				row.Failed = true
			case *blocks.CompiledBlock:
				if row.Matches == 0 {
					row.Status = statusNoMatch
				}
			}
			rows = append(rows, row)
		}

		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}

	return groups
}

func (t *TableFormatter) displayPath(path string) string {
	if t.workingDir == "" {
		return path
	}
	if rel, err := filepath.Rel(t.workingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		line:    minLineWidth,
		pattern: minPatternWidth,
		matches: minMatchesWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, lipgloss.Width(row.File))
			widths.line = max(widths.line, len(strconv.Itoa(row.Line)))
			widths.pattern = max(widths.pattern, min(lipgloss.Width(row.Pattern), maxPatternWidth))
		}
	}

	return widths
}

func (t *TableFormatter) formatRow(w columnWidths, file, line, pat, matches, status string, style lipgloss.Style) string {
	gap := strings.Repeat(" ", tablePadding)
	return style.Render(pad(file, w.file)) + gap +
		style.Render(padLeft(line, w.line)) + gap +
		style.Render(pad(pat, w.pattern)) + gap +
		style.Render(padLeft(matches, w.matches)) + gap +
		style.Render(status) + "\n"
}

func (t *TableFormatter) separator(w columnWidths, char string) string {
	total := w.file + w.line + w.pattern + w.matches + 4*tablePadding + len("STATUS")
	total = min(max(total, minFileWidth), t.termWidth)
	return t.styles.TableSeparator.Render(strings.Repeat(char, total)) + "\n"
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-len(ellipsis)]) + ellipsis
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
