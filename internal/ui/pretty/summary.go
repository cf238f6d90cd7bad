package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/regexmatch/pkg/runner"
	"github.com/yaklabco/regexmatch/pkg/session"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 issues (1 format, 1 compile) in 2 files, 7 matches in 3 blocks".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	matches := s.Dim.Render(fmt.Sprintf("%s in %s",
		plural(stats.MatchesTotal, "match", "matches"),
		plural(stats.BlocksTotal, "block", "blocks"),
	))

	var errored string
	if stats.FilesErrored > 0 {
		errored = ", " + s.Failure.Render(plural(stats.FilesErrored, "file", "files")+" unreadable")
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files"))) +
			", " + matches + errored + "\n"
	}

	issues := plural(stats.DiagnosticsTotal, "issue", "issues")

	var kinds []string
	if n := stats.DiagnosticsByKind[session.KindFormat]; n > 0 {
		kinds = append(kinds, s.Error.Render(fmt.Sprintf("%d format", n)))
	}
	if n := stats.DiagnosticsByKind[session.KindCompile]; n > 0 {
		kinds = append(kinds, s.Error.Render(fmt.Sprintf("%d compile", n)))
	}
	if len(kinds) > 0 {
		issues += " (" + strings.Join(kinds, ", ") + ")"
	}

	return fmt.Sprintf("%s in %s, %s%s\n",
		issues,
		plural(stats.FilesWithIssues, "file", "files"),
		matches,
		errored,
	)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Blocks", s.SummaryValue.Render(strconv.Itoa(stats.BlocksTotal)))
	row("Matches", s.SummaryValue.Render(strconv.Itoa(stats.MatchesTotal)))
	row("Issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))

	builder.WriteString("\n")
	if stats.DiagnosticsTotal > 0 || stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Check failed"))
	} else {
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
