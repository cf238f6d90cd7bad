package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/regexmatch/internal/ui/pretty"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled, opts.Colors),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for i := range result.Files {
		total += r.reportFile(&result.Files[i])
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file *runner.FileOutcome) int {
	path := relativePath(r.opts.WorkingDir, file.Path)

	if file.Error != nil && len(file.Blocks) == 0 {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if len(file.Diagnostics) == 0 && !r.opts.ShowMatches {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Blocks), len(file.Diagnostics)))

	for _, diag := range file.Diagnostics {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = file.Line(diag.Line)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, sourceLine))
	}

	if r.opts.ShowMatches {
		r.reportMatches(file)
	}

	fmt.Fprintln(r.bw)
	return len(file.Diagnostics)
}

func (r *TextReporter) reportMatches(file *runner.FileOutcome) {
	results := make(map[int][]matcher.Result, len(file.Matches))
	for _, bm := range file.Matches {
		results[bm.Index] = bm.Results
	}

	for i, b := range file.Blocks {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.HighlightBlock(b, results[i]))
		for j, res := range results[i] {
			fmt.Fprint(r.bw, r.styles.FormatMatch(j, res))
		}
	}
}
