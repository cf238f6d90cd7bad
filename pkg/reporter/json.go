package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/runner"
	"github.com/yaklabco/regexmatch/pkg/session"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string               `json:"path"`
	Markdown    bool                 `json:"markdown,omitempty"`
	Blocks      []JSONBlock          `json:"blocks"`
	Diagnostics []session.Diagnostic `json:"diagnostics"`
	Error       string               `json:"error,omitempty"`
}

// JSONBlock represents one block and its matches.
type JSONBlock struct {
	Line      int               `json:"line"`
	Pattern   string            `json:"pattern"`
	Key       string            `json:"key"`
	Error     string            `json:"error,omitempty"`
	Sentinels []blocks.Sentinel `json:"sentinels"`
	Matches   []matcher.Result  `json:"matches"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int                  `json:"filesChecked"`
	FilesWithIssues int                  `json:"filesWithIssues"`
	FilesErrored    int                  `json:"filesErrored"`
	Blocks          int                  `json:"blocks"`
	Matches         int                  `json:"matches"`
	TotalIssues     int                  `json:"totalIssues"`
	ByKind          map[session.Kind]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByKind: make(map[session.Kind]int)},
	}

	if result == nil {
		return output
	}

	for i := range result.Files {
		file := &result.Files[i]

		fileResult := JSONFileResult{
			Path:        relativePath(r.opts.WorkingDir, file.Path),
			Markdown:    file.Markdown,
			Blocks:      buildBlocks(file),
			Diagnostics: file.Diagnostics,
		}
		if fileResult.Diagnostics == nil {
			fileResult.Diagnostics = []session.Diagnostic{}
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		for _, d := range file.Diagnostics {
			output.Summary.ByKind[d.Kind]++
		}
		output.Summary.TotalIssues += len(file.Diagnostics)
		if len(file.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		output.Summary.Blocks += len(fileResult.Blocks)
		output.Summary.Matches += file.MatchCount()

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

func buildBlocks(file *runner.FileOutcome) []JSONBlock {
	results := make(map[int][]matcher.Result, len(file.Matches))
	for _, bm := range file.Matches {
		results[bm.Index] = bm.Results
	}

	out := make([]JSONBlock, 0, len(file.Blocks))
	for i, b := range file.Blocks {
		meta := b.Info()
		jb := JSONBlock{
			Line:      meta.PatternLine,
			Pattern:   meta.RawPattern,
			Key:       b.Key(),
			Sentinels: []blocks.Sentinel{meta.Open, meta.Close},
			Matches:   results[i],
		}
		if jb.Matches == nil {
			jb.Matches = []matcher.Result{}
		}
		if eb, ok := b.(*blocks.ErroredBlock); ok {
			jb.Error = eb.Err.Message
		}
		out = append(out, jb)
	}
	return out
}
