package runner

import (
	"bytes"
	"strings"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/session"
)

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Markdown is set when the tests were read from fenced code blocks.
	Markdown bool

	// Content is the file text as read.
	Content []byte

	// Blocks are the parsed blocks, nil when the file failed to parse.
	Blocks []blocks.Block

	// Matches holds the results of every compiled block.
	Matches []session.BlockMatches

	// Diagnostics are the format and compile problems of the file.
	Diagnostics []session.Diagnostic

	// Error is set if the file could not be read or matched.
	Error error
}

// MatchCount returns the number of matches across all blocks.
func (o *FileOutcome) MatchCount() int {
	n := 0
	for _, bm := range o.Matches {
		n += len(bm.Results)
	}
	return n
}

// Line returns the 0-based line i of Content, or "" when out of range.
func (o *FileOutcome) Line(i int) string {
	if i < 0 {
		return ""
	}
	rest := o.Content
	for ; i > 0; i-- {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSuffix(string(rest), "\r")
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// BlocksTotal is the number of blocks across all files.
	BlocksTotal int

	// MatchesTotal is the number of matches across all files.
	MatchesTotal int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsByKind maps diagnostic kinds to counts.
	DiagnosticsByKind map[session.Kind]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{DiagnosticsByKind: make(map[session.Kind]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BlocksTotal += len(outcome.Blocks)
	r.Stats.MatchesTotal += outcome.MatchCount()
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range outcome.Diagnostics {
		r.Stats.DiagnosticsByKind[d.Kind]++
	}
}
