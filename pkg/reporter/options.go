package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/regexmatch/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Colors is the highlight palette.
	Colors config.ColorsConfig

	// ShowContext includes the offending source line under diagnostics.
	ShowContext bool

	// ShowMatches prints every block with its matches highlighted, not only
	// the problems.
	ShowMatches bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		Colors:      config.DefaultColors(),
		ShowContext: true,
		ShowSummary: true,
	}
}
