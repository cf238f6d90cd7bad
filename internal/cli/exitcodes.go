package cli

import (
	"errors"

	"github.com/yaklabco/regexmatch/internal/configloader"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
	"github.com/yaklabco/regexmatch/pkg/runner"
)

// Exit codes for regexmatch.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the check completed but found format or compile errors.
	ExitIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound is returned when a check finds problems in test documents.
var ErrIssuesFound = errors.New("issues found")

// ErrUnreadable is returned when a check could not read some files.
var ErrUnreadable = errors.New("files could not be read")

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("invalid usage")

// ExitCodeFromResult determines the exit code of a check run.
// Issues take precedence over unreadable files.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasIssues():
		return ExitIssues
	case result.HasErrors():
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrUnreadable),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
