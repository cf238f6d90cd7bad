// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldBlocks   = "blocks"
	FieldPrevious = "previous"
	FieldRevision = "revision"
	FieldLine     = "line"
	FieldPattern  = "pattern"
	FieldMatches  = "matches"
	FieldTagged   = "tagged"

	// Binding fields.
	FieldSource  = "source"
	FieldLiteral = "literal"

	// Run fields.
	FieldJobs             = "jobs"
	FieldFormat           = "format"
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithErrors  = "files_with_errors"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
