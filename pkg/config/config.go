// Package config defines core configuration types for regexmatch.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// OutputFormat specifies how check results are printed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions of standalone regex test documents.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultExtensions = []string{".rgx", ".regex"}

// DefaultMarkdownExtensions are the extensions scanned for embedded tests.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultMarkdownExtensions = []string{".md", ".markdown"}

// DefaultMarkdownLanguages are the fenced code block info strings that hold tests.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultMarkdownLanguages = []string{"regex-test", "regexmatch"}

// DefaultDocument is written to new regex test files.
const DefaultDocument = "/[0-9]+a+/gm\n---\n123aaa\nb2507ab\n2024aa\n---"

// PlaceholderCorpus is the corpus of a block added for a source literal.
const PlaceholderCorpus = "Type the test string here..."

// MarkdownConfig controls tests embedded in Markdown files.
type MarkdownConfig struct {
	// Enabled turns on scanning of Markdown files. Nil means the default (on).
	Enabled *bool `yaml:"enabled,omitempty"`

	// Languages lists the fence info strings that mark a test block.
	// Other linguist aliases of a listed language also match.
	Languages []string `yaml:"languages,omitempty"`

	// Extensions lists the Markdown file extensions.
	Extensions []string `yaml:"extensions,omitempty"`
}

// IsEnabled reports whether Markdown scanning is on.
func (m MarkdownConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// ColorsConfig holds highlight colors as hex strings.
type ColorsConfig struct {
	// Match is the background of whole matches.
	Match string `yaml:"match,omitempty"`

	// Delimiter is the foreground of --- lines.
	Delimiter string `yaml:"delimiter,omitempty"`

	// Groups are the backgrounds of capture groups, cycled in order.
	Groups []string `yaml:"groups,omitempty"`
}

// DefaultColors returns the built-in highlight palette.
func DefaultColors() ColorsConfig {
	return ColorsConfig{
		Match:     "#FFA500",
		Delimiter: "#BD93F9",
		Groups: []string{
			"#07925C",
			"#3164CA",
			"#6E25B7",
			"#D339DF",
			"#006B6B",
			"#B82F2F",
		},
	}
}

// Config is the root configuration structure.
type Config struct {
	// Extensions lists the extensions of standalone test documents.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Markdown controls tests embedded in Markdown.
	Markdown MarkdownConfig `yaml:"markdown"`

	// Colors controls match highlighting.
	Colors ColorsConfig `yaml:"colors"`

	// Backups keeps a copy of a source file before a pattern is written back.
	Backups bool `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// ShowMatches prints every match, not only problems.
	ShowMatches bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		Markdown: MarkdownConfig{
			Languages:  append([]string(nil), DefaultMarkdownLanguages...),
			Extensions: append([]string(nil), DefaultMarkdownExtensions...),
		},
		Colors: DefaultColors(),
		Format: FormatText,
	}
}

// AllExtensions returns every extension to scan, Markdown included when enabled.
func (c *Config) AllExtensions() []string {
	exts := append([]string(nil), c.Extensions...)
	if c.Markdown.IsEnabled() {
		exts = append(exts, c.Markdown.Extensions...)
	}
	return exts
}
