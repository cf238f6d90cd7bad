package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/regexmatch/internal/ui/pretty"
	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/session"
)

func TestFormatDiagnostic_Compile(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())
	diag := session.Diagnostic{Line: 6, Message: "missing closing )", Kind: session.KindCompile}

	result := styles.FormatDiagnostic("test.rgx", diag, "")

	assert.Equal(t, "  test.rgx:7  error  missing closing )  (compile)\n", result)
}

func TestFormatDiagnostic_FormatMessageIsIndented(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())
	diag := session.Diagnostic{Line: 0, Message: blocks.FormatMessage, Kind: session.KindFormat}

	result := styles.FormatDiagnostic("doc.rgx", diag, "---")
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")

	assert.Contains(t, lines[0], "doc.rgx:1")
	assert.Contains(t, lines[0], "Parsing error")
	assert.Contains(t, lines[0], "(format)")
	assert.Equal(t, "        ---", lines[1])
	assert.Equal(t, "        ^", lines[2])
	assert.Contains(t, result, "    Expected format:")
	assert.Contains(t, result, "    /regex/[flags]")
}

func TestFormatSourceContext_Indented(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())
	result := styles.FormatSourceContext("  /a/")

	assert.Equal(t, "          /a/\n          ^\n", result)
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())

	assert.Equal(t, "a.rgx (1 block)", styles.FormatFileHeader("a.rgx", 1, 0))
	assert.Equal(t, "a.rgx (3 blocks, 2 issues)", styles.FormatFileHeader("a.rgx", 3, 2))
}
