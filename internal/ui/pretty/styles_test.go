package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmatch/internal/ui/pretty"
	"github.com/yaklabco/regexmatch/pkg/config"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true, config.DefaultColors())
	require.NotNil(t, styles)
	assert.Len(t, styles.Groups, len(config.DefaultColors().Groups))
}

func TestNewStyles_EmptyPaletteUsesDefaults(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true, config.ColorsConfig{})
	assert.Len(t, styles.Groups, 6)
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Match.Render(text), "No-color Match should not add formatting")
	assert.Equal(t, text, styles.Group(5).Render(text), "No-color groups should not add formatting")
}

func TestStyles_GroupCycles(t *testing.T) {
	t.Parallel()

	colors := config.DefaultColors()
	colors.Groups = []string{"#111111", "#222222"}
	styles := pretty.NewStyles(true, colors)

	assert.Equal(t, styles.Groups[0].GetBackground(), styles.Group(2).GetBackground())
	assert.Equal(t, styles.Groups[1].GetBackground(), styles.Group(3).GetBackground())
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

//nolint:paralleltest // Uses t.Setenv.
func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode behaves like auto")
}

//nolint:paralleltest // Uses t.Setenv.
func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "auto mode with NO_COLOR set should return false")
}
