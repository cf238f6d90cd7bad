package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmatch/internal/cli"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/reporter"
	"github.com/yaklabco/regexmatch/pkg/session"
)

const brokenDoc = config.DefaultDocument + "\n/(/\n---\nx\n---\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--color=never"))

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func TestIntegration_CheckClean(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", config.DefaultDocument+"\n")

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
	assert.Contains(t, out, "3 matches in 1 block")
}

func TestIntegration_CheckCompileError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", brokenDoc)

	out, err := execute(t, "check", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCodeFromError(err))
	assert.Contains(t, out, "ids.rgx:7")
	assert.Contains(t, out, "(compile)")
	assert.Contains(t, out, "1 issue (1 compile)")
}

func TestIntegration_CheckFormatError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", "/a/\n---\nabc\n")

	out, err := execute(t, "check", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "ids.rgx:2")
	assert.Contains(t, out, "(format)")
}

func TestIntegration_CheckShowMatches(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", config.DefaultDocument+"\n")

	out, err := execute(t, "check", "--show-matches", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/[0-9]+a+/gm\n---\n123aaa\nb2507ab\n2024aa\n---\n")
	assert.Contains(t, out, `#1 [17,23) "123aaa"`)
	assert.Contains(t, out, `#2 [25,30) "2507a"`)
	assert.Contains(t, out, `#3 [32,38) "2024aa"`)
}

func TestIntegration_CheckJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", brokenDoc)

	cmd := cli.NewRootCommand(testInfo())
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", "--format", "json", path})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Blocks, 2)
	assert.Len(t, out.Files[0].Blocks[0].Matches, 3)
	assert.NotEmpty(t, out.Files[0].Blocks[1].Error)
	assert.Equal(t, 1, out.Summary.ByKind[session.KindCompile])
}

func TestIntegration_CheckMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# Ids\n\n```regex-test\n/(/\n---\nx\n---\n```\n")

	out, err := execute(t, "check", dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "README.md:4")

	out, err = execute(t, "check", "--no-markdown", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No files to check.")
}

func TestIntegration_CheckInvalidFormat(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", config.DefaultDocument)

	_, err := execute(t, "check", "--format", "sarif", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_CheckConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "ids.test", brokenDoc)
	cfgFile := writeFile(t, dir, "custom.yml", "extensions:\n  - .test\n")

	out, err := execute(t, "check", "--config", cfgFile, dir)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "ids.test")
}

func TestIntegration_WatchOnce(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", config.DefaultDocument+"\n")

	out, err := execute(t, "watch", "--once", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 block)")
	assert.Contains(t, out, `#1 [17,23) "123aaa"`)
	assert.NotContains(t, out, "bound to")
}

func TestIntegration_WatchOnceFormatError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", "---\n")

	out, err := execute(t, "watch", "--once", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "ids.rgx:1")
	assert.Contains(t, out, "(format)")
}

func TestIntegration_WatchBind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "ids.rgx", config.DefaultDocument+"\n")
	src := writeFile(t, dir, "main.go", "package main\n\nvar ids = `/[0-9]+a+/gm`\n")

	out, err := execute(t, "watch", "--once", "--bind", src, path)
	require.NoError(t, err)
	assert.Contains(t, out, "bound to "+src+":3:12")
	assert.NotContains(t, out, "changed")
}

func TestIntegration_WatchBindNewLiteral(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "ids.rgx", config.DefaultDocument+"\n")
	src := writeFile(t, dir, "main.go", "package main\n\nvar words = `/[a-z]+/g`\n")

	out, err := execute(t, "watch", "--once", "--bind", src, "--literal", "/[a-z]+/g", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 blocks)")
	assert.Contains(t, out, "bound to "+src+":3:14")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(got), "\n\n/[a-z]+/g\n---\n"+config.PlaceholderCorpus+"\n---"))
}

func TestIntegration_WatchBindMissingLiteral(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "ids.rgx", config.DefaultDocument+"\n")
	src := writeFile(t, dir, "main.go", "package main\n")

	_, err := execute(t, "watch", "--once", "--bind", src, path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCodeFromError(err))
}

func TestIntegration_WatchLiteralWithoutBind(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ids.rgx", config.DefaultDocument)

	_, err := execute(t, "watch", "--once", "--literal", "/a/", path)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_New(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ids.rgx")

	_, err := execute(t, "new", path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDocument+"\n", string(got))

	_, err = execute(t, "new", path)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "new", "--literal", "/b+/i", path)
	require.NoError(t, err)

	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		config.DefaultDocument+"\n\n/b+/i\n---\n"+config.PlaceholderCorpus+"\n---\n",
		string(got))
}

func TestIntegration_NewInvalidLiteral(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ids.rgx")

	_, err := execute(t, "new", "--literal", "/(/", path)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".regexmatch.yml")

	_, err := execute(t, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# regexmatch configuration."))
	assert.Contains(t, string(content), "#   REGEXMATCH_")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, config.DefaultColors(), cfg.Colors)

	_, err = execute(t, "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "init", "--force", "--output", path)
	require.NoError(t, err)
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "check")
	assert.Contains(t, out, "--config string")

	out, err = execute(t, "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Examples:")
	assert.Contains(t, out, "--show-matches")
}
