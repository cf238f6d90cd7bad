package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/runner"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func assertFiles(t *testing.T, dir string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if exp := filepath.Join(dir, w); got[i] != exp {
			t.Errorf("file[%d] = %s, want %s", i, got[i], exp)
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.rgx": "content"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{filepath.Join(dir, "a.rgx")},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "a.rgx")
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.rgx":            "",
		"docs/b.regex":     "",
		"docs/readme.md":   "",
		"docs/guide.mdown": "",
		"src/main.go":      "",
		"notes.txt":        "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "a.rgx", "docs/b.regex", "docs/readme.md")
}

func TestDiscover_MarkdownDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.rgx": "", "readme.md": ""})

	cfg := config.NewConfig()
	disabled := false
	cfg.Markdown.Enabled = &disabled

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "a.rgx")
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		globs   []string
		want    []string
		wantErr bool
	}{
		{name: "none", want: []string{"a.rgx", "vendor/b.rgx", "vendor/deep/c.rgx"}},
		{name: "directory", globs: []string{"vendor/**"}, want: []string{"a.rgx"}},
		{name: "base name", globs: []string{"c.*"}, want: []string{"a.rgx", "vendor/b.rgx"}},
		{name: "anywhere", globs: []string{"**/deep/**"}, want: []string{"a.rgx", "vendor/b.rgx"}},
		{name: "invalid", globs: []string{"["}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, map[string]string{
				"a.rgx":             "",
				"vendor/b.rgx":      "",
				"vendor/deep/c.rgx": "",
			})

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.globs,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			assertFiles(t, dir, files, tt.want...)
		})
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"visible.rgx":     "",
		".hidden.rgx":     "",
		".git/inside.rgx": "",
		"sub/.secret.rgx": "",
		"sub/visible.rgx": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "sub/visible.rgx", "visible.rgx")
}

func TestDiscover_DeduplicationAndOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"z.rgx": "", "a/m.rgx": "", "b.rgx": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"z.rgx", ".", "a"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "a/m.rgx", "b.rgx", "z.rgx")
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.rgx": ""})
	writeTree(t, outside, map[string]string{"linked.rgx": ""})

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("directory symlink followed without FollowSymlinks: %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %v", files)
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	exts := config.DefaultMarkdownExtensions
	if !runner.IsMarkdown("README.MD", exts) {
		t.Error("expected README.MD to be Markdown")
	}
	if runner.IsMarkdown("a.rgx", exts) {
		t.Error("a.rgx is not Markdown")
	}
}
