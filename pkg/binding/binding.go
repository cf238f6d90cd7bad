// Package binding ties a regex test block to a regex literal in a source file
// so that an edited pattern can be written back to the code it came from.
//
// A *Source is used as the block tag; it survives re-parses of the test
// document through the block reconciler.
package binding

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/regexmatch/pkg/fix"
	"github.com/yaklabco/regexmatch/pkg/fsutil"
	"github.com/yaklabco/regexmatch/pkg/pattern"
)

// ErrNotFound is returned when the literal does not occur in the source file.
var ErrNotFound = errors.New("literal not found")

// Source is the location of a regex literal in a source file.
type Source struct {
	// Path is the source file.
	Path string `json:"path"`

	// Start and End are byte offsets of the literal in the file.
	Start int `json:"start"`
	End   int `json:"end"`

	// Line and Column are the 1-based position of Start.
	Line   int `json:"line"`
	Column int `json:"column"`

	// Literal is the text currently at the location.
	Literal string `json:"literal"`
}

// String returns path:line:column.
func (s *Source) String() string {
	return fmt.Sprintf("%s:%d:%d", s.Path, s.Line, s.Column)
}

// Stale reports whether p no longer reads like the bound literal. Flag
// order does not count.
func (s *Source) Stale(p *pattern.Pattern) bool {
	return pattern.NormalizeLiteral(s.Literal) != p.Literal()
}

// Options controls Apply.
type Options struct {
	// Backup keeps a copy of the file before its first rewrite.
	Backup bool
}

// Locate finds the first occurrence of literal in the file at path.
func Locate(ctx context.Context, path, literal string) (*Source, error) {
	if literal == "" {
		return nil, fmt.Errorf("locate in %s: empty literal", path)
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("locate in %s: %w", path, err)
	}

	idx := bytes.Index(content, []byte(literal))
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, literal, path)
	}

	return newSource(path, content, idx, literal), nil
}

// Apply replaces the bound literal with literal and returns the updated
// binding. If the literal moved since it was located, the first occurrence of
// the old literal is used. The write fails with fsutil.ErrModified if the file
// changes while it is being rewritten.
func Apply(ctx context.Context, src *Source, literal string, opts Options) (*Source, error) {
	content, info, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("apply to %s: %w", src.Path, err)
	}

	updated, start, err := replace(content, src, literal)
	if err != nil {
		return nil, err
	}

	if err := fsutil.Rewrite(ctx, info, content, updated, opts.Backup); err != nil {
		return nil, fmt.Errorf("apply to %s: %w", src.Path, err)
	}

	return newSource(src.Path, updated, start, literal), nil
}

// Preview returns the change Apply would make, without writing it.
func Preview(ctx context.Context, src *Source, literal string) (*fix.Diff, error) {
	content, _, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", src.Path, err)
	}

	updated, _, err := replace(content, src, literal)
	if err != nil {
		return nil, err
	}

	return fix.Unified(src.Path, content, updated), nil
}

// replace swaps the bound literal in content and returns the new content and
// the start of the literal.
func replace(content []byte, src *Source, literal string) ([]byte, int, error) {
	start := src.Start
	if start < 0 || src.End > len(content) || start > src.End || string(content[start:src.End]) != src.Literal {
		start = bytes.Index(content, []byte(src.Literal))
		if start < 0 {
			return nil, 0, fmt.Errorf("%w: %q in %s", ErrNotFound, src.Literal, src.Path)
		}
	}

	updated, err := fix.Apply(content, fix.Replace(start, start+len(src.Literal), literal))
	if err != nil {
		return nil, 0, fmt.Errorf("replace in %s: %w", src.Path, err)
	}

	return updated, start, nil
}

func newSource(path string, content []byte, start int, literal string) *Source {
	before := content[:start]
	line := bytes.Count(before, []byte("\n")) + 1
	column := len([]rune(string(before[bytes.LastIndexByte(before, '\n')+1:]))) + 1

	return &Source{
		Path:    path,
		Start:   start,
		End:     start + len(literal),
		Line:    line,
		Column:  column,
		Literal: literal,
	}
}
