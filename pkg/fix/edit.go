// Package fix applies byte-range edits to file content and renders the
// change as a unified diff.
package fix

import (
	"bytes"
	"fmt"
	"slices"
)

// Edit replaces the bytes [Start, End) of a file with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Replace returns an edit that replaces [start, end) with text.
func Replace(start, end int, text string) Edit {
	return Edit{Start: start, End: end, Text: text}
}

// Insert returns an edit that inserts text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, Text: text}
}

// RangeError reports an edit that does not fit the content.
type RangeError struct {
	Edit Edit
	Len  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("edit [%d:%d] out of range for %d bytes", e.Edit.Start, e.Edit.End, e.Len)
}

// ConflictError reports two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Apply returns content with every edit applied. Edits may be given in any
// order but must not overlap; content is not modified.
func Apply(content []byte, edits ...Edit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	delta := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(content) {
			return nil, &RangeError{Edit: e, Len: len(content)}
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: e}
		}
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes(), nil
}
