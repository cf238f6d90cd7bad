package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Op marks a diff line as kept, added or removed.
type Op byte

// Diff line operations, written as the unified diff line prefix.
const (
	OpKeep   Op = ' '
	OpAdd    Op = '+'
	OpRemove Op = '-'
)

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
}

// Hunk is a group of changed lines with their context.
// Starts are 1-based line numbers.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is a line diff between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Unified computes the diff of old and updated. It returns nil when both are
// equal.
func Unified(path string, old, updated []byte) *Diff {
	if string(old) == string(updated) {
		return nil
	}

	ops := diffLines(splitLines(old), splitLines(updated))

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.Op {
		case OpAdd:
			diff.Additions++
		case OpRemove:
			diff.Deletions++
		}
	}
	diff.Hunks = groupHunks(ops)

	return diff
}

// HasChanges reports whether the diff has any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			builder.WriteByte(byte(line.Op))
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

type diffOp struct {
	Line

	oldPos int
	newPos int
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffLines walks a longest common subsequence table of a and b.
func diffLines(a, b []string) []diffOp {
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		op := diffOp{oldPos: i, newPos: j}
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			op.Line = Line{Op: OpKeep, Text: a[i]}
			i++
			j++
		case j >= len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			op.Line = Line{Op: OpRemove, Text: a[i]}
			i++
		default:
			op.Line = Line{Op: OpAdd, Text: b[j]}
			j++
		}
		ops = append(ops, op)
	}

	return ops
}

func groupHunks(ops []diffOp) []Hunk {
	var hunks []Hunk

	for k := 0; k < len(ops); k++ {
		if ops[k].Op == OpKeep {
			continue
		}

		start := max(0, k-contextLines)
		last := k
		for n := k + 1; n < len(ops) && n <= last+2*contextLines; n++ {
			if ops[n].Op != OpKeep {
				last = n
			}
		}
		end := min(len(ops), last+contextLines+1)

		hunks = append(hunks, buildHunk(ops[start:end]))
		k = end - 1
	}

	return hunks
}

func buildHunk(ops []diffOp) Hunk {
	h := Hunk{
		OldStart: ops[0].oldPos + 1,
		NewStart: ops[0].newPos + 1,
		Lines:    make([]Line, 0, len(ops)),
	}

	for _, op := range ops {
		if op.Op != OpAdd {
			h.OldCount++
		}
		if op.Op != OpRemove {
			h.NewCount++
		}
		h.Lines = append(h.Lines, op.Line)
	}

	// An empty side starts at the line before the hunk.
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}

	return h
}
