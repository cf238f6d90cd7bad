package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/session"
)

const (
	paintNone = iota
	paintMatch
	paintGroup
)

// HighlightBlock renders a block as it appears in its document, with every
// match painted in the match color and every capture group in its group color.
func (s *Styles) HighlightBlock(b blocks.Block, results []matcher.Result) string {
	meta := b.Info()

	var builder strings.Builder

	patternStyle := s.Pattern
	if _, errored := b.(*blocks.ErroredBlock); errored {
		patternStyle = s.Error
	}
	builder.WriteString(patternStyle.Render(meta.RawPattern) + "\n")
	builder.WriteString(s.Delimiter.Render(blocks.Delimiter) + "\n")

	corpus := []rune(meta.CorpusText())
	paint := paintCorpus(len(corpus), meta.StartOffset, results)

	lineStart := 0
	for i := 0; i <= len(corpus); i++ {
		if i < len(corpus) && corpus[i] != '\n' {
			continue
		}
		if len(meta.Corpus) > 0 {
			builder.WriteString(s.renderRuns(corpus[lineStart:i], paint[lineStart:i]) + "\n")
		}
		lineStart = i + 1
	}

	builder.WriteString(s.Delimiter.Render(blocks.Delimiter) + "\n")
	return builder.String()
}

// paintCorpus assigns a paint to every corpus character. Groups paint over
// the whole match; a later group paints over an earlier one.
func paintCorpus(n, base int, results []matcher.Result) []int {
	paint := make([]int, n)
	fill := func(r matcher.Range, value int) {
		for i := max(r.Start-base, 0); i < min(r.End-base, n); i++ {
			paint[i] = value
		}
	}

	for _, res := range results {
		fill(res.Range, paintMatch)
		for gi, g := range res.Groups {
			fill(g, paintGroup+gi)
		}
	}
	return paint
}

func (s *Styles) renderRuns(line []rune, paint []int) string {
	var builder strings.Builder

	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && paint[i] == paint[start] {
			continue
		}
		text := string(line[start:i])
		switch p := paint[start]; {
		case p == paintNone:
			builder.WriteString(text)
		case p == paintMatch:
			builder.WriteString(s.Match.Render(text))
		default:
			builder.WriteString(s.Group(p - paintGroup).Render(text))
		}
		start = i
	}

	return builder.String()
}

// FormatMatch formats one match as a list entry.
// Example: "    #1 [3,9) "123aaa" 1:[3,5)".
func (s *Styles) FormatMatch(index int, res matcher.Result) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("    %s %s %s",
		s.Dim.Render("#"+strconv.Itoa(index+1)),
		s.Location.Render(formatRange(res.Range)),
		s.Match.Render(strconv.Quote(res.Text)),
	))

	for gi, g := range res.Groups {
		builder.WriteString(" " + s.Group(gi).Render(strconv.Itoa(gi+1)+":"+formatRange(g)))
	}

	builder.WriteString("\n")
	return builder.String()
}

func formatRange(r matcher.Range) string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// FormatLens formats the binding of a tagged block. A stale binding shows
// the literal that would be written back.
func (s *Styles) FormatLens(lens session.Lens) string {
	line := "    " + s.Dim.Render("bound to") + " " + s.Location.Render(fmt.Sprint(lens.Tag))
	if lens.Stale {
		line += " " + s.Warning.Render("(changed, apply "+lens.Literal+")")
	}
	return line + "\n"
}
