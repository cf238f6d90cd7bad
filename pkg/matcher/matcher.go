// Package matcher runs a compiled pattern over the corpus of a block and
// reports every match with offsets into the enclosing document.
package matcher

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/regexmatch/pkg/pattern"
)

// Range is a half-open span of document offsets, counted in characters.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of characters covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Result is one match within a block corpus.
type Result struct {
	// Text is the matched substring.
	Text string `json:"text"`

	// Range is the absolute position of the whole match.
	Range Range `json:"range"`

	// Groups holds the positions of the participating capture groups
	// in pattern order. It is nil when no group took part.
	Groups []Range `json:"groups,omitempty"`
}

// Match runs p over the corpus units. The first unit starts at document
// offset startOffset; each following unit starts one character after the
// end of the previous one.
//
// Empty and whitespace-only matches are not reported. A pattern without the
// global flag stops after the first match the engine finds.
func Match(p *pattern.Pattern, units []string, startOffset int) ([]Result, error) {
	if p == nil {
		return nil, nil
	}

	var results []Result
	offset := startOffset

	for _, unit := range units {
		found, err := matchUnit(p, unit, offset, &results)
		if err != nil {
			return results, err
		}
		if found && !p.Flags().IsGlobalSearch() {
			break
		}
		offset += utf8.RuneCountInString(unit) + 1
	}

	return results, nil
}

// matchUnit appends the matches of one unit to results and reports whether
// the engine found anything at all.
func matchUnit(p *pattern.Pattern, unit string, offset int, results *[]Result) (bool, error) {
	re := p.Regexp()
	flags := p.Flags()

	m, err := re.FindStringMatch(unit)
	if err != nil {
		return false, fmt.Errorf("match %s: %w", p, err)
	}

	found := m != nil
	lastEnd := 0

	for m != nil {
		if flags.IsSticky() && m.Index != lastEnd {
			break
		}
		lastEnd = m.Index + m.Length

		if strings.TrimSpace(m.String()) != "" {
			*results = append(*results, toResult(p, m, offset))
		}

		if !flags.IsGlobalSearch() {
			break
		}

		m, err = re.FindNextMatch(m)
		if err != nil {
			return found, fmt.Errorf("match %s: %w", p, err)
		}
	}

	return found, nil
}

func toResult(p *pattern.Pattern, m *regexp2.Match, offset int) Result {
	res := Result{
		Text:  m.String(),
		Range: Range{Start: offset + m.Index, End: offset + m.Index + m.Length},
	}

	for _, span := range p.GroupSpans(m) {
		res.Groups = append(res.Groups, Range{Start: offset + span.Start, End: offset + span.End})
	}

	return res
}
