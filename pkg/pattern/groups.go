package pattern

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

// groupRef locates one capturing group of the expression in engine terms.
// JavaScript numbers groups by the position of their opening parenthesis,
// the engine numbers named groups after all unnamed ones.
type groupRef struct {
	name   string
	number int
}

// Span is a capture position within a corpus unit, in runes.
type Span struct {
	Start, End int
}

// captureLayout lists the capturing groups of source in textual order.
func captureLayout(source string, re *regexp2.Regexp) []groupRef {
	names := scanGroups(source)

	engineGroups := len(re.GetGroupNumbers()) - 1
	if len(names) != engineGroups {
		// The scanner disagrees with the engine; trust engine order.
		return engineOrder(re)
	}

	named := make(map[int]bool)
	for _, name := range names {
		if name != "" {
			named[re.GroupNumberFromName(name)] = true
		}
	}

	// Unnamed groups take the remaining engine numbers in ascending order.
	var unnamedNumbers []int
	for _, n := range re.GetGroupNumbers()[1:] {
		if !named[n] {
			unnamedNumbers = append(unnamedNumbers, n)
		}
	}

	refs := make([]groupRef, 0, len(names))
	next := 0
	for _, name := range names {
		if name != "" {
			refs = append(refs, groupRef{name: name, number: re.GroupNumberFromName(name)})
			continue
		}
		if next >= len(unnamedNumbers) {
			return engineOrder(re)
		}
		n := unnamedNumbers[next]
		next++
		refs = append(refs, groupRef{name: strconv.Itoa(n), number: n})
	}
	return refs
}

func engineOrder(re *regexp2.Regexp) []groupRef {
	numbers := re.GetGroupNumbers()[1:]
	refs := make([]groupRef, 0, len(numbers))
	for _, n := range numbers {
		refs = append(refs, groupRef{name: re.GroupNameFromNumber(n), number: n})
	}
	return refs
}

// scanGroups returns one entry per capturing group in order of the opening
// parenthesis: the group name, or "" for unnamed groups.
func scanGroups(source string) []string {
	var names []string
	runes := []rune(source)
	inClass := false

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '\\':
			i++
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '(':
			if i+1 >= len(runes) || runes[i+1] != '?' {
				names = append(names, "")
				continue
			}
			if i+2 < len(runes) && runes[i+2] == '<' && i+3 < len(runes) && runes[i+3] != '=' && runes[i+3] != '!' {
				end := i + 3
				for end < len(runes) && runes[end] != '>' {
					end++
				}
				names = append(names, string(runes[i+3:end]))
				i = end
			}
		}
	}

	return names
}

// GroupSpans returns the spans of the participating capturing groups of m
// in textual order. Groups that did not take part in the match are left out.
func (p *Pattern) GroupSpans(m *regexp2.Match) []Span {
	var spans []Span
	for _, ref := range p.groups {
		g := m.GroupByNumber(ref.number)
		if g == nil {
			g = m.GroupByName(ref.name)
		}
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		spans = append(spans, Span{Start: g.Index, End: g.Index + g.Length})
	}
	return spans
}
