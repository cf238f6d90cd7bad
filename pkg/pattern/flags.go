package pattern

import "strings"

// Flags is the set of regular expression flags attached to a pattern.
// The flag characters follow JavaScript regex literal syntax.
type Flags uint8

// Individual flags, in canonical order.
const (
	// FlagIndices requests per-match and per-group offsets (d).
	FlagIndices Flags = 1 << iota
	// FlagGlobal finds every match instead of the first one (g).
	FlagGlobal
	// FlagIgnoreCase matches case-insensitively (i).
	FlagIgnoreCase
	// FlagMultiline makes ^ and $ match at line boundaries (m).
	FlagMultiline
	// FlagDotAll lets . match line terminators (s).
	FlagDotAll
	// FlagUnicode enables Unicode mode (u).
	FlagUnicode
	// FlagUnicodeSets enables Unicode sets mode (v).
	FlagUnicodeSets
	// FlagSticky anchors each match at the end of the previous one (y).
	FlagSticky
)

// ValidFlagChars lists every accepted flag character in canonical order.
const ValidFlagChars = "dgimsuvy"

// DefaultFlags is applied when a pattern carries no explicit flags.
const DefaultFlags = FlagGlobal | FlagMultiline

// ParseFlags converts flag characters into a Flags set.
// Repeated characters are folded. It reports false if any character
// is not a valid flag.
func ParseFlags(s string) (Flags, bool) {
	var f Flags
	for _, r := range s {
		idx := strings.IndexRune(ValidFlagChars, r)
		if idx < 0 {
			return 0, false
		}
		f |= 1 << idx
	}
	return f, true
}

// Has reports whether every flag in other is set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// SupportsGroupOffsets reports whether group offsets are tracked.
func (f Flags) SupportsGroupOffsets() bool { return f.Has(FlagIndices) }

// IsGlobalSearch reports whether all matches are collected.
func (f Flags) IsGlobalSearch() bool { return f.Has(FlagGlobal) }

// TreatsCorpusAsMultipleLines reports whether each corpus line is matched
// as an independent unit.
func (f Flags) TreatsCorpusAsMultipleLines() bool { return f.Has(FlagMultiline) }

// IsSticky reports whether matches must be contiguous.
func (f Flags) IsSticky() bool { return f.Has(FlagSticky) }

// IgnoresCase reports whether matching is case-insensitive.
func (f Flags) IgnoresCase() bool { return f.Has(FlagIgnoreCase) }

// DotMatchesNewline reports whether . also matches line terminators.
func (f Flags) DotMatchesNewline() bool { return f.Has(FlagDotAll) }

// String returns the flag characters in canonical order.
func (f Flags) String() string {
	var sb strings.Builder
	for i := range len(ValidFlagChars) {
		if f&(1<<i) != 0 {
			sb.WriteByte(ValidFlagChars[i])
		}
	}
	return sb.String()
}
