// Package pattern compiles the pattern line of a regex test block.
//
// A pattern line is either a JavaScript style literal such as
// /[0-9]+a+/gm or a bare expression. Compilation uses the ECMAScript
// mode of github.com/dlclark/regexp2 so that the syntax accepted here
// matches what users write in their source code.
package pattern

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// CompileError reports a pattern the regex engine rejected.
type CompileError struct {
	// Message is the engine's description of the problem.
	Message string

	// Line is the 0-based line index of the pattern in its document.
	Line int
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Message)
}

// Pattern is a compiled regex test pattern.
type Pattern struct {
	source   string
	explicit Flags
	flags    Flags
	re       *regexp2.Regexp
	groups   []groupRef
}

// Compile parses a raw pattern line and compiles it.
// lineIndex is only used to place a returned *CompileError.
func Compile(rawLine string, lineIndex int) (*Pattern, error) {
	source, explicit := Split(rawLine)

	flags := explicit
	if flags == 0 {
		flags = DefaultFlags
	}
	flags |= FlagIndices

	if flags.Has(FlagUnicode | FlagUnicodeSets) {
		return nil, &CompileError{
			Message: fmt.Sprintf("invalid flags supplied to regular expression: %s", flags),
			Line:    lineIndex,
		}
	}

	expr, err := translateEscapes(source, flags.Has(FlagUnicode) || flags.Has(FlagUnicodeSets))
	if err != nil {
		return nil, &CompileError{Message: err.Error(), Line: lineIndex}
	}

	re, err := regexp2.Compile(expr, engineOptions(flags))
	if err != nil {
		return nil, &CompileError{Message: err.Error(), Line: lineIndex}
	}

	return &Pattern{
		source:   source,
		explicit: explicit,
		flags:    flags,
		re:       re,
		groups:   captureLayout(expr, re),
	}, nil
}

// MustCompile is like Compile but panics on error. It is intended for tests
// and package level fixtures.
func MustCompile(rawLine string) *Pattern {
	p, err := Compile(rawLine, 0)
	if err != nil {
		panic(err)
	}
	return p
}

// Split separates a raw pattern line into its body and explicit flags.
// Lines that are not shaped like /body/flags are returned whole with no flags.
func Split(rawLine string) (string, Flags) {
	if !strings.HasPrefix(rawLine, "/") {
		return rawLine, 0
	}

	last := strings.LastIndexByte(rawLine, '/')
	if last <= 0 {
		return rawLine, 0
	}

	flags, ok := ParseFlags(rawLine[last+1:])
	if !ok {
		return rawLine, 0
	}

	return rawLine[1:last], flags
}

func engineOptions(flags Flags) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.IgnoresCase() {
		opts |= regexp2.IgnoreCase
	}
	if flags.TreatsCorpusAsMultipleLines() {
		opts |= regexp2.Multiline
	}
	if flags.DotMatchesNewline() {
		opts |= regexp2.Singleline
	}
	return opts
}

// Source returns the expression body without slashes or flags.
func (p *Pattern) Source() string { return p.source }

// Flags returns the effective flag set, including implied flags.
func (p *Pattern) Flags() Flags { return p.flags }

// ExplicitFlags returns the flags exactly as the user supplied them.
func (p *Pattern) ExplicitFlags() Flags { return p.explicit }

// NumGroups returns the number of capturing groups in the expression.
func (p *Pattern) NumGroups() int { return len(p.groups) }

// String returns the identity of the pattern: /source/flags with the
// effective flags, leaving out offset tracking unless it was requested.
func (p *Pattern) String() string {
	flags := p.flags
	if !p.explicit.Has(FlagIndices) {
		flags &^= FlagIndices
	}
	return "/" + p.source + "/" + flags.String()
}

// Literal returns the pattern as a source code literal using the flags
// the user wrote.
func (p *Pattern) Literal() string {
	return "/" + p.source + "/" + p.explicit.String()
}

// NormalizeLiteral returns literal with its flags in canonical order, the
// form Literal produces. Bare expressions gain slashes.
func NormalizeLiteral(literal string) string {
	body, flags := Split(literal)
	return "/" + body + "/" + flags.String()
}

// Regexp exposes the underlying engine value.
func (p *Pattern) Regexp() *regexp2.Regexp { return p.re }
