// Package blocks splits a regex test document into blocks and keeps block
// identity stable across re-parses.
//
// A document is a sequence of blocks of the form
//
//	/regex/[flags]
//	---
//	test string
//	---
//
// Blank lines between blocks are ignored.
package blocks

import (
	"errors"
	"strings"

	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/pattern"
)

// Tag is opaque metadata attached to a block by a collaborator, such as a
// binding to a regex literal in a source file. The parser never creates tags.
type Tag any

// Sentinel locates one --- delimiter line.
type Sentinel struct {
	// Line is the 0-based line index of the delimiter.
	Line int `json:"line"`

	// Range is the document offset span of the delimiter text.
	Range matcher.Range `json:"range"`
}

// Meta holds the fields shared by every kind of block.
type Meta struct {
	// RawPattern is the pattern line exactly as written.
	RawPattern string

	// PatternLine is the 0-based line index of RawPattern.
	PatternLine int

	// Corpus holds the lines between the two delimiters.
	Corpus []string

	// StartOffset is the document offset of the first corpus character.
	StartOffset int

	// Open and Close locate the delimiters around the corpus.
	Open, Close Sentinel

	// Tag is collaborator metadata, nil when unset.
	Tag Tag
}

// Info returns the shared block fields.
func (m *Meta) Info() *Meta { return m }

// CorpusText returns the corpus lines joined by newlines.
func (m *Meta) CorpusText() string { return strings.Join(m.Corpus, "\n") }

// Block is either a *CompiledBlock or an *ErroredBlock.
type Block interface {
	Info() *Meta

	// Key returns the identity used to recognize the block after a re-parse.
	Key() string

	block()
}

// CompiledBlock is a block whose pattern compiled.
type CompiledBlock struct {
	Meta

	// Pattern is the compiled pattern line.
	Pattern *pattern.Pattern

	// Units are the strings handed to the matcher: one per corpus line
	// for multi-line patterns, otherwise the whole corpus joined.
	Units []string
}

// Key returns the pattern identity, /source/flags.
func (b *CompiledBlock) Key() string { return b.Pattern.String() }

// Match runs the block pattern over its corpus.
func (b *CompiledBlock) Match() ([]matcher.Result, error) {
	return matcher.Match(b.Pattern, b.Units, b.StartOffset)
}

func (*CompiledBlock) block() {}

// ErroredBlock is a block whose pattern failed to compile. It keeps its
// corpus so diagnostics can still refer to it.
type ErroredBlock struct {
	Meta

	// Err describes why the pattern was rejected.
	Err *pattern.CompileError
}

// Key returns the raw pattern line.
func (b *ErroredBlock) Key() string { return b.RawPattern }

func (*ErroredBlock) block() {}

// Errors collects the compile errors of bs in document order.
func Errors(bs []Block) []*pattern.CompileError {
	var errs []*pattern.CompileError
	for _, b := range bs {
		if eb, ok := b.(*ErroredBlock); ok {
			errs = append(errs, eb.Err)
		}
	}
	return errs
}

// HasTags reports whether any block carries a tag.
func HasTags(bs []Block) bool {
	for _, b := range bs {
		if b.Info().Tag != nil {
			return true
		}
	}
	return false
}

func newBlock(meta Meta) Block {
	p, err := pattern.Compile(meta.RawPattern, meta.PatternLine)
	if err != nil {
		var ce *pattern.CompileError
		if !errors.As(err, &ce) {
			ce = &pattern.CompileError{Message: err.Error(), Line: meta.PatternLine}
		}
		return &ErroredBlock{Meta: meta, Err: ce}
	}

	units := meta.Corpus
	if !p.Flags().TreatsCorpusAsMultipleLines() {
		units = []string{meta.CorpusText()}
	}

	return &CompiledBlock{Meta: meta, Pattern: p, Units: units}
}
