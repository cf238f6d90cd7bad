// Package session tracks one open regex test document across edits.
//
// A Session owns the current block list of its document. Every Update
// re-parses the full text and reconciles tags against the previous list.
// A text that does not follow the block grammar leaves the previous list in
// place, so stale but valid results remain available while the user is in
// the middle of an edit.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/regexmatch/internal/logging"
	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/pattern"
)

// ParseFunc splits a document into blocks. Grammar violations must be
// reported as *blocks.FormatError.
type ParseFunc func(text string) ([]blocks.Block, error)

// Session is the controller of one document.
// It is safe for concurrent use; Update is expected to have a single caller.
type Session struct {
	path  string
	parse ParseFunc

	mu       sync.RWMutex
	blocks   []blocks.Block
	err      *blocks.FormatError
	pending  blocks.Tag
	revision int
}

// Option configures a Session.
type Option func(*Session)

// WithParseFunc replaces the block parser, for example to read blocks
// embedded in Markdown.
func WithParseFunc(fn ParseFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.parse = fn
		}
	}
}

// New creates a session for the document at path. The path is only used
// for logging and error messages.
func New(path string, opts ...Option) *Session {
	s := &Session{
		path:  path,
		parse: blocks.Parse,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document path.
func (s *Session) Path() string { return s.path }

// Update re-parses the document text.
//
// newTag, when non-nil, is attached to the last block. If the text cannot be
// parsed the returned error is a *blocks.FormatError, the previous blocks are
// kept and newTag is held back until the next successful parse.
func (s *Session) Update(ctx context.Context, text string, newTag blocks.Tag) error {
	logger := logging.FromContext(ctx)

	parsed, err := s.parse(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if newTag == nil {
		newTag = s.pending
	}

	if err != nil {
		var formatErr *blocks.FormatError
		if !errors.As(err, &formatErr) {
			return fmt.Errorf("parse %s: %w", s.path, err)
		}

		s.err = formatErr
		s.pending = newTag
		logger.Debug("keeping previous blocks",
			logging.FieldPath, s.path,
			logging.FieldLine, formatErr.Line+1,
			logging.FieldBlocks, len(s.blocks),
		)
		return formatErr
	}

	s.pending = nil
	if newTag != nil && len(parsed) == 0 {
		s.pending = newTag
	}

	previous := len(s.blocks)
	s.blocks = blocks.Reconcile(s.blocks, parsed, newTag)
	s.err = nil
	s.revision++

	logger.Debug("document parsed",
		logging.FieldPath, s.path,
		logging.FieldRevision, s.revision,
		logging.FieldPrevious, previous,
		logging.FieldBlocks, len(s.blocks),
		logging.FieldTagged, countTagged(s.blocks),
	)

	return nil
}

// Blocks returns the current block list. The slice must not be modified.
func (s *Session) Blocks() []blocks.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blocks
}

// Revision counts successful parses.
func (s *Session) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Err returns the format error of the last Update, or nil.
func (s *Session) Err() *blocks.FormatError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Retag replaces the tag of the block at index.
func (s *Session) Retag(index int, tag blocks.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.blocks) {
		return fmt.Errorf("retag block %d: %w", index, ErrNoBlock)
	}
	s.blocks[index].Info().Tag = tag
	return nil
}

// ErrNoBlock is returned when a block index is out of range.
var ErrNoBlock = errors.New("no such block")

// Kind classifies a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	KindFormat  Kind = "format"
	KindCompile Kind = "compile"
)

// Diagnostic is an error to show at a document line.
type Diagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Diagnostics returns the current problems of the document: the format
// error if the last Update failed, otherwise one entry per block whose
// pattern did not compile.
func (s *Session) Diagnostics() []Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return []Diagnostic{{Line: s.err.Line, Message: s.err.Message, Kind: KindFormat}}
	}

	var diags []Diagnostic
	for _, ce := range blocks.Errors(s.blocks) {
		diags = append(diags, Diagnostic{Line: ce.Line, Message: ce.Message, Kind: KindCompile})
	}
	return diags
}

// BlockMatches holds the match results of one compiled block.
type BlockMatches struct {
	// Index is the position of the block in the block list.
	Index int

	// Block is the matched block.
	Block *blocks.CompiledBlock

	// Results are the matches in corpus order.
	Results []matcher.Result
}

// Matches runs every compiled block over its corpus.
// Blocks whose pattern failed to compile are skipped.
func (s *Session) Matches() ([]BlockMatches, error) {
	return MatchBlocks(s.Blocks())
}

// MatchBlocks runs every compiled block of bs over its corpus.
func MatchBlocks(bs []blocks.Block) ([]BlockMatches, error) {
	out := make([]BlockMatches, 0, len(bs))
	var errs []error

	for i, b := range bs {
		cb, ok := b.(*blocks.CompiledBlock)
		if !ok {
			continue
		}
		results, err := cb.Match()
		if err != nil {
			errs = append(errs, fmt.Errorf("block at line %d: %w", cb.PatternLine+1, err))
		}
		out = append(out, BlockMatches{Index: i, Block: cb, Results: results})
	}

	return out, errors.Join(errs...)
}

// Sentinels returns the delimiter positions of the current blocks.
func (s *Session) Sentinels() []blocks.Sentinel {
	return blocks.Sentinels(s.Blocks())
}

// Staler is implemented by tags that can tell whether they still agree with
// the pattern of their block.
type Staler interface {
	Stale(p *pattern.Pattern) bool
}

// Lens describes a tagged block for a "push pattern back" affordance.
type Lens struct {
	// Index is the position of the block in the block list.
	Index int

	// Pattern is the identity of the block pattern.
	Pattern string

	// Literal is the pattern as it would be written back, empty when the
	// pattern does not compile.
	Literal string

	// Tag is the block tag.
	Tag blocks.Tag

	// Stale reports whether the tag no longer agrees with the pattern.
	Stale bool
}

// Lenses lists the tagged blocks.
func (s *Session) Lenses() []Lens {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lenses []Lens
	for i, b := range s.blocks {
		tag := b.Info().Tag
		if tag == nil {
			continue
		}

		lens := Lens{Index: i, Pattern: b.Key(), Tag: tag}
		if cb, ok := b.(*blocks.CompiledBlock); ok {
			lens.Literal = cb.Pattern.Literal()
			if staler, ok := tag.(Staler); ok {
				lens.Stale = staler.Stale(cb.Pattern)
			}
		}
		lenses = append(lenses, lens)
	}
	return lenses
}

func countTagged(bs []blocks.Block) int {
	n := 0
	for _, b := range bs {
		if b.Info().Tag != nil {
			n++
		}
	}
	return n
}
