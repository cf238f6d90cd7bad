// Package mdblocks finds regex test documents embedded in Markdown fenced
// code blocks and parses them with absolute line and offset positions.
package mdblocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/regexmatch/pkg/blocks"
)

// Fragment is the body of one fenced code block.
type Fragment struct {
	// Language is the first word of the fence info string.
	Language string

	// Text is the fence body without its trailing newline.
	Text string

	// FirstLine is the 0-based line index of the first body line.
	FirstLine int

	// FirstOffset is the character offset of the first body character.
	FirstOffset int
}

// Extractor finds test fragments in Markdown.
type Extractor struct {
	// accepted holds the lowercased configured names and the linguist
	// languages they are aliases of.
	accepted map[string]bool
	md       goldmark.Markdown
}

// New creates an Extractor that accepts fences whose language is one of
// languages. Names are compared without case, and a name that is a known
// linguist alias also accepts the other aliases of its language, so
// "regex" accepts "regexp" fences.
func New(languages []string) *Extractor {
	accepted := make(map[string]bool, 2*len(languages))
	for _, lang := range languages {
		accepted[strings.ToLower(lang)] = true
		if canonical, ok := enry.GetLanguageByAlias(lang); ok {
			accepted[canonical] = true
		}
	}

	return &Extractor{
		accepted: accepted,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Accepts reports whether a fence with the given info language is a test
// fragment.
func (e *Extractor) Accepts(lang string) bool {
	if lang == "" {
		return false
	}
	if e.accepted[strings.ToLower(lang)] {
		return true
	}
	canonical, ok := enry.GetLanguageByAlias(lang)
	return ok && e.accepted[canonical]
}

// Extract returns the test fragments of source in document order.
//
// Only top-level fences are considered. A fence nested in a list or a
// blockquote has its body re-indented by goldmark, so its lines no longer
// map one to one onto the source.
func (e *Extractor) Extract(ctx context.Context, source []byte) ([]Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	var out []Fragment
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}

		lang := string(fence.Language(source))
		if !e.Accepts(lang) {
			continue
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			continue
		}

		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop
		body := bytes.TrimSuffix(source[start:stop], []byte("\n"))
		body = bytes.TrimSuffix(body, []byte("\r"))

		out = append(out, Fragment{
			Language:    lang,
			Text:        string(body),
			FirstLine:   bytes.Count(source[:start], []byte("\n")),
			FirstOffset: utf8.RuneCount(source[:start]),
		})
	}

	return out, nil
}

// Parse extracts the fragments of source and parses each of them. Blocks
// come back in document order. The first malformed fragment fails the parse.
func (e *Extractor) Parse(ctx context.Context, source []byte) ([]blocks.Block, error) {
	fragments, err := e.Extract(ctx, source)
	if err != nil {
		return nil, err
	}

	var out []blocks.Block
	for _, f := range fragments {
		bs, err := f.Parse()
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

// Parse splits the fragment into blocks positioned in the enclosing document.
func (f Fragment) Parse() ([]blocks.Block, error) {
	//nolint:wrapcheck // FormatError is returned as is for errors.As callers.
	return blocks.Parser{FirstLine: f.FirstLine, FirstOffset: f.FirstOffset}.Parse(f.Text)
}
