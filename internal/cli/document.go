package cli

import (
	"strings"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/pattern"
)

// appendBlock returns doc with a new block for literal at its end. The block
// corpus is a placeholder line for the user to replace.
func appendBlock(doc, literal string) string {
	block := strings.Join([]string{
		literal,
		blocks.Delimiter,
		config.PlaceholderCorpus,
		blocks.Delimiter,
	}, "\n")

	doc = strings.TrimRight(doc, "\r\n")
	if doc == "" {
		return block
	}
	return doc + "\n\n" + block
}

// findLiteral returns the index of the first compiled block whose pattern
// reads as literal, or -1. Flag order does not count.
func findLiteral(bs []blocks.Block, literal string) int {
	want := pattern.NormalizeLiteral(literal)
	for i, b := range bs {
		cb, ok := b.(*blocks.CompiledBlock)
		if ok && cb.Pattern.Literal() == want {
			return i
		}
	}
	return -1
}

// sourceLiteral returns the text to look up in a source file for b: the
// pattern line as written when it is a literal, so that its flag order is
// kept.
func sourceLiteral(b *blocks.CompiledBlock) string {
	raw := strings.TrimSpace(b.RawPattern)
	if strings.HasPrefix(raw, "/") && pattern.NormalizeLiteral(raw) == b.Pattern.Literal() {
		return raw
	}
	return b.Pattern.Literal()
}
