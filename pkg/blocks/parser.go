package blocks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/regexmatch/pkg/matcher"
)

// Delimiter separates a pattern line from its corpus and closes the corpus.
const Delimiter = "---"

// FormatMessage is the message of every FormatError.
const FormatMessage = "Parsing error: The format of the regex test is incorrect. " +
	"Please ensure your test follows the required pattern.\n\n" +
	"Expected format:\n\n/regex/[flags]\n---\ntest string\n---"

// FormatError reports a document that does not follow the block grammar.
type FormatError struct {
	// Message describes the expected layout.
	Message string

	// Line is the 0-based line index the problem is attributed to.
	Line int
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Message)
}

func newFormatError(line int) *FormatError {
	return &FormatError{Message: FormatMessage, Line: line}
}

// Parser splits documents into blocks.
//
// The zero value parses a standalone document. FirstLine and FirstOffset
// position a fragment inside a larger document, such as a fenced code block
// in Markdown, so that every reported line and offset is absolute.
type Parser struct {
	// FirstLine is the line index of the first line of the text.
	FirstLine int

	// FirstOffset is the character offset of the first character of the text.
	FirstOffset int
}

// Parse splits a standalone document into blocks.
func Parse(text string) ([]Block, error) {
	return Parser{}.Parse(text)
}

// Parse splits text into blocks in document order.
//
// A block whose pattern does not compile is returned as an *ErroredBlock.
// A grammar violation fails the whole parse with a *FormatError:
// a delimiter with no pattern line before it is reported at the delimiter,
// an unterminated corpus at its opening delimiter, and a trailing pattern
// line with no corpus at the pattern line.
func (p Parser) Parse(text string) ([]Block, error) {
	lines := strings.Split(text, "\n")

	var (
		out     []Block
		pending = -1
		inside  bool
		corpus  []string
		open    Sentinel
		start   int
	)

	offset := p.FirstOffset
	for i, line := range lines {
		width := utf8.RuneCountInString(line)
		lineIdx := p.FirstLine + i

		switch {
		case line == Delimiter:
			sentinel := Sentinel{
				Line:  lineIdx,
				Range: matcher.Range{Start: offset, End: offset + width},
			}

			if !inside {
				if pending < 0 {
					return nil, newFormatError(lineIdx)
				}
				inside = true
				open = sentinel
				start = offset + width + 1
				corpus = []string{}
				break
			}

			out = append(out, newBlock(Meta{
				RawPattern:  lines[pending],
				PatternLine: p.FirstLine + pending,
				Corpus:      corpus,
				StartOffset: start,
				Open:        open,
				Close:       sentinel,
			}))
			inside = false
			pending = -1
			corpus = nil

		case inside:
			corpus = append(corpus, line)

		case strings.TrimSpace(line) != "":
			pending = i
		}

		offset += width + 1
	}

	if inside {
		return nil, newFormatError(open.Line)
	}
	if pending >= 0 {
		return nil, newFormatError(p.FirstLine + pending)
	}

	return out, nil
}

// Sentinels lists the delimiters of bs in document order.
func Sentinels(bs []Block) []Sentinel {
	out := make([]Sentinel, 0, 2*len(bs))
	for _, b := range bs {
		info := b.Info()
		out = append(out, info.Open, info.Close)
	}
	return out
}
