package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmatch/internal/ui/pretty"
	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/config"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/session"
)

func parseOne(t *testing.T, doc string) blocks.Block {
	t.Helper()
	bs, err := blocks.Parse(doc)
	require.NoError(t, err)
	require.Len(t, bs, 1)
	return bs[0]
}

func TestHighlightBlock_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "single line", doc: "/(a)(b)?/g\n---\nab a\n---"},
		{name: "multi line", doc: "/a/gm\n---\nxa\na\n---"},
		{name: "empty corpus", doc: "/a/\n---\n---"},
		{name: "blank corpus line", doc: "/a/\n---\n\n---"},
	}

	styles := pretty.NewStyles(false, config.DefaultColors())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := parseOne(t, tt.doc)
			var results []matcher.Result
			if cb, ok := b.(*blocks.CompiledBlock); ok {
				var err error
				results, err = cb.Match()
				require.NoError(t, err)
			}

			assert.Equal(t, tt.doc+"\n", styles.HighlightBlock(b, results))
		})
	}
}

func TestHighlightBlock_ErroredBlock(t *testing.T) {
	t.Parallel()

	b := parseOne(t, "/(/\n---\nx\n---")
	_, errored := b.(*blocks.ErroredBlock)
	require.True(t, errored)

	out := pretty.NewStyles(false, config.DefaultColors()).HighlightBlock(b, nil)
	assert.Equal(t, "/(/\n---\nx\n---\n", out)
}

func TestFormatMatch(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())
	out := styles.FormatMatch(0, matcher.Result{
		Text:   "ab",
		Range:  matcher.Range{Start: 15, End: 17},
		Groups: []matcher.Range{{Start: 15, End: 16}, {Start: 16, End: 17}},
	})

	assert.Equal(t, "    #1 [15,17) \"ab\" 1:[15,16) 2:[16,17)\n", out)
}

type fakeTag string

func (f fakeTag) String() string { return string(f) }

func TestFormatLens(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false, config.DefaultColors())

	tests := []struct {
		name string
		lens session.Lens
		want string
	}{
		{
			name: "current",
			lens: session.Lens{Tag: fakeTag("main.go:4:12"), Literal: "/a/g"},
			want: "    bound to main.go:4:12\n",
		},
		{
			name: "stale",
			lens: session.Lens{Tag: fakeTag("main.go:4:12"), Literal: "/b/g", Stale: true},
			want: "    bound to main.go:4:12 (changed, apply /b/g)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatLens(tt.lens))
		})
	}
}
