package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmatch/pkg/blocks"
	"github.com/yaklabco/regexmatch/pkg/matcher"
	"github.com/yaklabco/regexmatch/pkg/pattern"
	"github.com/yaklabco/regexmatch/pkg/session"
)

const doc = "/[0-9]+a+/gm\n---\n123aaa\nb2507ab\n2024aa\n---"

type staleTag struct{ literal string }

func (s *staleTag) Stale(p *pattern.Pattern) bool { return s.literal != p.Literal() }

func TestUpdate_ParsesAndMatches(t *testing.T) {
	t.Parallel()

	s := session.New("default.rgx")
	require.NoError(t, s.Update(context.Background(), doc, nil))

	assert.Equal(t, 1, s.Revision())
	assert.Nil(t, s.Err())
	require.Len(t, s.Blocks(), 1)

	matches, err := s.Matches()
	require.NoError(t, err)
	require.Len(t, matches, 1)

	got := make([]string, 0, len(matches[0].Results))
	for _, r := range matches[0].Results {
		got = append(got, r.Text)
	}
	assert.Equal(t, []string{"123aaa", "2507a", "2024aa"}, got)
	assert.Equal(t, matcher.Range{Start: 17, End: 23}, matches[0].Results[0].Range)
}

func TestUpdate_FormatErrorKeepsPreviousBlocks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := session.New("default.rgx")
	require.NoError(t, s.Update(ctx, doc, nil))
	previous := s.Blocks()

	err := s.Update(ctx, doc+"\n/b/\n---\nunterminated", nil)

	var formatErr *blocks.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 7, formatErr.Line)
	assert.Same(t, formatErr, s.Err())
	assert.Equal(t, previous, s.Blocks())
	assert.Equal(t, 1, s.Revision())

	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, session.KindFormat, diags[0].Kind)
	assert.Equal(t, 7, diags[0].Line)

	require.NoError(t, s.Update(ctx, doc, nil))
	assert.Nil(t, s.Err())
	assert.Empty(t, s.Diagnostics())
}

func TestUpdate_PendingTagSurvivesFormatError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tag := &staleTag{literal: "/x/g"}
	s := session.New("default.rgx")

	require.Error(t, s.Update(ctx, "/x/g\n---\nx", tag))
	require.NoError(t, s.Update(ctx, "/x/g\n---\nx\n---", nil))

	require.Len(t, s.Blocks(), 1)
	assert.Same(t, tag, s.Blocks()[0].Info().Tag)
}

func TestUpdate_ReconcilesTags(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tag := &staleTag{literal: "/[0-9]+a+/gm"}
	s := session.New("default.rgx")

	require.NoError(t, s.Update(ctx, doc, tag))
	require.NoError(t, s.Update(ctx, "/new/gm\n---\nnew\n---\n"+doc, nil))

	bs := s.Blocks()
	require.Len(t, bs, 2)
	assert.Nil(t, bs[0].Info().Tag)
	assert.Same(t, tag, bs[1].Info().Tag)
}

func TestDiagnostics_CompileErrors(t *testing.T) {
	t.Parallel()

	s := session.New("default.rgx")
	require.NoError(t, s.Update(context.Background(), "/(?/\n---\na\n---\n/ok/\n---\nok\n---\n/[/\n---\n---", nil))

	diags := s.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, 0, diags[0].Line)
	assert.Equal(t, 8, diags[1].Line)
	for _, d := range diags {
		assert.Equal(t, session.KindCompile, d.Kind)
		assert.NotEmpty(t, d.Message)
	}

	matches, err := s.Matches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
}

func TestLenses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tag := &staleTag{literal: "/[0-9]+a+/gm"}
	s := session.New("default.rgx")
	require.NoError(t, s.Update(ctx, doc, tag))

	lenses := s.Lenses()
	require.Len(t, lenses, 1)
	assert.Equal(t, 0, lenses[0].Index)
	assert.Equal(t, "/[0-9]+a+/gm", lenses[0].Pattern)
	assert.False(t, lenses[0].Stale)

	require.NoError(t, s.Update(ctx, "/[0-9]+b+/gm\n---\n123aaa\nb2507ab\n2024aa\n---", nil))

	lenses = s.Lenses()
	require.Len(t, lenses, 1)
	assert.True(t, lenses[0].Stale)
	assert.Equal(t, "/[0-9]+b+/gm", lenses[0].Literal)
}

func TestRetag(t *testing.T) {
	t.Parallel()

	s := session.New("default.rgx")
	require.NoError(t, s.Update(context.Background(), doc, nil))

	require.NoError(t, s.Retag(0, "bound"))
	assert.Equal(t, "bound", s.Blocks()[0].Info().Tag)

	require.ErrorIs(t, s.Retag(3, "bound"), session.ErrNoBlock)
}

func TestSentinels(t *testing.T) {
	t.Parallel()

	s := session.New("default.rgx")
	require.NoError(t, s.Update(context.Background(), doc, nil))

	got := s.Sentinels()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 5, got[1].Line)
}

func TestWithParseFunc(t *testing.T) {
	t.Parallel()

	called := false
	s := session.New("notes.md", session.WithParseFunc(func(text string) ([]blocks.Block, error) {
		called = true
		return blocks.Parse(text)
	}))

	require.NoError(t, s.Update(context.Background(), doc, nil))
	assert.True(t, called)
	assert.Equal(t, "notes.md", s.Path())
}
