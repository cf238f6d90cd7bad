package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmatch/pkg/blocks"
)

type binding struct{ name string }

func mustParse(t *testing.T, text string) []blocks.Block {
	t.Helper()

	bs, err := blocks.Parse(text)
	require.NoError(t, err)
	return bs
}

func tags(bs []blocks.Block) []blocks.Tag {
	out := make([]blocks.Tag, len(bs))
	for i, b := range bs {
		out[i] = b.Info().Tag
	}
	return out
}

const firstDoc = "/[0-9]/gm\n---\ntest1\ntest2\n---"

func TestReconcile_NewTagGoesToLastBlock(t *testing.T) {
	t.Parallel()

	tag := &binding{name: "code"}
	next := blocks.Reconcile(nil, mustParse(t, firstDoc), tag)

	assert.Equal(t, []blocks.Tag{tag}, tags(next))
}

func TestReconcile_NoTagsIsNoop(t *testing.T) {
	t.Parallel()

	prev := mustParse(t, firstDoc)
	next := blocks.Reconcile(prev, mustParse(t, firstDoc+"\n/a/\n---\na\n---"), nil)

	assert.Equal(t, []blocks.Tag{nil, nil}, tags(next))
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	tag := &binding{name: "code"}

	tests := []struct {
		name string
		next string
		want []bool
	}{
		{
			name: "pattern edit keeps position",
			next: "/UPDATED-REGEX/g\n---\ntest1\ntest2\n---\n",
			want: []bool{true},
		},
		{
			name: "pattern and corpus edit keeps position",
			next: "/UPDATED-REGEX/g\n---\ntest3\ntest4\n---\n",
			want: []bool{true},
		},
		{
			name: "block added below",
			next: firstDoc + "\n/ANOTHER-REGEX/gm\n---\ntest3\ntest4\n---",
			want: []bool{true, false},
		},
		{
			name: "block added above",
			next: "/ANOTHER-REGEX/gm\n---\ntest3\ntest4\n---\n" + firstDoc,
			want: []bool{false, true},
		},
		{
			name: "pattern edited while adding a block falls back to corpus",
			next: "/UPDATED-REGEX/gm\n---\ntest1\ntest2\n---\n/ANOTHER-REGEX/gm\n---\ntest3\ntest4\n---\n",
			want: []bool{true, false},
		},
		{
			name: "identity lost when pattern and corpus both change",
			next: "/UPDATED-REGEX/gm\n---\ntest3\ntest4\n---\n/UPDATED-REGEX/gm\n---\ntest3\ntest4\n---",
			want: []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prev := blocks.Reconcile(nil, mustParse(t, firstDoc), tag)
			next := blocks.Reconcile(prev, mustParse(t, tt.next), nil)

			require.Len(t, next, len(tt.want))
			for i, want := range tt.want {
				if want {
					assert.Same(t, tag, next[i].Info().Tag, "block %d", i)
				} else {
					assert.Nil(t, next[i].Info().Tag, "block %d", i)
				}
			}
		})
	}
}

func TestReconcile_Shrink(t *testing.T) {
	t.Parallel()

	tag := &binding{name: "code"}
	prev := blocks.Reconcile(nil, mustParse(t, firstDoc), tag)
	prev = blocks.Reconcile(prev, mustParse(t, firstDoc+"\n/ANOTHER-REGEX/gm\n---\ntest3\ntest4\n---\n"), nil)
	require.Same(t, tag, prev[0].Info().Tag)

	next := blocks.Reconcile(prev, mustParse(t, firstDoc), nil)
	require.Len(t, next, 1)
	assert.Same(t, tag, next[0].Info().Tag)
}

func TestReconcile_ShrinkCarriesEachTagOnce(t *testing.T) {
	t.Parallel()

	tag := &binding{name: "code"}
	prev := mustParse(t, "/a/\n---\n1\n---\n/b/\n---\n2\n---\n/c/\n---\n3\n---")
	prev[0].Info().Tag = tag

	next := blocks.Reconcile(prev, mustParse(t, "/a/\n---\n1\n---\n/a/\n---\n2\n---"), nil)
	assert.Equal(t, []blocks.Tag{tag, nil}, tags(next))
}

func TestReconcile_SecondTagAddedBelow(t *testing.T) {
	t.Parallel()

	first := &binding{name: "first"}
	second := &binding{name: "second"}

	prev := blocks.Reconcile(nil, mustParse(t, firstDoc), first)
	next := blocks.Reconcile(prev, mustParse(t, firstDoc+"\n/ANOTHER-REGEX/gm\n---\ntest3\ntest4\n---"), second)

	assert.Equal(t, []blocks.Tag{first, second}, tags(next))
}

func TestReconcile_NewTagIsNotOverwritten(t *testing.T) {
	t.Parallel()

	old := &binding{name: "old"}
	fresh := &binding{name: "fresh"}

	prev := blocks.Reconcile(nil, mustParse(t, "/a/\n---\n1\n---"), old)
	next := blocks.Reconcile(prev, mustParse(t, "/a/\n---\n1\n---"), fresh)

	assert.Equal(t, []blocks.Tag{fresh}, tags(next))
}

func TestReconcile_ErroredBlocksUseRawPattern(t *testing.T) {
	t.Parallel()

	tag := &binding{name: "code"}
	prev := mustParse(t, "/(?/\n---\n1\n---\n/b/\n---\n2\n---")
	prev[0].Info().Tag = tag

	next := blocks.Reconcile(prev, mustParse(t, "/(?/\n---\n1\n---"), nil)
	assert.Equal(t, []blocks.Tag{tag}, tags(next))
}

func TestHasTags(t *testing.T) {
	t.Parallel()

	bs := mustParse(t, firstDoc)
	assert.False(t, blocks.HasTags(bs))

	bs[0].Info().Tag = "x"
	assert.True(t, blocks.HasTags(bs))
}
