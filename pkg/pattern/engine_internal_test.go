package pattern

import (
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
)

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flags Flags
		want  regexp2.RegexOptions
	}{
		{flags: FlagGlobal, want: regexp2.ECMAScript},
		{flags: FlagIgnoreCase, want: regexp2.ECMAScript | regexp2.IgnoreCase},
		{flags: FlagMultiline | FlagDotAll, want: regexp2.ECMAScript | regexp2.Multiline | regexp2.Singleline},
		{flags: FlagSticky | FlagUnicode | FlagIndices, want: regexp2.ECMAScript},
	}

	for _, tt := range tests {
		t.Run(tt.flags.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, engineOptions(tt.flags))
		})
	}
}
