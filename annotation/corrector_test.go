package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelCorrector(t *testing.T) {
	c := NewLabelCorrector([]string{"N", "AFIB", "AFL", "SVTA", "VT"}, 2)

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"AFIB", "AFIB", true},
		{"afib", "AFIB", true},
		{"(AFIB", "AFIB", true}, // MIT-BIH style aux prefix
		{"N:", "N", true},
		{" AFL ", "AFL", true},
		{"AFIV", "AFIB", true}, // one substitution
		{"AFIBB", "AFIB", true},
		{"VTA", "", false}, // ties between VT and SVTA
		{"NSVB", "", false},
		{"JUNKLABEL", "", false},
	}
	for _, tt := range tests {
		got, ok := c.Correct(tt.in)
		assert.Equal(t, tt.ok, ok, "label %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "label %q", tt.in)
		}
	}
}

func TestLabelCorrectorZeroEdits(t *testing.T) {
	// maxEdits == 0 only normalizes; it never snaps.
	c := NewLabelCorrector([]string{"N", "AFIB"}, 0)
	got, ok := c.Correct("(afib")
	require.True(t, ok)
	assert.Equal(t, "AFIB", got)
	_, ok = c.Correct("AFIV")
	assert.False(t, ok)
}

func TestCorrectorDuringLoad(t *testing.T) {
	c := NewLabelCorrector([]string{"N", "AFIB"}, 1)
	in := "(N 0 1000\n(afib 1000 3000\nN 3000 5000\n"
	u, err := NewRhythmUnion(strings.NewReader(in), NewRhythmOpts{Corrector: c})
	require.NoError(t, err)
	assert.Equal(t, []SamplePos{0, 1000, 3000, 5000}, u.labelMap["N"])
	assert.Equal(t, []SamplePos{1000, 3000}, u.labelMap["AFIB"])

	_, err = NewRhythmUnion(strings.NewReader("ZZZZ 0 100\n"), NewRhythmOpts{Corrector: c})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unrecognized label")
	}
}
