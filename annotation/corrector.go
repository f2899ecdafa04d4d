package annotation

import (
	"strings"

	"github.com/grailbio/base/log"

	"github.com/cardiokit/ecg/util"
)

// LabelCorrector implements "snap" correction of rhythm labels.  A label L
// is snappable if there is a known label L1 that is closer to L than all
// other known labels, in terms of Levenshtein edit distance, and within
// maxEdits.  Annotation files in the wild write the same rhythm a few ways
// ("(AFIB", "AFIB:", "afib"); snapping folds those onto one vocabulary
// instead of growing a label per spelling.
type LabelCorrector struct {
	known    []string
	maxEdits int
}

// NewLabelCorrector creates a corrector for the given vocabulary.  Known
// labels are stored uppercased; maxEdits bounds how far a noisy label may
// be from its unique nearest known label and still snap.
func NewLabelCorrector(known []string, maxEdits int) *LabelCorrector {
	c := &LabelCorrector{
		known:    make([]string, 0, len(known)),
		maxEdits: maxEdits,
	}
	for _, label := range known {
		c.known = append(c.known, strings.ToUpper(label))
	}
	return c
}

// normalizeLabel strips the aux-note decorations rhythm annotations carry:
// a leading '(' (the WFDB rhythm-change convention), trailing ':', and
// surrounding whitespace.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.TrimPrefix(label, "(")
	label = strings.TrimSuffix(label, ":")
	return strings.ToUpper(label)
}

// Correct returns the known label the input snaps to, and true if there is
// exactly one known label closest to the normalized input within the edit
// budget.  Otherwise it returns the normalized input and false.
//
// Correct does no memoization, so a LabelCorrector is safe for concurrent
// use by parallel record loaders.
func (c *LabelCorrector) Correct(label string) (corrected string, ok bool) {
	normalized := normalizeLabel(label)
	best := c.maxEdits + 1
	nBest := 0
	for _, known := range c.known {
		if known == normalized {
			return known, true
		}
		d := util.Distance(normalized, known)
		if d < best {
			best = d
			corrected = known
			nBest = 1
		} else if d == best && d <= c.maxEdits {
			nBest++
		}
	}
	if nBest == 1 {
		log.Debug.Printf("label %q snaps to %q with cost %d", label, corrected, best)
		return corrected, true
	}
	return normalized, false
}
