package metrics

import (
	"fmt"

	"github.com/cardiokit/ecg/util"
)

// BeatSymbolError scores a detector's beat-type symbol sequence (one
// symbol per detected beat, e.g. AAMI N/S/V/F/Q) against the reference
// sequence, returning the mean per-symbol edit error.  The sequences are
// compared in consecutive windows of `window` symbols.  Within a window
// the symbols downstream of it are available as context, so a missed beat
// that shifts later symbols into view costs one deletion instead of
// cascading mismatches; the unpaired tails after the last full window are
// compared directly.
func BeatSymbolError(reference, predicted string, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("metrics.BeatSymbolError: invalid window %d", window)
	}
	var total, count int
	i := 0
	for ; i+window <= len(reference) && i+window <= len(predicted); i += window {
		// At most `window` deletions can shift downstream symbols into one
		// window, so that much context is enough.
		a1 := downstreamSymbols(reference, i+window, window)
		a2 := downstreamSymbols(predicted, i+window, window)
		total += util.WindowDistance(reference[i:i+window], predicted[i:i+window], a1, a2)
		count += window
	}
	if tail1, tail2 := reference[i:], predicted[i:]; len(tail1) > 0 || len(tail2) > 0 {
		total += util.Distance(tail1, tail2)
		if len(tail1) > len(tail2) {
			count += len(tail1)
		} else {
			count += len(tail2)
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(total) / float64(count), nil
}

func downstreamSymbols(s string, from, n int) string {
	if from >= len(s) {
		return ""
	}
	if from+n < len(s) {
		return s[from : from+n]
	}
	return s[from:]
}
