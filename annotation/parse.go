package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cardiokit/ecg/interval"
)

// ParseWindowString parses a window string of one of the forms
//   [label]:[1-based first sample]-[last sample]
//   [label]:[1-based sample]
//   [label]
// returning a label and 0-based window boundaries.  The window
// [0, SamplePosMax - 1] is returned if there is no positional restriction.
func ParseWindowString(window string) (result Entry, err error) {
	if len(window) == 0 {
		err = fmt.Errorf("annotation.ParseWindowString: empty window string")
		return
	}
	colonPos := strings.IndexByte(window, ':')
	if colonPos == -1 {
		result.Label = window
		result.Start = 0
		result.End = interval.SamplePosMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("annotation.ParseWindowString: empty label")
		return
	}
	result.Label = window[0:colonPos]
	rangeStr := window[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("annotation.ParseWindowString: sample %s in window string out of range", rangeStr)
			return
		}
		result.Start = SamplePos(pos1 - 1)
		result.End = SamplePos(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("annotation.ParseWindowString: sample %s in window string out of range", start1Str)
		return
	}
	var end0 int
	if end0, err = strconv.Atoi(endStr); err != nil {
		return
	}
	// We may as well prohibit end0 == SamplePosMax so that the endpoint
	// slices are guaranteed to contain no repeats.  This means
	// ParseInt(., 10, 32) doesn't quite do the right thing, so Atoi is used
	// above.
	if end0 <= start1 || end0 >= interval.SamplePosMax {
		err = fmt.Errorf("annotation.ParseWindowString: invalid range string %s", rangeStr)
		return
	}
	result.Start = SamplePos(start1 - 1)
	result.End = SamplePos(end0)
	return
}
