package annotation

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"

	"github.com/cardiokit/ecg/interval"
)

// SamplePos is the coordinate type for annotation boundaries.
type SamplePos = interval.SamplePos

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' '
// is treated as a delimiter.  Annotation lines only need their first three
// columns, so this is deliberately cheaper than the standard library
// string-split functions.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewRhythmOpts defines behavior of this package's annotation-loading
// function(s).
type NewRhythmOpts struct {
	// ClassMap enables class-ID-based lookup: it assigns each rhythm label
	// a dense class index (as a training mask would).  Labels present in
	// ClassMap but absent from the annotation stream get an empty region,
	// or the full [0, SamplePosMax) region when Invert is set.
	ClassMap map[string]int
	// Invert causes the complement of each label's region-union to be
	// returned.  The complement extends from sample 0 to SamplePosMax - 1
	// inclusive.
	Invert bool
	// OneBasedInput interprets the annotation boundaries as one-based
	// [start, end] instead of the usual zero-based [start, end).
	OneBasedInput bool
	// Corrector, if non-nil, snaps unknown labels to a known vocabulary
	// before they are recorded (see LabelCorrector).  Lines whose label
	// cannot be snapped fail the load.
	Corrector *LabelCorrector
}

// RhythmUnion is a collection of per-label length-2N endpoint sequences,
// where N is the number of disjoint regions carrying that label: the start
// of region #k (numbering from zero) is in element [2k] and the end in
// [2k+1], stored in increasing order.  Advantages of this representation
// over a sequence of {start, end} structs include simpler inversion code
// and reuse of the interval package's endpoint search and scan helpers.
type RhythmUnion struct {
	// labelMap is a rhythm-label-keyed map with disjoint-region-set values.
	// Always initialized.
	labelMap map[string][]SamplePos
	// classMap is an optional slice of disjoint-region-sets indexed by the
	// dense class ID from NewRhythmOpts.ClassMap.  Only initialized when
	// the RhythmUnion was built with ClassMap set.
	classMap [][]SamplePos
	// lastIntervals points to the region set for the most recently queried
	// label.  This is a minor performance optimization for the
	// sample-at-a-time queries mask generation issues.
	lastIntervals []SamplePos
	// lastLabel is the name of the last queried-by-label rhythm.  If it's
	// nonempty, it must be in sync with lastIntervals.
	lastLabel string
	// lastClassID is the ID of the last queried-by-class rhythm.  If it's
	// nonnegative, it must be in sync with lastIntervals.
	lastClassID int
	// lastPosPlus1 is 1 plus the last spot-queried position.
	lastPosPlus1 SamplePos
	// lastIdx is SearchSamplePos(lastIntervals, lastPosPlus1).  Cached to
	// accelerate sequential queries.
	lastIdx interval.EndpointIndex
	// isSequential is true if all queries since the last label change have
	// been in order of nondecreasing position.
	isSequential bool
}

func initRhythmUnion() (u RhythmUnion) {
	u.labelMap = make(map[string][]SamplePos)
	u.lastLabel = ""
	u.lastClassID = -1
	return
}

func (u *RhythmUnion) labelToClassData(classMap map[string]int, invert bool) error {
	nClass := 0
	for label, id := range classMap {
		if id < 0 {
			return fmt.Errorf("annotation: negative class ID %d for label %q", id, label)
		}
		if id+1 > nClass {
			nClass = id + 1
		}
	}
	u.classMap = make([][]SamplePos, nClass)
	for label, id := range classMap {
		if u.classMap[id] != nil {
			return fmt.Errorf("annotation: duplicate class ID %d (label %q)", id, label)
		}
		if regions := u.labelMap[label]; regions != nil {
			u.classMap[id] = regions
		} else if invert {
			u.classMap[id] = []SamplePos{0, interval.SamplePosMax}
		}
	}
	return nil
}

// pending is the last not-yet-flushed region for one label during a scan.
type pending struct {
	start, end SamplePos
}

func scanRhythmUnion(scanner *bufio.Scanner, opts NewRhythmOpts) (u RhythmUnion, err error) {
	u = initRhythmUnion()

	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}

	var tokens [3][]byte
	open := make(map[string]*pending)

	lineIdx := 0
	totSamples := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			err = fmt.Errorf("annotation.scanRhythmUnion: line %d has fewer tokens than expected", lineIdx)
			return
		}

		label := string(tokens[0])
		if opts.Corrector != nil {
			var ok bool
			if label, ok = opts.Corrector.Correct(label); !ok {
				err = fmt.Errorf("annotation.scanRhythmUnion: unrecognized label %s on line %d", tokens[0], lineIdx)
				return
			}
		}

		var parsedStart int
		if parsedStart, err = strconv.Atoi(gunsafe.BytesToString(tokens[1])); err != nil {
			return
		}
		parsedStart -= startSubtract
		if parsedStart < 0 {
			err = fmt.Errorf("annotation.scanRhythmUnion: negative start coordinate %s on line %d", tokens[1], lineIdx)
			return
		}
		start := SamplePos(parsedStart)

		var parsedEnd int
		if parsedEnd, err = strconv.Atoi(gunsafe.BytesToString(tokens[2])); err != nil {
			return
		}
		if (parsedEnd < parsedStart) || (parsedEnd >= interval.SamplePosMax) {
			err = fmt.Errorf("annotation.scanRhythmUnion: invalid coordinate pair on line %d", lineIdx)
			return
		}
		end := SamplePos(parsedEnd)
		if end == start {
			// Distinguish between 'mentioned' labels without any covered
			// samples and unmentioned labels.
			if _, found := u.labelMap[label]; !found && open[label] == nil {
				u.labelMap[label] = []SamplePos{}
			}
			continue
		}

		prev := open[label]
		if prev == nil {
			open[label] = &pending{start: start, end: end}
			totSamples += int(end - start)
			continue
		}
		if start > prev.end {
			// New region doesn't touch the previous one for this label, so
			// the previous one is final.
			u.labelMap[label] = append(u.labelMap[label], prev.start, prev.end)
			prev.start = start
			prev.end = end
			totSamples += int(end - start)
		} else {
			if start < prev.start {
				err = fmt.Errorf("annotation.scanRhythmUnion: unsorted input for label %s on line %d", label, lineIdx)
				return
			}
			// Regions overlap or touch, merge them.
			if end > prev.end {
				totSamples += int(end - prev.end)
				prev.end = end
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	for label, prev := range open {
		u.labelMap[label] = append(u.labelMap[label], prev.start, prev.end)
	}
	if opts.Invert {
		for label, regions := range u.labelMap {
			inverted := make([]SamplePos, 0, len(regions)+2)
			if len(regions) == 0 || regions[0] != 0 {
				inverted = append(inverted, 0)
			} else {
				regions = regions[1:]
			}
			inverted = append(inverted, regions...)
			inverted = append(inverted, interval.SamplePosMax)
			u.labelMap[label] = inverted
		}
	}
	log.Printf("annotation loaded, %d sample(s) covered.\n", totSamples)
	return
}

// NewRhythmUnion loads the labeled regions from a sorted (by start
// coordinate) annotation stream, merging touching/overlapping regions of
// the same label and eliminating empty ones in the process.  A RhythmUnion
// is returned.
func NewRhythmUnion(reader io.Reader, opts NewRhythmOpts) (u RhythmUnion, err error) {
	scanner := bufio.NewScanner(reader)
	if u, err = scanRhythmUnion(scanner, opts); err != nil {
		return
	}
	if opts.ClassMap != nil {
		err = u.labelToClassData(opts.ClassMap, opts.Invert)
	}
	return
}

// NewRhythmUnionFromPath is a wrapper for NewRhythmUnion that takes a path
// instead of an io.Reader.
func NewRhythmUnionFromPath(path string, opts NewRhythmOpts) (u RhythmUnion, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return NewRhythmUnion(reader, opts)
}

// Entry represents a single labeled region, with 0-based coordinates.
type Entry struct {
	Label string
	Start SamplePos
	End   SamplePos
}

// NewRhythmUnionFromEntries initializes a RhythmUnion from an []Entry
// sorted by Start.  This ignores opts.OneBasedInput, since Entry.Start is
// defined to be zero-based.
func NewRhythmUnionFromEntries(entries []Entry, opts NewRhythmOpts) (u RhythmUnion, err error) {
	u = initRhythmUnion()
	open := make(map[string]*pending)
	for _, entry := range entries {
		label := entry.Label
		if opts.Corrector != nil {
			var ok bool
			if label, ok = opts.Corrector.Correct(label); !ok {
				err = fmt.Errorf("annotation.NewRhythmUnionFromEntries: unrecognized label %q", entry.Label)
				return
			}
		}
		if entry.Start < 0 {
			err = fmt.Errorf("annotation.NewRhythmUnionFromEntries: negative start coordinate")
			return
		}
		if (entry.End < entry.Start) || (entry.End >= interval.SamplePosMax) {
			err = fmt.Errorf("annotation.NewRhythmUnionFromEntries: invalid coordinate pair [%d, %d)", entry.Start, entry.End)
			return
		}
		if entry.End == entry.Start {
			if _, found := u.labelMap[label]; !found && open[label] == nil {
				u.labelMap[label] = []SamplePos{}
			}
			continue
		}
		prev := open[label]
		if prev == nil {
			open[label] = &pending{start: entry.Start, end: entry.End}
			continue
		}
		if entry.Start > prev.end {
			u.labelMap[label] = append(u.labelMap[label], prev.start, prev.end)
			prev.start = entry.Start
			prev.end = entry.End
		} else {
			if entry.Start < prev.start {
				err = fmt.Errorf("annotation.NewRhythmUnionFromEntries: unsorted input for label %q", label)
				return
			}
			if entry.End > prev.end {
				prev.end = entry.End
			}
		}
	}
	for label, prev := range open {
		u.labelMap[label] = append(u.labelMap[label], prev.start, prev.end)
	}
	if opts.Invert {
		for label, regions := range u.labelMap {
			inverted := make([]SamplePos, 0, len(regions)+2)
			if len(regions) == 0 || regions[0] != 0 {
				inverted = append(inverted, 0)
			} else {
				regions = regions[1:]
			}
			inverted = append(inverted, regions...)
			inverted = append(inverted, interval.SamplePosMax)
			u.labelMap[label] = inverted
		}
	}
	if opts.ClassMap != nil {
		err = u.labelToClassData(opts.ClassMap, opts.Invert)
	}
	return
}

// ContainsByClass checks whether the (0-based) sample range [pos, pos+1)
// is contained within the given class's region, where the class is
// specified by NewRhythmOpts.ClassMap ID.
func (u *RhythmUnion) ContainsByClass(classID int, pos SamplePos) bool {
	posPlus1 := pos + 1
	if classID != u.lastClassID {
		u.lastClassID = classID
		// lastLabel must be either empty or the name of this class's label;
		// otherwise lastIntervals is out of sync if the next query is by
		// label.
		u.lastLabel = ""

		// just let this error out the usual way if the RhythmUnion was not
		// initialized with class info.
		u.lastIntervals = u.classMap[classID]
		// Force use of SearchSamplePos() on the first query for a class.
		if u.lastIntervals == nil {
			return false
		}
		u.lastIdx = interval.SearchSamplePos(u.lastIntervals, posPlus1)
		u.lastPosPlus1 = posPlus1
		u.isSequential = true
		return u.lastIdx.Contained()
	}
	if u.lastIntervals == nil {
		return false
	}
	if u.isSequential {
		if posPlus1 >= u.lastPosPlus1 {
			u.lastIdx = interval.ExpsearchSamplePos(u.lastIntervals, posPlus1, u.lastIdx)
			u.lastPosPlus1 = posPlus1
			return u.lastIdx.Contained()
		}
		u.isSequential = false
	}
	return interval.SearchSamplePos(u.lastIntervals, posPlus1).Contained()
}

// ContainsByLabel checks whether the (0-based) sample range [pos, pos+1)
// is contained within the given label's region.
func (u *RhythmUnion) ContainsByLabel(label string, pos SamplePos) bool {
	posPlus1 := pos + 1
	if label != u.lastLabel {
		u.lastLabel = label
		u.lastClassID = -1
		u.lastIntervals = u.labelMap[label]
		// Force use of SearchSamplePos() on the first query for a label.
		if u.lastIntervals == nil {
			return false
		}
		u.lastIdx = interval.SearchSamplePos(u.lastIntervals, posPlus1)
		u.lastPosPlus1 = posPlus1
		u.isSequential = true
		return u.lastIdx.Contained()
	}
	if u.lastIntervals == nil {
		return false
	}
	if u.isSequential {
		if posPlus1 >= u.lastPosPlus1 {
			u.lastIdx = interval.ExpsearchSamplePos(u.lastIntervals, posPlus1, u.lastIdx)
			u.lastPosPlus1 = posPlus1
			return u.lastIdx.Contained()
		}
		u.isSequential = false
	}
	return interval.SearchSamplePos(u.lastIntervals, posPlus1).Contained()
}

// Intersects checks whether [startPos, limitPos) intersects the given
// label's region.  It panics if limitPos isn't after startPos.
func (u *RhythmUnion) Intersects(label string, startPos, limitPos SamplePos) bool {
	if limitPos <= startPos {
		panic("internal error: RhythmUnion.Intersects requires limitPos > startPos")
	}
	regions := u.labelMap[label]
	if regions == nil {
		return false
	}
	idxStart := interval.SearchSamplePos(regions, startPos+1)
	if idxStart.Contained() {
		return true
	}
	// Not inside a region: check whether the next region starts before the
	// query window ends.
	return !idxStart.Finished(regions) && limitPos > regions[idxStart.Begin()]
}

// Labels returns the annotated labels in sorted order.
func (u *RhythmUnion) Labels() []string {
	labels := make([]string, 0, len(u.labelMap))
	for label := range u.labelMap {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// LabelSet returns the given label's region as an interval set.  The
// result is nil for unannotated labels.
func (u *RhythmUnion) LabelSet(label string) interval.Set[SamplePos] {
	regions := u.labelMap[label]
	if regions == nil {
		return nil
	}
	return interval.SetFromEndpoints(regions)
}

// ClassSet is LabelSet, indexed by NewRhythmOpts.ClassMap ID.
func (u *RhythmUnion) ClassSet(classID int) interval.Set[SamplePos] {
	if classID < 0 || classID >= len(u.classMap) || u.classMap[classID] == nil {
		return nil
	}
	return interval.SetFromEndpoints(u.classMap[classID])
}

// Window restricts every label's region set to the query window
// [sampfrom, sampto).  When rebase is set, the returned coordinates are
// relative to sampfrom, the way a training example cut from the record
// would index them.
func (u *RhythmUnion) Window(sampfrom, sampto SamplePos, rebase bool) (map[string]interval.Set[SamplePos], error) {
	if sampto <= sampfrom {
		return nil, fmt.Errorf("annotation.Window: invalid window [%d, %d)", sampfrom, sampto)
	}
	bounds := interval.Interval[SamplePos]{Start: sampfrom, End: sampto}
	out := make(map[string]interval.Set[SamplePos], len(u.labelMap))
	for label := range u.labelMap {
		clipped := u.LabelSet(label).Clip(bounds)
		if rebase {
			rebased := make(interval.Set[SamplePos], len(clipped))
			for i, iv := range clipped {
				rebased[i] = interval.Interval[SamplePos]{Start: iv.Start - sampfrom, End: iv.End - sampfrom}
			}
			clipped = rebased
		}
		out[label] = clipped
	}
	return out, nil
}

// Clone returns a new RhythmUnion which shares the region sets, but has
// its own search state.
func (u *RhythmUnion) Clone() (v RhythmUnion) {
	v.labelMap = u.labelMap
	v.classMap = u.classMap
	v.lastIntervals = nil
	v.lastLabel = ""
	v.lastClassID = -1
	return
}
