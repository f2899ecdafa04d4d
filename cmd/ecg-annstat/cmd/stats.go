package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/tsv"

	"github.com/cardiokit/ecg/annotation"
	"github.com/cardiokit/ecg/interval"
)

type statsFlags struct {
	loadFlags
	window *string
}

func loadUnion(flags loadFlags, path string) (annotation.RhythmUnion, error) {
	return annotation.NewRhythmUnionFromPath(path, annotation.NewRhythmOpts{
		OneBasedInput: *flags.oneBased,
		Invert:        *flags.invert,
	})
}

// windowBounds resolves the -window flag against one loaded file.  An
// explicit range is used as is; the bare-label form spans that label's
// regions in this particular file.
func windowBounds(u *annotation.RhythmUnion, window string) (interval.Interval[annotation.SamplePos], error) {
	entry, err := annotation.ParseWindowString(window)
	if err != nil {
		return interval.Interval[annotation.SamplePos]{}, err
	}
	if entry.Start != 0 || entry.End != interval.SamplePosMax-1 {
		return interval.Interval[annotation.SamplePos]{Start: entry.Start, End: entry.End}, nil
	}
	set := u.LabelSet(entry.Label)
	if len(set) == 0 {
		return interval.Interval[annotation.SamplePos]{}, fmt.Errorf("label %q has no regions", entry.Label)
	}
	return interval.Interval[annotation.SamplePos]{Start: set[0].Start, End: set[len(set)-1].End}, nil
}

func stats(w io.Writer, flags statsFlags, paths []string) error {
	out := tsv.NewWriter(w)
	out.WriteString("PATH\tLABEL\tREGIONS\tSAMPLES")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, path := range paths {
		u, err := loadUnion(flags.loadFlags, path)
		if err != nil {
			return err
		}
		bounds := interval.Interval[annotation.SamplePos]{Start: 0, End: interval.SamplePosMax}
		if *flags.window != "" {
			if bounds, err = windowBounds(&u, *flags.window); err != nil {
				return fmt.Errorf("%s: %v", path, err)
			}
		}
		for _, label := range u.Labels() {
			set := u.LabelSet(label).Clip(bounds)
			out.WriteString(path)
			out.WriteString(label)
			out.WriteUint32(uint32(len(set)))
			out.WriteUint32(uint32(set.Length()))
			if err := out.EndLine(); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}
