package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/vcontext"

	"github.com/cardiokit/ecg/annotation"
	"github.com/cardiokit/ecg/mask"
)

type maskFlags struct {
	loadFlags
	classes    *string
	background *int
	from       *int
	to         *int
}

func parseClassAssignments(spec string) (map[string]int, error) {
	if spec == "" {
		return nil, fmt.Errorf("-classes is required")
	}
	classOf := map[string]int{}
	for _, assignment := range strings.Split(spec, ",") {
		eq := strings.IndexByte(assignment, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed class assignment %q", assignment)
		}
		label := assignment[:eq]
		id, err := strconv.Atoi(assignment[eq+1:])
		if err != nil {
			return nil, fmt.Errorf("malformed class assignment %q: %v", assignment, err)
		}
		if _, found := classOf[label]; found {
			return nil, fmt.Errorf("duplicate class assignment for label %q", label)
		}
		classOf[label] = id
	}
	return classOf, nil
}

func renderMask(flags maskFlags, annPath, outPath string) error {
	classOf, err := parseClassAssignments(*flags.classes)
	if err != nil {
		return err
	}
	if *flags.to <= *flags.from {
		return fmt.Errorf("-to (%d) must be greater than -from (%d)", *flags.to, *flags.from)
	}
	u, err := loadUnion(flags.loadFlags, annPath)
	if err != nil {
		return err
	}
	m, err := mask.FromRhythms(&u, classOf,
		annotation.SamplePos(*flags.from), annotation.SamplePos(*flags.to), *flags.background)
	if err != nil {
		return err
	}
	return mask.WriteSnapshot(vcontext.Background(), outPath, m)
}
