package split

import (
	"fmt"
	"math"
	"sort"

	farm "github.com/dgryski/go-farm"
)

// fingerprint maps a record ID to a uniformly distributed 64-bit value.
// farmhash is fast and stable across platforms, which is what makes the
// assignments reproducible between training runs and machines.
func fingerprint(record string, seed uint64) uint64 {
	return farm.Hash64WithSeed([]byte(record), seed)
}

// TrainTest assigns each record to the test side when its fingerprint
// falls in the lowest testFraction of the hash space.  The assignment of a
// record depends only on its ID, the seed, and testFraction, so growing
// the corpus never moves previously assigned records.  Input order is
// preserved within each side.
func TrainTest(records []string, testFraction float64, seed uint64) (train, test []string, err error) {
	if testFraction < 0 || testFraction > 1 || math.IsNaN(testFraction) {
		err = fmt.Errorf("split.TrainTest: test fraction %g out of [0, 1]", testFraction)
		return
	}
	// Compare in the float domain; a uint64 threshold would overflow at
	// testFraction == 1.
	limit := testFraction * math.Ldexp(1, 64)
	for _, record := range records {
		if testFraction >= 1 || float64(fingerprint(record, seed)) < limit {
			test = append(test, record)
		} else {
			train = append(train, record)
		}
	}
	return
}

// Stratified splits the records of each label independently, putting the
// floor(n * testFraction) records with the lowest fingerprints on the test
// side (at least 1 when the label has more than one record and
// testFraction is positive).  Unlike TrainTest, the per-label counts are
// exact, at the cost that adding a record to a label can reassign that
// label's other records.  Input order is preserved within each side.
func Stratified(records []string, labelOf map[string]string, testFraction float64, seed uint64) (train, test []string, err error) {
	if testFraction < 0 || testFraction > 1 || math.IsNaN(testFraction) {
		err = fmt.Errorf("split.Stratified: test fraction %g out of [0, 1]", testFraction)
		return
	}
	byLabel := map[string][]string{}
	for _, record := range records {
		label, found := labelOf[record]
		if !found {
			err = fmt.Errorf("split.Stratified: record %q has no label", record)
			return
		}
		byLabel[label] = append(byLabel[label], record)
	}
	isTest := make(map[string]bool, len(records))
	for _, group := range byLabel {
		nTest := int(float64(len(group)) * testFraction)
		if nTest == 0 && len(group) > 1 && testFraction > 0 {
			nTest = 1
		}
		ranked := append([]string(nil), group...)
		sort.Slice(ranked, func(i, j int) bool {
			fi, fj := fingerprint(ranked[i], seed), fingerprint(ranked[j], seed)
			if fi != fj {
				return fi < fj
			}
			return ranked[i] < ranked[j]
		})
		for _, record := range ranked[:nTest] {
			isTest[record] = true
		}
	}
	for _, record := range records {
		if isTest[record] {
			test = append(test, record)
		} else {
			train = append(train, record)
		}
	}
	return
}
