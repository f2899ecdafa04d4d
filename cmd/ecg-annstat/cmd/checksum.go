package cmd

import (
	"encoding/binary"
	"fmt"
	"io"

	"blainsmith.com/go/seahash"

	"github.com/cardiokit/ecg/annotation"
)

// unionChecksum hashes the canonical form of one annotation: labels in
// sorted order, each followed by its disjoint region endpoints.  Region
// splits, ordering, and formatting in the source file do not affect the
// result.
func unionChecksum(u *annotation.RhythmUnion) uint64 {
	h := seahash.New()
	var buf [4]byte
	for _, label := range u.Labels() {
		_, _ = io.WriteString(h, label)
		_, _ = h.Write([]byte{0})
		for _, iv := range u.LabelSet(label) {
			binary.LittleEndian.PutUint32(buf[:], uint32(iv.Start))
			_, _ = h.Write(buf[:])
			binary.LittleEndian.PutUint32(buf[:], uint32(iv.End))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

func checksum(w io.Writer, flags loadFlags, paths []string) error {
	for _, path := range paths {
		u, err := loadUnion(flags, path)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%016x\n", path, unionChecksum(&u)); err != nil {
			return err
		}
	}
	return nil
}
