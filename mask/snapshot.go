package mask

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/grailbio/base/file"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// Snapshot file layout, all integers little-endian:
//
//	[8]  magic
//	[8]  uncompressed mask length
//	[4]  compressed payload length
//	[n]  snappy-compressed mask bytes
//	[8]  HighwayHash-64 of the compressed payload
//
// The trailing checksum catches truncation as well as corruption, since a
// truncated file loses the hash bytes themselves.
const snapshotMagic = "ECGMSK01"

// The hash key is fixed: snapshots need tamper-evidence against storage
// rot, not authentication.
var snapshotHashKey = [highwayhash.Size]byte{
	0x65, 0x63, 0x67, 0x6d, 0x61, 0x73, 0x6b, 0x30,
	0x9e, 0x37, 0x79, 0xb9, 0x7f, 0x4a, 0x7c, 0x15,
	0xf3, 0x9c, 0xc0, 0x60, 0x5c, 0xed, 0xc8, 0x34,
	0x10, 0x82, 0x27, 0x6b, 0xf3, 0xa2, 0x72, 0x51,
}

// WriteSnapshot saves a mask to path, on any storage system the
// grailbio/base/file package can address.
func WriteSnapshot(ctx context.Context, path string, m []byte) (err error) {
	compressed := snappy.Encode(nil, m)
	header := make([]byte, 0, len(snapshotMagic)+12)
	header = append(header, snapshotMagic...)
	header = binary.LittleEndian.AppendUint64(header, uint64(len(m)))
	header = binary.LittleEndian.AppendUint32(header, uint32(len(compressed)))
	var sum [8]byte
	binary.LittleEndian.PutUint64(sum[:], highwayhash.Sum64(compressed, snapshotHashKey[:]))

	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "mask.WriteSnapshot %s", path)
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "mask.WriteSnapshot %s", path)
		}
	}()
	w := out.Writer(ctx)
	for _, chunk := range [][]byte{header, compressed, sum[:]} {
		if _, err = w.Write(chunk); err != nil {
			return errors.Wrapf(err, "mask.WriteSnapshot %s", path)
		}
	}
	return
}

// ReadSnapshot loads a mask previously saved by WriteSnapshot, verifying
// the embedded checksum.
func ReadSnapshot(ctx context.Context, path string) (m []byte, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "mask.ReadSnapshot %s", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "mask.ReadSnapshot %s", path)
		}
	}()
	data, err := io.ReadAll(in.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "mask.ReadSnapshot %s", path)
	}
	if len(data) < len(snapshotMagic)+20 || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return nil, errors.Errorf("mask.ReadSnapshot %s: not a mask snapshot", path)
	}
	rest := data[len(snapshotMagic):]
	maskLen := binary.LittleEndian.Uint64(rest[:8])
	compLen := binary.LittleEndian.Uint32(rest[8:12])
	rest = rest[12:]
	if uint64(len(rest)) != uint64(compLen)+8 {
		return nil, errors.Errorf("mask.ReadSnapshot %s: truncated snapshot", path)
	}
	compressed := rest[:compLen]
	wantSum := binary.LittleEndian.Uint64(rest[compLen:])
	if sum := highwayhash.Sum64(compressed, snapshotHashKey[:]); sum != wantSum {
		return nil, errors.Errorf("mask.ReadSnapshot %s: checksum mismatch (%x, expected %x)", path, sum, wantSum)
	}
	if m, err = snappy.Decode(nil, compressed); err != nil {
		return nil, errors.Wrapf(err, "mask.ReadSnapshot %s", path)
	}
	if uint64(len(m)) != maskLen {
		return nil, errors.Errorf("mask.ReadSnapshot %s: length mismatch (%d, expected %d)", path, len(m), maskLen)
	}
	return
}
