// Package store reads IRBIS64 direct-access files (XRF and MST) from
// disk: fixed-width binary records addressed by MFN, all integers
// encoded big-endian (C10).
//
// XRF file layout (12 bytes per record, record N at offset (N-1)*12):
//
//	Low:    int32 (4 bytes) - low 32 bits of the MST offset
//	High:   int32 (4 bytes) - high 32 bits of the MST offset
//	Status: int32 (4 bytes) - record status bitset
package store

import (
	"encoding/binary"
	"fmt"
	"io"
)

// XrfRecordSize is the byte width of one XRF entry.
const XrfRecordSize = 12

// XrfRecord is one cross-reference entry: the MST file offset (split
// into low/high 32-bit halves) and status of the record it addresses.
type XrfRecord struct {
	Low    int32
	High   int32
	Status int32
}

// Offset reconstructs the 64-bit MST offset from the low/high halves.
func (r XrfRecord) Offset() int64 {
	return int64(uint32(r.High))<<32 | int64(uint32(r.Low))
}

// XrfOffset returns the byte offset of record mfn (1-based) within an
// XRF file.
func XrfOffset(mfn int) int64 {
	return int64(mfn-1) * XrfRecordSize
}

// ReadXrfRecord reads and decodes the XRF entry for mfn from r, which
// must support seeking to arbitrary offsets.
func ReadXrfRecord(r io.ReaderAt, mfn int) (XrfRecord, error) {
	buf := make([]byte, XrfRecordSize)
	n, err := r.ReadAt(buf, XrfOffset(mfn))
	if err != nil && err != io.EOF {
		return XrfRecord{}, err
	}
	if n < XrfRecordSize {
		return XrfRecord{}, fmt.Errorf("irbis: short xrf record for mfn %d", mfn)
	}

	return XrfRecord{
		Low:    int32(binary.BigEndian.Uint32(buf[0:4])),
		High:   int32(binary.BigEndian.Uint32(buf[4:8])),
		Status: int32(binary.BigEndian.Uint32(buf[8:12])),
	}, nil
}
