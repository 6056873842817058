package store

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MstLeaderSize is the byte width of one MST record leader: eight
// named int32 fields plus four reserved bytes to round out to 36.
const MstLeaderSize = 36

// MstLeader is the fixed header preceding every MST record.
type MstLeader struct {
	Mfn      int32
	Length   int32
	PrevLow  int32
	PrevHigh int32
	Base     int32
	Nvf      int32
	Version  int32
	Status   int32
}

// PreviousOffset reconstructs the 64-bit offset of the record's
// previous version from its low/high halves.
func (l MstLeader) PreviousOffset() int64 {
	return int64(uint32(l.PrevHigh))<<32 | int64(uint32(l.PrevLow))
}

// ReadMstLeader decodes an MstLeader from the first MstLeaderSize bytes
// read at offset.
func ReadMstLeader(r io.ReaderAt, offset int64) (MstLeader, error) {
	buf := make([]byte, MstLeaderSize)
	n, err := r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return MstLeader{}, err
	}
	if n < MstLeaderSize {
		return MstLeader{}, fmt.Errorf("irbis: short mst leader at offset %d", offset)
	}

	return MstLeader{
		Mfn:      int32(binary.BigEndian.Uint32(buf[0:4])),
		Length:   int32(binary.BigEndian.Uint32(buf[4:8])),
		PrevLow:  int32(binary.BigEndian.Uint32(buf[8:12])),
		PrevHigh: int32(binary.BigEndian.Uint32(buf[12:16])),
		Base:     int32(binary.BigEndian.Uint32(buf[16:20])),
		Nvf:      int32(binary.BigEndian.Uint32(buf[20:24])),
		Version:  int32(binary.BigEndian.Uint32(buf[24:28])),
		Status:   int32(binary.BigEndian.Uint32(buf[28:32])),
	}, nil
}

// MstDictionaryEntrySize is the byte width of one dictionary entry:
// tag, position, length, each a big-endian int32.
const MstDictionaryEntrySize = 12

// MstDictionaryEntry locates one field's raw body within the record's
// data area.
type MstDictionaryEntry struct {
	Tag      int32
	Position int32
	Length   int32
}

// ReadMstDictionary decodes count consecutive dictionary entries
// starting at offset.
func ReadMstDictionary(r io.ReaderAt, offset int64, count int) ([]MstDictionaryEntry, error) {
	buf := make([]byte, MstDictionaryEntrySize*count)
	n, err := r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n < len(buf) {
		return nil, fmt.Errorf("irbis: short mst dictionary at offset %d", offset)
	}

	entries := make([]MstDictionaryEntry, count)
	for i := range entries {
		b := buf[i*MstDictionaryEntrySize:]
		entries[i] = MstDictionaryEntry{
			Tag:      int32(binary.BigEndian.Uint32(b[0:4])),
			Position: int32(binary.BigEndian.Uint32(b[4:8])),
			Length:   int32(binary.BigEndian.Uint32(b[8:12])),
		}
	}
	return entries, nil
}

// MstField is one field's tag and raw (undecoded) body text, as found
// via its MstDictionaryEntry.
type MstField struct {
	Tag  int32
	Body string
}

// ReadMstField reads the raw body for entry from the record's data
// area, which begins at base.
func ReadMstField(r io.ReaderAt, base int64, entry MstDictionaryEntry) (MstField, error) {
	buf := make([]byte, entry.Length)
	n, err := r.ReadAt(buf, base+int64(entry.Position))
	if err != nil && err != io.EOF {
		return MstField{}, err
	}
	if n < len(buf) {
		return MstField{}, fmt.Errorf("irbis: short mst field body for tag %d", entry.Tag)
	}
	return MstField{Tag: entry.Tag, Body: string(buf)}, nil
}

// MstControlRecordSize is the byte width of the MST control record:
// nine big-endian int32 fields.
const MstControlRecordSize = 36

// MstControlRecord is the file-level header at offset 0 of an MST file,
// tracking the free-record chain and record count.
type MstControlRecord struct {
	CtlMfn      int32
	NextMfn     int32
	NextPosLow  int32
	NextPosHigh int32
	MftType     int32
	RecCnt      int32
	Reserv1     int32
	Reserv2     int32
	Blocked     int32
}

// NextPosition reconstructs the 64-bit offset of the next free record.
func (c MstControlRecord) NextPosition() int64 {
	return int64(uint32(c.NextPosHigh))<<32 | int64(uint32(c.NextPosLow))
}

// ReadMstControlRecord decodes the control record at the start of an
// MST file.
func ReadMstControlRecord(r io.ReaderAt) (MstControlRecord, error) {
	buf := make([]byte, MstControlRecordSize)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return MstControlRecord{}, err
	}
	if n < MstControlRecordSize {
		return MstControlRecord{}, fmt.Errorf("irbis: short mst control record")
	}

	return MstControlRecord{
		CtlMfn:      int32(binary.BigEndian.Uint32(buf[0:4])),
		NextMfn:     int32(binary.BigEndian.Uint32(buf[4:8])),
		NextPosLow:  int32(binary.BigEndian.Uint32(buf[8:12])),
		NextPosHigh: int32(binary.BigEndian.Uint32(buf[12:16])),
		MftType:     int32(binary.BigEndian.Uint32(buf[16:20])),
		RecCnt:      int32(binary.BigEndian.Uint32(buf[20:24])),
		Reserv1:     int32(binary.BigEndian.Uint32(buf[24:28])),
		Reserv2:     int32(binary.BigEndian.Uint32(buf[28:32])),
		Blocked:     int32(binary.BigEndian.Uint32(buf[32:36])),
	}, nil
}
