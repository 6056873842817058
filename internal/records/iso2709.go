package records

import (
	"fmt"
	"strconv"
)

// Decoder converts raw field/subfield bytes into a Unicode string. ISO
// 2709 files may be encoded in either the legacy ANSI code page or
// UTF-8; the caller supplies the matching decoder (encoding.FromAnsi or
// encoding.FromUtf).
type Decoder func([]byte) string

// ParseISO2709 parses a single record from an ISO 2709 buffer: the
// first 5 digits give the record length, the record must end
// with the ISO 2709 terminator byte 0x1D, and the 24-byte marker's
// offsets 20/21/22 give the directory entry's length-of-length,
// length-of-offset, and additional-data-length.
func ParseISO2709(data []byte, decode Decoder) (Record, error) {
	const isoTerminator = 0x1D
	const fieldTerminator = 0x1E
	const subfieldDelim = 0x1F

	if len(data) < 24 {
		return Record{}, fmt.Errorf("irbis: iso2709 record too short: %d bytes", len(data))
	}

	recLen, err := strconv.Atoi(string(data[0:5]))
	if err != nil {
		return Record{}, fmt.Errorf("irbis: iso2709 bad record length: %w", err)
	}
	if recLen > len(data) {
		return Record{}, fmt.Errorf("irbis: iso2709 record length %d exceeds buffer of %d", recLen, len(data))
	}
	if data[recLen-1] != isoTerminator {
		return Record{}, fmt.Errorf("irbis: iso2709 record missing terminator byte")
	}

	lengthOfLength := int(data[20] - '0')
	lengthOfOffset := int(data[21] - '0')
	lengthOfAdditional := int(data[22] - '0')
	entryWidth := lengthOfLength + lengthOfOffset + lengthOfAdditional + 3 // +3 for the tag

	baseAddress, err := strconv.Atoi(string(data[12:17]))
	if err != nil {
		return Record{}, fmt.Errorf("irbis: iso2709 bad base address: %w", err)
	}

	var rec Record

	dirStart := 24
	pos := dirStart
	for pos < len(data) && data[pos] != fieldTerminator {
		if pos+entryWidth > len(data) {
			return Record{}, fmt.Errorf("irbis: iso2709 directory entry truncated")
		}
		entry := data[pos : pos+entryWidth]
		tag, err := strconv.Atoi(string(entry[0:3]))
		if err != nil {
			return Record{}, fmt.Errorf("irbis: iso2709 bad directory tag: %w", err)
		}
		fieldLen, err := strconv.Atoi(string(entry[3 : 3+lengthOfLength]))
		if err != nil {
			return Record{}, fmt.Errorf("irbis: iso2709 bad directory length: %w", err)
		}
		fieldOffset, err := strconv.Atoi(string(entry[3+lengthOfLength : 3+lengthOfLength+lengthOfOffset]))
		if err != nil {
			return Record{}, fmt.Errorf("irbis: iso2709 bad directory offset: %w", err)
		}

		start := baseAddress + fieldOffset
		end := start + fieldLen
		if start < 0 || end > len(data) {
			return Record{}, fmt.Errorf("irbis: iso2709 field %d out of range", tag)
		}
		fieldData := data[start:end]
		// Trim a trailing field terminator, if present.
		if n := len(fieldData); n > 0 && fieldData[n-1] == fieldTerminator {
			fieldData = fieldData[:n-1]
		}

		field := Field{Tag: tag}
		if tag < 10 {
			field.Value = decode(fieldData)
		} else {
			// Skip the two leading indicator bytes (the trailing field
			// terminator was trimmed above) and split the remainder on
			// the subfield delimiter.
			inner := fieldData
			if len(inner) >= 2 {
				inner = inner[2:]
			}
			chunks := splitBytes(inner, subfieldDelim)
			for _, chunk := range chunks {
				if len(chunk) == 0 {
					continue
				}
				field.Subfields = append(field.Subfields, Subfield{
					Code:  chunk[0],
					Value: decode(chunk[1:]),
				})
			}
		}
		rec.Fields = append(rec.Fields, field)

		pos += entryWidth
	}

	return rec, nil
}

func splitBytes(data []byte, delim byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range data {
		if c == delim {
			out = append(out, data[start:i])
			start = i + 1
		}
	}
	out = append(out, data[start:])
	return out
}
