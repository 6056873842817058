// Package records implements the IRBIS64 record model (C3): Subfield,
// Field (with on-demand embedded-field expansion), Record, and
// RawRecord, plus the line-based wire/plain-text codec and an ISO-2709
// reader (C9).
//
// Records own their fields; fields own their subfields; all containers
// are by-value slices, never shared or cyclic.
package records

import (
	"strconv"
	"strings"
)

// Status bits for Record.Status.
const (
	StatusLogicallyDeleted  = 1
	StatusPhysicallyDeleted = 2
	StatusAbsent            = 4
	StatusNonActualized     = 8
	StatusLastVersion       = 32
	StatusLocked            = 64
)

// Subfield is a single (code, value) pair within a Field. Value may be
// empty while a record is under construction. Field.Valid does not count
// an empty subfield as content; encoding does not check for emptiness
// and writes an empty subfield as a bare "^<code>".
type Subfield struct {
	Code  byte
	Value string
}

// Empty reports whether the subfield has no value.
func (s Subfield) Empty() bool {
	return len(s.Value) == 0
}

// String renders the subfield in "^<code><value>" form.
func (s Subfield) String() string {
	return "^" + string(s.Code) + s.Value
}

// Field is one bibliographic field. Tags below 10 are "fixed fields"
// and carry only Value; tags 10 and above are "variable fields" and may
// carry a leading Value plus any number of Subfields. A Field is valid
// when Tag != 0 and (Value is non-empty or at least one Subfield is
// non-empty).
type Field struct {
	Tag       int
	Value     string
	Subfields []Subfield
}

// Valid reports whether the field carries a usable tag and content.
func (f Field) Valid() bool {
	if f.Tag == 0 {
		return false
	}
	if f.Value != "" {
		return true
	}
	for _, sf := range f.Subfields {
		if !sf.Empty() {
			return true
		}
	}
	return false
}

// AddSubfield appends a subfield and returns the field, for chained
// construction.
func (f *Field) AddSubfield(code byte, value string) *Field {
	f.Subfields = append(f.Subfields, Subfield{Code: code, Value: value})
	return f
}

// Subfield returns the first subfield with the given code, or the zero
// Subfield and false if none exists.
func (f Field) Subfield(code byte) (Subfield, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf, true
		}
	}
	return Subfield{}, false
}

// FieldBody renders the field body as "<value>{^<code><value>}*", the
// shape used inside a wire/text record line after "<tag>#".
func (f Field) FieldBody() string {
	var b strings.Builder
	b.WriteString(f.Value)
	for _, sf := range f.Subfields {
		b.WriteString(sf.String())
	}
	return b.String()
}

// EmbeddedFields derives the nested fields encoded in this field's
// subfields via the '1' embedding convention. It is computed
// on demand, never stored: an embedded field is a view over the parent's
// subfields, not an alternate storage form.
//
// Iteration begins a new nested field at each subfield with code '1'.
// The first three characters of that subfield's value are the nested
// tag; if the nested tag is below 10 the remainder of the value becomes
// the nested field's Value, otherwise subsequent subfields (up to the
// next '1' or the end of the parent) attach to the nested field.
// Embedded fields with an invalid tag or no content are skipped.
func (f Field) EmbeddedFields() []Field {
	var result []Field
	var current *Field

	flush := func() {
		if current != nil && current.Valid() {
			result = append(result, *current)
		}
		current = nil
	}

	for _, sf := range f.Subfields {
		if sf.Code != '1' {
			if current != nil {
				current.Subfields = append(current.Subfields, sf)
			}
			continue
		}

		flush()

		if len(sf.Value) < 3 {
			continue
		}
		tag, err := strconv.Atoi(sf.Value[:3])
		if err != nil || tag == 0 {
			continue
		}

		nested := &Field{Tag: tag}
		if tag < 10 {
			nested.Value = sf.Value[3:]
		} else if len(sf.Value) > 3 {
			// Any remainder after the tag, when the nested field is
			// variable, is ignored: the wire format for a variable
			// embedded field carries its value/subfields as separate
			// following subfields, not packed into the '1' value.
			_ = sf.Value[3:]
		}
		current = nested
	}
	flush()

	return result
}

// Record is a parsed bibliographic record: header (database/MFN/
// version/status) plus an ordered field list.
type Record struct {
	Database string
	Mfn      int
	Version  int
	Status   int
	Fields   []Field
}

// Deleted reports whether the record is logically or physically
// deleted: (Status & 3) != 0.
func (r Record) Deleted() bool {
	return r.Status&3 != 0
}

// Unbound reports whether the record carries no server identity yet
// (database, MFN, status, and version are all zero/empty) while
// possibly still holding fields under construction.
func (r Record) Unbound() bool {
	return r.Database == "" && r.Mfn == 0 && r.Status == 0 && r.Version == 0
}

// AddField appends a field and returns a pointer to the new field, for
// chained subfield construction.
func (r *Record) AddField(tag int, value string) *Field {
	r.Fields = append(r.Fields, Field{Tag: tag, Value: value})
	return &r.Fields[len(r.Fields)-1]
}

// FM returns the value of the first field with the given tag, or "" if
// none exists (a "field value" lookup, the common case for single-valued
// fixed fields).
func (r Record) FM(tag int) string {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}

// FMA returns the values of every field with the given tag.
func (r Record) FMA(tag int) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// EncodeWire renders the record in the server's wire shape:
//
//	<mfn>#<status><delim>0#<version><delim>{<tag>#<body><delim>}
//
// delim is RecDelim for the wire, or "\n" for plain-text export.
func (r Record) EncodeWire(delim string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Mfn))
	b.WriteString("#")
	b.WriteString(strconv.Itoa(r.Status))
	b.WriteString(delim)
	b.WriteString("0#")
	b.WriteString(strconv.Itoa(r.Version))
	b.WriteString(delim)
	for _, f := range r.Fields {
		b.WriteString(strconv.Itoa(f.Tag))
		b.WriteString("#")
		b.WriteString(f.FieldBody())
		b.WriteString(delim)
	}
	return b.String()
}

// EncodeText renders the record for plain-text batch export: one field
// per line, "\n"-joined, terminated by the conventional "*****" marker.
func (r Record) EncodeText() string {
	return r.EncodeWire("\n") + "*****"
}

// DecodeLines parses a record from a sequence of already-split text
// lines (the shape produced by a response reader's remaining-lines
// iteration): lines[0] is "mfn#status", lines[1] is "0#version", and
// each remaining non-empty line is a field.
func DecodeLines(lines []string) Record {
	var r Record
	if len(lines) > 0 {
		mfn, status := splitHash(lines[0])
		r.Mfn, _ = strconv.Atoi(mfn)
		r.Status, _ = strconv.Atoi(status)
	}
	if len(lines) > 1 {
		_, version := splitHash(lines[1])
		r.Version, _ = strconv.Atoi(version)
	}
	for _, line := range lines[min(2, len(lines)):] {
		if line == "" {
			continue
		}
		r.Fields = append(r.Fields, decodeField(line))
	}
	return r
}

func decodeField(line string) Field {
	tagText, body := splitHash(line)
	tag, _ := strconv.Atoi(tagText)
	f := Field{Tag: tag}

	if body == "" {
		return f
	}

	if body[0] == '^' {
		chunks := strings.Split(body, "^")[1:]
		for _, chunk := range chunks {
			if chunk == "" {
				continue
			}
			f.Subfields = append(f.Subfields, Subfield{Code: chunk[0], Value: chunk[1:]})
		}
		return f
	}

	chunks := strings.Split(body, "^")
	f.Value = chunks[0]
	for _, chunk := range chunks[1:] {
		if chunk == "" {
			continue
		}
		f.Subfields = append(f.Subfields, Subfield{Code: chunk[0], Value: chunk[1:]})
	}
	return f
}

// splitHash splits s on the first '#' into (before, after). If no '#' is
// present, before is s and after is "".
func splitHash(s string) (string, string) {
	idx := strings.IndexByte(s, '#')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// RawRecord is a record with the header parsed but the field lines left
// as unparsed protocol text, for passthrough use cases that do not need
// to inspect field content.
type RawRecord struct {
	Database string
	Mfn      int
	Version  int
	Status   int
	Lines    []string
}

// EncodeWire renders the raw record in the same wire shape a parsed
// Record encodes to, with its field lines emitted verbatim.
func (r RawRecord) EncodeWire(delim string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.Mfn))
	b.WriteString("#")
	b.WriteString(strconv.Itoa(r.Status))
	b.WriteString(delim)
	b.WriteString("0#")
	b.WriteString(strconv.Itoa(r.Version))
	b.WriteString(delim)
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteString(delim)
	}
	return b.String()
}

// Deleted reports whether the raw record is logically or physically
// deleted.
func (r RawRecord) Deleted() bool {
	return r.Status&3 != 0
}

// DecodeRawLines parses a RawRecord the same way DecodeLines parses a
// Record, but keeps field bodies as raw text.
func DecodeRawLines(lines []string) RawRecord {
	var r RawRecord
	if len(lines) > 0 {
		mfn, status := splitHash(lines[0])
		r.Mfn, _ = strconv.Atoi(mfn)
		r.Status, _ = strconv.Atoi(status)
	}
	if len(lines) > 1 {
		_, version := splitHash(lines[1])
		r.Version, _ = strconv.Atoi(version)
	}
	for _, line := range lines[min(2, len(lines)):] {
		if line == "" {
			continue
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}
