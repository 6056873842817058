package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValid(t *testing.T) {
	assert.False(t, Field{}.Valid())
	assert.False(t, Field{Tag: 0, Value: "x"}.Valid())
	assert.True(t, Field{Tag: 200, Value: "x"}.Valid())
	assert.True(t, (&Field{Tag: 700}).AddSubfield('a', "Mironov").Valid())
	assert.False(t, Field{Tag: 700, Subfields: []Subfield{{Code: 'a', Value: ""}}}.Valid())
}

func TestDeleted(t *testing.T) {
	assert.True(t, Record{Status: StatusLogicallyDeleted}.Deleted())
	assert.True(t, Record{Status: StatusPhysicallyDeleted}.Deleted())
	assert.True(t, Record{Status: StatusLogicallyDeleted | StatusLocked}.Deleted())
	assert.False(t, Record{Status: StatusLocked}.Deleted())
}

func TestUnbound(t *testing.T) {
	var r Record
	assert.True(t, r.Unbound())
	r.AddField(200, "")
	assert.True(t, r.Unbound(), "fields alone don't bind a record")
	r.Mfn = 1
	assert.False(t, r.Unbound())
}

func TestDecodeRecordScenario(t *testing.T) {
	// A server body for mfn=42, as read off the wire.
	lines := []string{
		"42#0",
		"0#1",
		"200#^aHello^eWorld",
		"700#^aMironov",
	}
	r := DecodeLines(lines)

	assert.Equal(t, 42, r.Mfn)
	assert.Equal(t, 0, r.Status)
	assert.Equal(t, 1, r.Version)
	require.Len(t, r.Fields, 2)

	assert.Equal(t, 200, r.Fields[0].Tag)
	sfA, ok := r.Fields[0].Subfield('a')
	require.True(t, ok)
	assert.Equal(t, "Hello", sfA.Value)
	sfE, ok := r.Fields[0].Subfield('e')
	require.True(t, ok)
	assert.Equal(t, "World", sfE.Value)

	assert.Equal(t, 700, r.Fields[1].Tag)
	sfA2, ok := r.Fields[1].Subfield('a')
	require.True(t, ok)
	assert.Equal(t, "Mironov", sfA2.Value)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Cyrillic content must survive the wire round trip untouched.
	var r Record
	r.AddField(700, "").AddSubfield('a', "Миронов").AddSubfield('b', "А. В.")
	r.AddField(200, "").AddSubfield('a', "Работа с ИРБИС64")

	wire := r.EncodeWire(string([]byte{0x1F, 0x1E}))
	lines := strings.Split(strings.TrimRight(wire, string([]byte{0x1F, 0x1E})), string([]byte{0x1F, 0x1E}))
	// EncodeWire already emits the "mfn#status" and "0#version" header
	// lines first, which is the shape DecodeLines expects.
	full := lines
	decoded := DecodeLines(full)

	require.Len(t, decoded.Fields, 2)
	assert.Equal(t, r.Fields[0].Tag, decoded.Fields[0].Tag)
	sfA, _ := decoded.Fields[0].Subfield('a')
	assert.Equal(t, "Миронов", sfA.Value)
	sfB, _ := decoded.Fields[0].Subfield('b')
	assert.Equal(t, "А. В.", sfB.Value)
}

func TestEmbeddedFields(t *testing.T) {
	parent := Field{Tag: 461}
	parent.AddSubfield('1', "200#")
	parent.AddSubfield('a', "Nested title")
	parent.AddSubfield('1', "010#")
	parent.AddSubfield('a', "5-85270-007-0")

	embedded := parent.EmbeddedFields()
	require.Len(t, embedded, 2)
	assert.Equal(t, 200, embedded[0].Tag)
	sf, ok := embedded[0].Subfield('a')
	require.True(t, ok)
	assert.Equal(t, "Nested title", sf.Value)

	assert.Equal(t, 10, embedded[1].Tag)
}

func TestEmbeddedFixedField(t *testing.T) {
	parent := Field{Tag: 461}
	parent.AddSubfield('1', "00112345")

	embedded := parent.EmbeddedFields()
	require.Len(t, embedded, 1)
	assert.Equal(t, 1, embedded[0].Tag)
	assert.Equal(t, "12345", embedded[0].Value)
}

func TestEmbeddedFieldsSkipsInvalidTag(t *testing.T) {
	parent := Field{Tag: 461}
	parent.AddSubfield('1', "abc")

	embedded := parent.EmbeddedFields()
	assert.Empty(t, embedded)
}

func TestEncodeTextExportTerminator(t *testing.T) {
	var r Record
	r.AddField(200, "title")
	text := r.EncodeText()
	assert.True(t, strings.HasSuffix(text, "*****"))
}

func TestParseISO2709FixedAndVariableFields(t *testing.T) {
	// Minimal hand-built ISO 2709 record: leader (24 bytes) + directory
	// (two entries, width 3+4+5=12) + field terminator + field data +
	// record terminator.
	//
	// lengthOfLength=4, lengthOfOffset=5, lengthOfAdditional=0 at offsets 20/21/22.
	// baseAddress at 12..17.
	leader := make([]byte, 24)
	copy(leader[20:23], []byte("450"))

	fields := []byte{}
	fields = append(fields, []byte("hello")...) // tag<10 field content only, no tag in data area
	fields = append(fields, 0x1E)

	fields = append(fields, 0x20, 0x20) // two indicator bytes
	fields = append(fields, 'a')
	fields = append(fields, []byte("Title")...)
	fields = append(fields, 0x1E)

	baseAddress := 24 + 2*12 + 1 // leader + 2 directory entries + field terminator
	copy(leader[12:17], []byte(padInt(baseAddress, 5)))

	dir := []byte{}
	dir = append(dir, []byte("001")...)
	dir = append(dir, []byte(padInt(6, 4))...) // "hello\x1E" = 6 bytes
	dir = append(dir, []byte(padInt(0, 5))...)

	dir = append(dir, []byte("200")...)
	dir = append(dir, []byte(padInt(9, 4))...) // 2 ind + 'a' + "Title" + term = 9
	dir = append(dir, []byte(padInt(6, 5))...)

	body := append(dir, byte(0x1E))
	body = append(body, fields...)
	body = append(body, 0x1D)

	totalLen := len(leader) + len(body)
	copy(leader[0:5], []byte(padInt(totalLen, 5)))

	full := append(leader, body...)

	decoded, err := ParseISO2709(full, func(b []byte) string { return string(b) })
	require.NoError(t, err)
	require.Len(t, decoded.Fields, 2)
	assert.Equal(t, 1, decoded.Fields[0].Tag)
	assert.Equal(t, "hello", decoded.Fields[0].Value)
	assert.Equal(t, 200, decoded.Fields[1].Tag)
	sf, ok := decoded.Fields[1].Subfield('a')
	require.True(t, ok)
	assert.Equal(t, "Title", sf.Value)
}

func padInt(n, width int) string {
	s := itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
