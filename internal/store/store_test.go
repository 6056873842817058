package store

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putUint32s(vals ...int32) []byte {
	buf := new(bytes.Buffer)
	for _, v := range vals {
		writeInt32(buf, v)
	}
	return buf.Bytes()
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	buf.Write(tmp[:])
}

func TestXrfOffset(t *testing.T) {
	assert.Equal(t, int64(0), XrfOffset(1))
	assert.Equal(t, int64(12), XrfOffset(2))
	assert.Equal(t, int64(120), XrfOffset(11))
}

func TestReadXrfRecord(t *testing.T) {
	data := putUint32s(100, 0, 3)
	r := bytes.NewReader(data)

	rec, err := ReadXrfRecord(r, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(100), rec.Low)
	assert.Equal(t, int32(0), rec.High)
	assert.Equal(t, int32(3), rec.Status)
	assert.Equal(t, int64(100), rec.Offset())
}

func TestXrfOffsetWithHighBits(t *testing.T) {
	rec := XrfRecord{Low: 1, High: 1}
	assert.Equal(t, int64(1)<<32|1, rec.Offset())
}

func TestReadMstLeader(t *testing.T) {
	data := putUint32s(42, 200, 0, 0, 36, 3, 1, 0)
	data = append(data, make([]byte, 4)...) // reserved padding
	r := bytes.NewReader(data)

	leader, err := ReadMstLeader(r, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), leader.Mfn)
	assert.Equal(t, int32(200), leader.Length)
	assert.Equal(t, int32(36), leader.Base)
	assert.Equal(t, int32(3), leader.Nvf)
}

func TestReadMstDictionaryAndField(t *testing.T) {
	dict := putUint32s(
		1, 0, 5,
		200, 5, 6,
	)
	body := []byte("helloTitle1")
	full := append(dict, body...)
	r := bytes.NewReader(full)

	entries, err := ReadMstDictionary(r, 0, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int32(1), entries[0].Tag)
	assert.Equal(t, int32(5), entries[0].Length)

	base := int64(len(dict))
	field, err := ReadMstField(r, base, entries[0])
	require.NoError(t, err)
	assert.Equal(t, "hello", field.Body)

	field2, err := ReadMstField(r, base, entries[1])
	require.NoError(t, err)
	assert.Equal(t, "Title1", field2.Body)
}

func TestReadMstControlRecord(t *testing.T) {
	data := putUint32s(0, 5, 0, 0, 1, 10, 0, 0, 0)
	r := bytes.NewReader(data)

	ctl, err := ReadMstControlRecord(r)
	require.NoError(t, err)
	assert.Equal(t, int32(5), ctl.NextMfn)
	assert.Equal(t, int32(10), ctl.RecCnt)
}
