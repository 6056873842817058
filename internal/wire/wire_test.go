package wire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEncodeLengthPrefix(t *testing.T) {
	q := NewQuery("A")
	q.Header('C', 123456, 1, "pass", "user")

	encoded := q.Encode()
	nl := indexByte(encoded, '\n')
	require.GreaterOrEqual(t, nl, 0)

	lenField := string(encoded[:nl])
	body := encoded[nl+1:]
	assert.Equal(t, itoa(len(body)), lenField)
}

func TestHeaderTenLines(t *testing.T) {
	q := NewQuery("A")
	q.Header('C', 100000, 1, "pass", "user")
	encoded := q.Encode()
	nl := indexByte(encoded, '\n')
	body := encoded[nl+1:]
	lines := strings.Split(string(body), "\n")
	// 10 header lines + trailing empty element after final \n
	assert.Len(t, lines, 11)
	assert.Equal(t, "A", lines[0])
	assert.Equal(t, "C", lines[1])
	assert.Equal(t, "A", lines[2])
	assert.Equal(t, "100000", lines[3])
	assert.Equal(t, "1", lines[4])
	assert.Equal(t, "pass", lines[5])
	assert.Equal(t, "user", lines[6])
}

func TestResponseHeaderParsing(t *testing.T) {
	raw := "C\r\n123\r\n456\r\n12\r\n64.2014\r\n10\r\n\r\n\r\n\r\n\r\n0\r\n"
	resp := NewResponse([]byte(raw))
	assert.True(t, resp.Ok)
	assert.Equal(t, "C", resp.Command)
	assert.Equal(t, 123, resp.ClientID)
	assert.Equal(t, 456, resp.QueryID)
	assert.Equal(t, 12, resp.AnswerSize)
	assert.Equal(t, "64.2014", resp.ServerVersion)
	assert.Equal(t, 10, resp.Interval)

	assert.Equal(t, 0, resp.ReadInteger())
}

func TestResponseDecodeRecordScenario(t *testing.T) {
	// A typical read-record body.
	raw := "C\r\n123\r\n456\r\n12\r\n64.2014\r\n0\r\n\r\n\r\n\r\n\r\n" +
		"0\r\n" +
		"42#0\r\n0#1\r\n200#^aHello^eWorld\r\n700#^aMironov\r\n"
	resp := NewResponse([]byte(raw))
	code, ok := resp.CheckReturnCode()
	assert.True(t, ok)
	assert.Equal(t, 0, code)

	lines := resp.ReadRemainingUtfLines()
	require.Len(t, lines, 4)
	assert.Equal(t, "42#0", lines[0])
	assert.Equal(t, "0#1", lines[1])
}

func TestCheckReturnCodeWhitelist(t *testing.T) {
	raw := "C\r\n1\r\n1\r\n0\r\nv\r\n0\r\n\r\n\r\n\r\n\r\n-201\r\n"
	resp := NewResponse([]byte(raw))
	code, ok := resp.CheckReturnCode(-201, -600)
	assert.Equal(t, -201, code)
	assert.True(t, ok)
}

func TestCheckReturnCodeRejectsUnlisted(t *testing.T) {
	raw := "C\r\n1\r\n1\r\n0\r\nv\r\n0\r\n\r\n\r\n\r\n\r\n-5\r\n"
	resp := NewResponse([]byte(raw))
	_, ok := resp.CheckReturnCode(-201, -600)
	assert.False(t, ok)
}

func TestEmptyResponse(t *testing.T) {
	resp := EmptyResponse()
	assert.False(t, resp.Ok)
	assert.Nil(t, resp.GetLine())
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
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
