package irbis

import (
	"strconv"
	"strings"

	"github.com/amironov73/irbis-go/internal/protocol"
	"github.com/amironov73/irbis-go/internal/records"
)

// FormatRecord evaluates format against the record at mfn on the
// server (command "G") and returns the rendered text,
// trimmed of leading/trailing whitespace.
func (c *Connection) FormatRecord(format string, mfn int) string {
	if !c.connected {
		return ""
	}

	prepared, isAnsi := protocol.PrepareFormat(format)

	q := c.newQuery("G")
	q.AddAnsi(c.Database)
	if isAnsi {
		q.AddAnsi(prepared)
	} else {
		q.AddUtf(prepared)
	}
	q.AddInt(1)
	q.AddInt(mfn)

	resp := c.execute(q)
	if !resp.Ok {
		return ""
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return ""
	}

	return strings.TrimSpace(resp.ReadRemainingUtfText())
}

// FormatRecordData evaluates format against an in-memory record (not
// yet saved, or deliberately not re-read from the server) by sending
// its encoded form inline with the special mfn marker -2.
func (c *Connection) FormatRecordData(format string, rec *records.Record) string {
	if !c.connected {
		return ""
	}

	prepared, isAnsi := protocol.PrepareFormat(format)

	q := c.newQuery("G")
	q.AddAnsi(c.Database)
	if isAnsi {
		q.AddAnsi(prepared)
	} else {
		q.AddUtf(prepared)
	}
	q.AddInt(-2)
	q.AddUtf(rec.EncodeWire(string(protocol.RecDelim)))

	resp := c.execute(q)
	if !resp.Ok {
		return ""
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return ""
	}

	return strings.TrimSpace(resp.ReadRemainingUtfText())
}

// FormatRecords evaluates format against many records in one round
// trip, returning the rendered text in mfns order (empty string for any
// MFN missing from the response). Each response line is one
// "mfn#text" entry: the response reader ends a line at every CR or LF,
// so text spanning several lines keeps only its first line, and a
// continuation line without a leading MFN is skipped.
func (c *Connection) FormatRecords(format string, mfns []int) []string {
	if !c.connected || len(mfns) == 0 {
		return nil
	}

	prepared, isAnsi := protocol.PrepareFormat(format)

	q := c.newQuery("G")
	q.AddAnsi(c.Database)
	if isAnsi {
		q.AddAnsi(prepared)
	} else {
		q.AddUtf(prepared)
	}
	q.AddInt(len(mfns))
	for _, mfn := range mfns {
		q.AddInt(mfn)
	}

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil
	}

	byMfn := make(map[int]string)
	for _, line := range resp.ReadRemainingUtfLines() {
		if line == "" {
			continue
		}
		mfnText, text := splitFirstHash(line)
		mfn, err := strconv.Atoi(strings.TrimSpace(mfnText))
		if err != nil {
			continue
		}
		byMfn[mfn] = toUnixLineEndings(text)
	}

	out := make([]string, len(mfns))
	for i, mfn := range mfns {
		out[i] = byMfn[mfn]
	}
	return out
}

// toUnixLineEndings collapses any embedded "\r\n" pairs (and stray
// "\r") into the UNIX newline callers expect from formatted text.
func toUnixLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
