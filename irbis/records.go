package irbis

import (
	"strings"

	"github.com/amironov73/irbis-go/internal/protocol"
	"github.com/amironov73/irbis-go/internal/records"
)

// readRecordAcceptedCodes are the negative return codes readRecord
// tolerates: the body is still usable under these conditions.
var readRecordAcceptedCodes = []int{-201, -600, -602, -603}

// ReadRecord fetches one record by MFN. version == 0 means the current
// version; a nonzero version implicitly locks the record on the server,
// and the caller MUST call UnlockRecords on that MFN afterward. Returns
// the zero Record if the session is not connected or the command fails
// outside the accepted-code whitelist.
func (c *Connection) ReadRecord(mfn int, version int) (records.Record, bool) {
	if !c.connected {
		return records.Record{}, false
	}

	q := c.newQuery("C")
	q.AddAnsi(c.Database)
	q.AddInt(mfn)
	q.AddInt(version)

	resp := c.execute(q)
	if !resp.Ok {
		return records.Record{}, false
	}

	_, ok := c.checkReturnCode(resp, readRecordAcceptedCodes...)
	if !ok {
		return records.Record{}, false
	}

	lines := resp.ReadRemainingUtfLines()
	rec := records.DecodeLines(lines)
	rec.Database = c.Database
	return rec, true
}

// ReadRecords fetches many records by MFN in one round trip (command
// "G" with ALL_FORMAT), falling back to ReadRecord for a single MFN.
func (c *Connection) ReadRecords(mfns []int) []records.Record {
	if !c.connected || len(mfns) == 0 {
		return nil
	}
	if len(mfns) == 1 {
		rec, ok := c.ReadRecord(mfns[0], 0)
		if !ok {
			return nil
		}
		return []records.Record{rec}
	}

	q := c.newQuery("G")
	q.AddAnsi(c.Database)
	q.AddAnsi(protocol.AllFormat)
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

	var out []records.Record
	for _, line := range resp.ReadRemainingUtfLines() {
		if line == "" {
			continue
		}
		_, body := splitFirstHash(line)
		chunks := protocol.SplitN([]byte(body), protocol.AltDelim, 0)
		if len(chunks) < 2 {
			continue
		}
		rec := records.DecodeLines(chunkStrings(chunks[1:]))
		rec.Database = c.Database
		out = append(out, rec)
	}
	return out
}

// WriteRecord saves record to the server (command "D"). Unless
// dontParse is set, on success the record's fields are replaced by the
// server-returned parsed version (the server may apply autoin/global
// correction). Returns the new MFN, or 0 on failure.
func (c *Connection) WriteRecord(rec *records.Record, lockFlag, actualize, dontParse bool) int {
	if !c.connected {
		return 0
	}

	q := c.newQuery("D")
	q.AddAnsi(c.Database)
	q.AddInt(boolToInt(lockFlag))
	q.AddInt(boolToInt(actualize))
	q.AddUtf(rec.EncodeWire(string(protocol.RecDelim)))

	resp := c.execute(q)
	if !resp.Ok {
		return 0
	}

	code, ok := c.checkReturnCode(resp)
	if !ok {
		return 0
	}

	if !dontParse {
		header := resp.ReadUtf()
		rest := strings.Join(resp.ReadRemainingUtfLines(), "")
		lines := append([]string{header}, strings.Split(rest, string(protocol.ShortDelim))...)
		parsed := records.DecodeLines(lines)
		parsed.Database = c.Database
		*rec = parsed
	}

	return code
}

// WriteRecords saves many records in one round trip (command "6").
// On success, each input record's fields are replaced by the matching
// server-returned parsed version, in order.
func (c *Connection) WriteRecords(recs []*records.Record, lockFlag, actualize bool) bool {
	if !c.connected || len(recs) == 0 {
		return false
	}
	if len(recs) == 1 {
		return c.WriteRecord(recs[0], lockFlag, actualize, false) > 0
	}

	q := c.newQuery("6")
	q.AddInt(boolToInt(lockFlag))
	q.AddInt(boolToInt(actualize))
	for _, rec := range recs {
		line := c.Database + string(protocol.RecDelim) + rec.EncodeWire(string(protocol.RecDelim))
		q.AddUtf(line)
	}

	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return false
	}

	returned := resp.ReadRemainingUtfLines()
	for i, rec := range recs {
		if i >= len(returned) {
			break
		}
		// Each returned line is one record in the same REC_DELIM-joined
		// shape the request sent it in.
		lines := chunkStrings(protocol.SplitByRecDelim([]byte(returned[i])))
		parsed := records.DecodeLines(lines)
		parsed.Database = c.Database
		*rec = parsed
	}
	return true
}

// ReadRawRecord fetches one record by MFN with its field lines left as
// unparsed protocol text, for passthrough use (delete/undelete, batch
// export). Same accepted-code whitelist as ReadRecord.
func (c *Connection) ReadRawRecord(mfn int) (records.RawRecord, bool) {
	if !c.connected {
		return records.RawRecord{}, false
	}

	q := c.newQuery("C")
	q.AddAnsi(c.Database)
	q.AddInt(mfn)
	q.AddInt(0)

	resp := c.execute(q)
	if !resp.Ok {
		return records.RawRecord{}, false
	}
	if _, ok := c.checkReturnCode(resp, readRecordAcceptedCodes...); !ok {
		return records.RawRecord{}, false
	}

	raw := records.DecodeRawLines(resp.ReadRemainingUtfLines())
	raw.Database = c.Database
	return raw, true
}

// WriteRawRecord saves a raw record back without re-parsing the server's
// reply (command "D"). Returns the new MFN, or 0 on failure.
func (c *Connection) WriteRawRecord(raw *records.RawRecord, lockFlag, actualize bool) int {
	if !c.connected {
		return 0
	}

	q := c.newQuery("D")
	q.AddAnsi(c.Database)
	q.AddInt(boolToInt(lockFlag))
	q.AddInt(boolToInt(actualize))
	q.AddUtf(raw.EncodeWire(string(protocol.RecDelim)))

	resp := c.execute(q)
	if !resp.Ok {
		return 0
	}

	code, ok := c.checkReturnCode(resp)
	if !ok {
		return 0
	}
	return code
}

// DeleteRecord marks mfn logically deleted. Returns false if the record
// could not be read, or was already deleted; callers needing to
// distinguish "missing" from "already deleted" must read the record
// first. The record body passes through untouched: only the status bit
// changes, so deleting never re-parses or re-normalizes field content.
func (c *Connection) DeleteRecord(mfn int) bool {
	raw, ok := c.ReadRawRecord(mfn)
	if !ok {
		return false
	}
	if raw.Deleted() {
		return false
	}
	raw.Status |= records.StatusLogicallyDeleted
	return c.WriteRawRecord(&raw, false, true) > 0
}

// UndeleteRecord clears the logically-deleted bit on mfn and writes it
// back. Returns false if the record could not be read or was not
// deleted.
func (c *Connection) UndeleteRecord(mfn int) bool {
	raw, ok := c.ReadRawRecord(mfn)
	if !ok {
		return false
	}
	if !raw.Deleted() {
		return false
	}
	raw.Status &^= records.StatusLogicallyDeleted
	return c.WriteRawRecord(&raw, false, true) > 0
}

// UnlockRecords releases the server-side lock on the given MFNs
// (command "Q"), required after reading a specific non-zero version via
// ReadRecord.
func (c *Connection) UnlockRecords(mfns []int) bool {
	if !c.connected {
		return false
	}
	q := c.newQuery("Q")
	q.AddAnsi(c.Database)
	for _, mfn := range mfns {
		q.AddInt(mfn)
	}
	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// chunkStrings converts alt-delimiter-split byte chunks into the string
// lines the record decoder consumes.
func chunkStrings(chunks [][]byte) []string {
	lines := make([]string, len(chunks))
	for i, chunk := range chunks {
		lines[i] = string(chunk)
	}
	return lines
}

func splitFirstHash(s string) (string, string) {
	idx := strings.IndexByte(s, '#')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
