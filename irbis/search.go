package irbis

import (
	"strconv"
	"strings"

	"github.com/amironov73/irbis-go/internal/protocol"
	"github.com/amironov73/irbis-go/internal/records"
	"github.com/amironov73/irbis-go/internal/resources"
	"github.com/amironov73/irbis-go/internal/wire"
)

// termReadAcceptedCodes are the negative codes readTerms/listTerms
// tolerate: reaching either end of the dictionary, or an empty result,
// still produces a usable (possibly empty) body.
var termReadAcceptedCodes = []int{-202, -203, -204}

// FoundLine is one entry of an extended ("K" with SearchParameters)
// search response: the MFN plus whatever description text the chosen
// format produced.
type FoundLine struct {
	Mfn         int
	Description string
}

// Search runs expression against the default database and returns the
// matching MFNs (command "K"). The total count line the server reports
// is read and discarded; no pagination is attempted, so only the MFNs of
// the single returned page are included.
func (c *Connection) Search(expression string) []int {
	if !c.connected {
		return nil
	}

	resp := c.searchPage(expression, 0, 1)
	if resp == nil {
		return nil
	}

	resp.ReadInteger() // total count, not needed for a single-page search
	return parseFoundMfns(resp.ReadRemainingUtfLines())
}

// SearchEx runs an extended search using params (numberOfRecords,
// firstRecord, format, minMfn, maxMfn, sequential), returning
// (mfn, description) pairs produced by the chosen format.
func (c *Connection) SearchEx(params resources.SearchParameters) []FoundLine {
	if !c.connected {
		return nil
	}

	db := params.Database
	if db == "" {
		db = c.Database
	}

	q := c.newQuery("K")
	q.AddAnsi(db)
	q.AddUtf(params.Expression)
	q.AddInt(params.NumberOfRecords)
	q.AddInt(params.FirstRecord)
	q.AddAnsi(params.Format)
	q.AddInt(params.MinMfn)
	q.AddInt(params.MaxMfn)
	q.AddAnsi(params.Sequential)

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil
	}

	resp.ReadInteger() // total count
	var out []FoundLine
	for _, line := range resp.ReadRemainingUtfLines() {
		if line == "" {
			continue
		}
		mfnText, desc := splitFirstHash(line)
		mfn, err := strconv.Atoi(strings.TrimSpace(mfnText))
		if err != nil {
			continue
		}
		out = append(out, FoundLine{Mfn: mfn, Description: desc})
	}
	return out
}

// SearchAll runs expression and paginates through every matching MFN
// in pages: the server reports a total on the first page; each
// subsequent page starts where the last left off, and iteration stops
// when a page returns nothing or the cumulative count reaches the
// total.
func (c *Connection) SearchAll(expression string) []int {
	if !c.connected {
		return nil
	}

	var acc []int
	total := -1
	firstRecord := 1

	for {
		resp := c.searchPage(expression, 0, firstRecord)
		if resp == nil {
			return acc
		}

		if firstRecord == 1 {
			total = resp.ReadInteger()
			if total == 0 {
				break
			}
		} else {
			resp.ReadInteger()
		}

		mfns := parseFoundMfns(resp.ReadRemainingUtfLines())
		if len(mfns) == 0 {
			break
		}

		acc = append(acc, mfns...)
		firstRecord += len(mfns)
		if len(acc) >= total {
			break
		}
	}

	return acc
}

// SearchRead runs an extended search for expression with format
// ALL_FORMAT and numberOfRecords = limit, decoding each found line's
// description into a full Record.
func (c *Connection) SearchRead(expression string, limit int) []records.Record {
	if !c.connected {
		return nil
	}

	params := resources.SearchParameters{
		Database:        c.Database,
		Expression:      expression,
		NumberOfRecords: limit,
		FirstRecord:     1,
		Format:          protocol.AllFormat,
	}

	var out []records.Record
	for _, found := range c.SearchEx(params) {
		chunks := protocol.SplitN([]byte(found.Description), protocol.AltDelim, 0)
		if len(chunks) < 2 {
			continue
		}
		rec := records.DecodeLines(chunkStrings(chunks[1:]))
		rec.Database = c.Database
		out = append(out, rec)
	}
	return out
}

// searchPage issues one "K" request for expression at firstRecord and
// returns the parsed response, or nil if the session is disconnected,
// the transport failed, or the return code was rejected.
func (c *Connection) searchPage(expression string, numberOfRecords, firstRecord int) *wire.Response {
	if !c.connected {
		return nil
	}

	q := c.newQuery("K")
	q.AddAnsi(c.Database)
	q.AddUtf(expression)
	q.AddInt(numberOfRecords)
	q.AddInt(firstRecord)

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil
	}
	return resp
}

// parseFoundMfns extracts the leading integer MFN from each "mfn#..."
// line, skipping anything that fails to parse.
func parseFoundMfns(lines []string) []int {
	var mfns []int
	for _, line := range lines {
		if line == "" {
			continue
		}
		mfnText, _ := splitFirstHash(line)
		mfn, err := strconv.Atoi(strings.TrimSpace(mfnText))
		if err != nil {
			continue
		}
		mfns = append(mfns, mfn)
	}
	return mfns
}

// ListTerms enumerates dictionary terms starting at prefix, stripping
// the prefix from each returned term and stopping the first time a term
// no longer carries it. The prefix is capitalized before the
// first page request, matching the server's case-folded term index.
func (c *Connection) ListTerms(prefix string) []string {
	if !c.connected || prefix == "" {
		return nil
	}

	const pageSize = 512
	upperPrefix := strings.ToUpper(prefix)
	startTerm := upperPrefix

	var result []string
	var lastTerm string
	havePrevious := false

	for {
		page := c.readTerms(startTerm, pageSize)
		if len(page) == 0 {
			break
		}

		stop := false
		advanced := false
		for i, term := range page {
			text := term.Text
			if havePrevious && i == 0 && text == lastTerm {
				continue
			}
			if !strings.HasPrefix(strings.ToUpper(text), upperPrefix) {
				stop = true
				break
			}
			result = append(result, text[len(prefix):])
			lastTerm = text
			havePrevious = true
			advanced = true
		}

		// A page that only repeats the boundary term cannot make
		// progress; treat it as the end of the dictionary.
		if stop || !advanced {
			break
		}

		startTerm = lastTerm
	}

	return result
}

// readTerms issues one "H" (forward term enumeration) request starting
// at startTerm for up to count terms.
func (c *Connection) readTerms(startTerm string, count int) []resources.TermInfo {
	return c.readTermsCmd("H", resources.TermParameters{StartTerm: startTerm, NumberOfTerms: count})
}

// ReadTerms issues a "H" (forward) or "P" (reverse) term enumeration
// request per params.ReverseOrder, returning the raw TermInfo entries
// with no prefix-stripping or de-duplication (see ListTerms for that).
func (c *Connection) ReadTerms(params resources.TermParameters) []resources.TermInfo {
	if !c.connected {
		return nil
	}
	cmd := "H"
	if params.ReverseOrder {
		cmd = "P"
	}
	return c.readTermsCmd(cmd, params)
}

// ReadPostings fetches the posting list for one term (or several, via
// params.ListOfTerms) from the inverted index (command "I"): each
// posting names the record, field tag, and occurrence where the term
// appears. Dictionary-edge conditions are tolerated like term reads.
func (c *Connection) ReadPostings(params resources.PostingParameters) []resources.PostingInfo {
	if !c.connected {
		return nil
	}

	db := params.Database
	if db == "" {
		db = c.Database
	}

	q := c.newQuery("I")
	q.AddAnsi(db)
	q.AddInt(params.NumberOfPostings)
	q.AddInt(params.FirstPosting)
	q.AddAnsi(params.Format)
	if len(params.ListOfTerms) != 0 {
		for _, term := range params.ListOfTerms {
			q.AddUtf(term)
		}
	} else {
		q.AddUtf(params.Term)
	}

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp, termReadAcceptedCodes...); !ok {
		return nil
	}

	var out []resources.PostingInfo
	for _, line := range resp.ReadRemainingUtfLines() {
		if line == "" {
			continue
		}
		out = append(out, resources.ParsePostingInfo(line))
	}
	return out
}

func (c *Connection) readTermsCmd(cmd string, params resources.TermParameters) []resources.TermInfo {
	if !c.connected {
		return nil
	}

	db := params.Database
	if db == "" {
		db = c.Database
	}

	q := c.newQuery(cmd)
	q.AddAnsi(db)
	q.AddUtf(params.StartTerm)
	q.AddInt(params.NumberOfTerms)
	q.AddAnsi(params.Format)

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp, termReadAcceptedCodes...); !ok {
		return nil
	}

	var out []resources.TermInfo
	for _, line := range resp.ReadRemainingUtfLines() {
		if line == "" {
			continue
		}
		out = append(out, resources.ParseTermInfo(line))
	}
	return out
}
