// Package wire implements the IRBIS64 request builder (C5) and response
// reader (C6): the length-prefixed, line-delimited, dual-encoding frame
// every session command assembles and parses.
package wire

import (
	"bytes"
	"strconv"

	"github.com/amironov73/irbis-go/internal/encoding"
)

// Query accumulates a request body as a sequence of lines, each written
// in the encoding its command contract dictates, then renders the final
// framed request: "<bodyLengthInBytes>\n" followed by the body.
type Query struct {
	command string
	body    bytes.Buffer
}

// NewQuery starts a query for the given one-letter/short command.
func NewQuery(command string) *Query {
	return &Query{command: command}
}

// AddAnsi appends a line encoded in the legacy code page.
func (q *Query) AddAnsi(s string) *Query {
	q.body.Write(encoding.ToAnsi(s))
	q.body.WriteByte('\n')
	return q
}

// AddUtf appends a line encoded in UTF-8.
func (q *Query) AddUtf(s string) *Query {
	q.body.Write(encoding.ToUtf(s))
	q.body.WriteByte('\n')
	return q
}

// AddInt appends an integer as a decimal ASCII line (encoding-neutral:
// digits are identical in both code pages).
func (q *Query) AddInt(n int) *Query {
	q.body.WriteString(strconv.Itoa(n))
	q.body.WriteByte('\n')
	return q
}

// AddBytes appends a line that is already encoded (used for record
// bodies pre-serialized by the records package).
func (q *Query) AddBytes(b []byte) *Query {
	q.body.Write(b)
	q.body.WriteByte('\n')
	return q
}

// Header writes the 10-line request header: command,
// workstation, command (again), clientId, queryId, password, username,
// then three blank lines. All header lines are legacy-encoded.
func (q *Query) Header(workstation byte, clientID, queryID int, password, username string) *Query {
	q.AddAnsi(q.command)
	q.AddAnsi(string(workstation))
	q.AddAnsi(q.command)
	q.AddInt(clientID)
	q.AddInt(queryID)
	q.AddAnsi(password)
	q.AddAnsi(username)
	q.AddAnsi("")
	q.AddAnsi("")
	q.AddAnsi("")
	return q
}

// Encode renders the complete outbound frame: "<N>\n" + body, where N is
// the byte length of body.
func (q *Query) Encode() []byte {
	body := q.body.Bytes()
	var out bytes.Buffer
	out.WriteString(strconv.Itoa(len(body)))
	out.WriteByte('\n')
	out.Write(body)
	return out.Bytes()
}
