package wire

import (
	"github.com/amironov73/irbis-go/internal/encoding"
	"github.com/amironov73/irbis-go/internal/protocol"
)

// Response is a pull cursor over a received response buffer. It never
// materializes an intermediate list of lines: each read advances an
// internal offset over the original byte slice.
//
// Response holds no back-reference
// to the session that owns it; GetReturnCode simply returns the parsed
// code and leaves storing it into the session's lastError to the caller.
type Response struct {
	data []byte
	pos  int

	// Ok is false when the underlying transport exchange failed; such a
	// Response is empty and every read returns the empty/zero value.
	Ok bool

	// Header fields parsed from the fixed 10-line response header.
	Command       string
	ClientID      int
	QueryID       int
	AnswerSize    int
	ServerVersion string
	Interval      int
}

// NewResponse wraps a raw response buffer and parses the fixed 10-line
// header: command, clientId, queryId, answerSize,
// serverVersion, interval, then four reserved lines.
func NewResponse(data []byte) *Response {
	r := &Response{data: data, Ok: true}
	r.Command = r.ReadAnsi()
	r.ClientID = parseIntLine(r.ReadAnsi())
	r.QueryID = parseIntLine(r.ReadAnsi())
	r.AnswerSize = parseIntLine(r.ReadAnsi())
	r.ServerVersion = r.ReadAnsi()
	r.Interval = parseIntLine(r.ReadAnsi())
	r.ReadAnsi()
	r.ReadAnsi()
	r.ReadAnsi()
	r.ReadAnsi()
	return r
}

// EmptyResponse returns a not-ok Response carrying no data, the value a
// session returns when the transport itself failed.
func EmptyResponse() *Response {
	return &Response{Ok: false}
}

// GetLine returns the raw bytes of the next CRLF-terminated line,
// consuming a lone '\r' or a "\r\n" pair as the terminator. Returns nil
// at EOF.
func (r *Response) GetLine() []byte {
	if r.pos >= len(r.data) {
		return nil
	}
	start := r.pos
	i := start
	for i < len(r.data) && r.data[i] != '\r' && r.data[i] != '\n' {
		i++
	}
	line := r.data[start:i]
	if i < len(r.data) {
		if r.data[i] == '\r' {
			i++
			if i < len(r.data) && r.data[i] == '\n' {
				i++
			}
		} else {
			i++ // bare '\n'
		}
	}
	r.pos = i
	return line
}

// ReadAnsi decodes the next line as legacy ("ANSI") text.
func (r *Response) ReadAnsi() string {
	return encoding.FromAnsi(r.GetLine())
}

// ReadUtf decodes the next line as UTF-8 text.
func (r *Response) ReadUtf() string {
	return encoding.FromUtf(r.GetLine())
}

// ReadInteger decodes the next line as UTF-8 and parses it as a signed
// decimal integer; an empty line parses as 0.
func (r *Response) ReadInteger() int {
	return parseIntLine(r.ReadUtf())
}

// ReadRemainingAnsiLines reads every remaining line, legacy-decoded,
// until EOF.
func (r *Response) ReadRemainingAnsiLines() []string {
	var lines []string
	for {
		line := r.GetLine()
		if line == nil {
			break
		}
		lines = append(lines, encoding.FromAnsi(line))
	}
	return lines
}

// ReadRemainingUtfLines reads every remaining line, UTF-8-decoded, until
// EOF.
func (r *Response) ReadRemainingUtfLines() []string {
	var lines []string
	for {
		line := r.GetLine()
		if line == nil {
			break
		}
		lines = append(lines, encoding.FromUtf(line))
	}
	return lines
}

// ReadRemainingAnsiText decodes everything remaining as a single legacy
// blob (no line splitting).
func (r *Response) ReadRemainingAnsiText() string {
	rest := r.data[r.pos:]
	r.pos = len(r.data)
	return encoding.FromAnsi(rest)
}

// ReadRemainingUtfText decodes everything remaining as a single UTF-8
// blob (no line splitting).
func (r *Response) ReadRemainingUtfText() string {
	rest := r.data[r.pos:]
	r.pos = len(r.data)
	return encoding.FromUtf(rest)
}

// GetReturnCode reads the next line as an integer return code. The
// caller (a session) is responsible for storing it into its own
// lastError field; Response itself holds no such state.
func (r *Response) GetReturnCode() int {
	return r.ReadInteger()
}

// CheckReturnCode reads the return code and reports whether it should
// be treated as success: codes >= 0 always pass; negative codes pass
// only if they appear in allowed.
func (r *Response) CheckReturnCode(allowed ...int) (int, bool) {
	code := r.GetReturnCode()
	if code >= 0 {
		return code, true
	}
	for _, a := range allowed {
		if code == a {
			return code, true
		}
	}
	return code, false
}

// parseIntLine parses a signed decimal response line; empty or
// malformed lines parse as 0. The digit run itself goes through the
// protocol's fast multiply-and-add parse once the sign is peeled off
// and digits-only is established.
func parseIntLine(s string) int {
	data := []byte(s)
	negative := false
	if len(data) > 0 && (data[0] == '-' || data[0] == '+') {
		negative = data[0] == '-'
		data = data[1:]
	}
	if len(data) == 0 {
		return 0
	}
	for _, c := range data {
		if c < '0' || c > '9' {
			return 0
		}
	}
	n := protocol.FastParseInt(data)
	if negative {
		return -n
	}
	return n
}
