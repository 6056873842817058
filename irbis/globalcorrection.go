package irbis

import (
	"github.com/amironov73/irbis-go/internal/protocol"
)

// GlobalCorrectionSettings configures a "5" (global correction)
// request. Exactly one of FileName or Statements should be
// set: FileName selects a server-side ".gbl" file, Statements supplies
// the already-formatted correction statement text inline. This library
// transports statements; it does not build or validate them.
type GlobalCorrectionSettings struct {
	Database   string
	Actualize  bool
	FileName   string
	Statements []string

	SearchExpression string
	FirstRecord      int
	NumberOfRecords  int

	// MinMfn/MaxMfn expand to every MFN in [MinMfn, MaxMfn] when both are
	// positive; otherwise MfnList is sent as a literal list.
	MinMfn  int
	MaxMfn  int
	MfnList []int

	// FormalControl and Autoin are off when false (their zero value),
	// which adds the corresponding "*"/"&" suppression marker to the
	// request body; set them true to leave the marker out.
	FormalControl bool
	Autoin        bool
}

// GlobalCorrection runs settings as a server-side batch correction
// (command "5") and returns the server's legacy-encoded response lines
// verbatim.
func (c *Connection) GlobalCorrection(settings GlobalCorrectionSettings) ([]string, bool) {
	if !c.connected {
		return nil, false
	}

	db := settings.Database
	if db == "" {
		db = c.Database
	}

	q := c.newQuery("5")
	q.AddAnsi(db)
	q.AddInt(boolToInt(settings.Actualize))

	if settings.FileName != "" {
		q.AddAnsi("@" + settings.FileName)
	} else {
		q.AddAnsi(buildStatementBlock(settings.Statements))
	}

	q.AddUtf(settings.SearchExpression)
	q.AddInt(settings.FirstRecord)
	q.AddInt(settings.NumberOfRecords)

	for _, mfn := range resolveMfnList(settings) {
		q.AddInt(mfn)
	}

	if !settings.FormalControl {
		q.AddAnsi("*")
	}
	if !settings.Autoin {
		q.AddAnsi("&")
	}

	resp := c.execute(q)
	if !resp.Ok {
		return nil, false
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil, false
	}

	return resp.ReadRemainingAnsiLines(), true
}

// buildStatementBlock renders an inline statement list as "!0" +
// REC_DELIM-joined statements + a trailing REC_DELIM.
func buildStatementBlock(statements []string) string {
	delim := string(protocol.RecDelim)
	block := "!0" + delim
	for _, stmt := range statements {
		block += stmt + delim
	}
	return block
}

// resolveMfnList expands MinMfn..MaxMfn when both are positive,
// otherwise returns the literal MfnList.
func resolveMfnList(settings GlobalCorrectionSettings) []int {
	if settings.MinMfn > 0 && settings.MaxMfn > 0 {
		mfns := make([]int, 0, settings.MaxMfn-settings.MinMfn+1)
		for mfn := settings.MinMfn; mfn <= settings.MaxMfn; mfn++ {
			mfns = append(mfns, mfn)
		}
		return mfns
	}
	return settings.MfnList
}
