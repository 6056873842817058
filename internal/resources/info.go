package resources

import (
	"strconv"
	"strings"
)

// DatabaseInfo describes one IRBIS database, as configured locally or as
// reported by the server's "0" command.
type DatabaseInfo struct {
	Name        string
	Description string
	ReadOnly    bool

	MaxMfn int
	Locked bool

	LogicallyDeleted  []int
	PhysicallyDeleted []int
	NonActualized     []int
	LockedMfns        []int
	New               []int
}

func splitMfnList(line string) []int {
	parts := strings.Split(line, string(rune(0x1E)))
	var result []int
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		result = append(result, n)
	}
	return result
}

// ParseDatabaseInfo builds a DatabaseInfo from the six lines of a "0"
// command response: maxMfn (negative when the database is locked),
// then the five soft-delimiter-separated MFN lists in order.
func ParseDatabaseInfo(name string, lines []string) DatabaseInfo {
	info := DatabaseInfo{Name: name}
	if len(lines) > 0 {
		maxMfn, _ := strconv.Atoi(strings.TrimSpace(lines[0]))
		if maxMfn < 0 {
			info.Locked = true
			maxMfn = -maxMfn
		}
		info.MaxMfn = maxMfn
	}
	if len(lines) > 1 {
		info.LogicallyDeleted = splitMfnList(lines[1])
	}
	if len(lines) > 2 {
		info.PhysicallyDeleted = splitMfnList(lines[2])
	}
	if len(lines) > 3 {
		info.NonActualized = splitMfnList(lines[3])
	}
	if len(lines) > 4 {
		info.LockedMfns = splitMfnList(lines[4])
	}
	if len(lines) > 5 {
		info.New = splitMfnList(lines[5])
	}
	return info
}

// VersionInfo is the response to the "1" (server version) command.
type VersionInfo struct {
	Organization     string
	ServerVersion    string
	MaxClients       int
	ConnectedClients int
}

// ParseVersionInfo builds a VersionInfo from the four lines of a "1"
// command response.
func ParseVersionInfo(lines []string) VersionInfo {
	var v VersionInfo
	if len(lines) > 0 {
		v.Organization = lines[0]
	}
	if len(lines) > 1 {
		v.ServerVersion = lines[1]
	}
	if len(lines) > 2 {
		v.MaxClients, _ = strconv.Atoi(strings.TrimSpace(lines[2]))
	}
	if len(lines) > 3 {
		v.ConnectedClients, _ = strconv.Atoi(strings.TrimSpace(lines[3]))
	}
	return v
}

// ProcessInfo is one entry of the "+3" (process list) command response.
type ProcessInfo struct {
	Number        string
	IPAddress     string
	Name          string
	ClientID      string
	Workstation   string
	Started       string
	LastCommand   string
	CommandNumber string
	ProcessID     string
	State         string
}

// ParseProcessList splits a "+3" response into ProcessInfo entries; each
// entry occupies a fixed run of lines in the order of the ProcessInfo
// fields above.
func ParseProcessList(lines []string) []ProcessInfo {
	const fieldsPerProcess = 10
	var result []ProcessInfo
	for i := 0; i+fieldsPerProcess <= len(lines); i += fieldsPerProcess {
		result = append(result, ProcessInfo{
			Number:        lines[i],
			IPAddress:     lines[i+1],
			Name:          lines[i+2],
			ClientID:      lines[i+3],
			Workstation:   lines[i+4],
			Started:       lines[i+5],
			LastCommand:   lines[i+6],
			CommandNumber: lines[i+7],
			ProcessID:     lines[i+8],
			State:         lines[i+9],
		})
	}
	return result
}

// UserInfo is one entry of the "+9" (user list) command response, one
// field per workstation role the user may assume plus credentials.
type UserInfo struct {
	Number        string
	Name          string
	Password      string
	Cataloger     string
	Reader        string
	Circulation   string
	Acquisitions  string
	Provision     string
	Administrator string
}

// ParseUserList splits a "+9" response into UserInfo entries.
func ParseUserList(lines []string) []UserInfo {
	const fieldsPerUser = 9
	var result []UserInfo
	for i := 0; i+fieldsPerUser <= len(lines); i += fieldsPerUser {
		result = append(result, UserInfo{
			Number:        lines[i],
			Name:          lines[i+1],
			Password:      lines[i+2],
			Cataloger:     lines[i+3],
			Reader:        lines[i+4],
			Circulation:   lines[i+5],
			Acquisitions:  lines[i+6],
			Provision:     lines[i+7],
			Administrator: lines[i+8],
		})
	}
	return result
}

// ClientInfo is one connected client within a ServerStat.
type ClientInfo struct {
	Number        string
	IPAddress     string
	Port          string
	Name          string
	ID            string
	Workstation   string
	Registered    string
	Acknowledged  string
	LastCommand   string
	CommandNumber string
}

// ServerStat is the response to the "+1" (server stat) command.
type ServerStat struct {
	RunningClients    []ClientInfo
	ClientCount       int
	TotalCommandCount int
}

// ParseServerStat builds a ServerStat from a "+1" response: first line
// is the client count, second is the total command count, remaining
// lines are ClientInfo runs of ten fields each.
func ParseServerStat(lines []string) ServerStat {
	var s ServerStat
	if len(lines) > 0 {
		s.ClientCount, _ = strconv.Atoi(strings.TrimSpace(lines[0]))
	}
	if len(lines) > 1 {
		s.TotalCommandCount, _ = strconv.Atoi(strings.TrimSpace(lines[1]))
	}
	if len(lines) <= 2 {
		return s
	}
	rest := lines[2:]
	const fieldsPerClient = 10
	for i := 0; i+fieldsPerClient <= len(rest); i += fieldsPerClient {
		s.RunningClients = append(s.RunningClients, ClientInfo{
			Number:        rest[i],
			IPAddress:     rest[i+1],
			Port:          rest[i+2],
			Name:          rest[i+3],
			ID:            rest[i+4],
			Workstation:   rest[i+5],
			Registered:    rest[i+6],
			Acknowledged:  rest[i+7],
			LastCommand:   rest[i+8],
			CommandNumber: rest[i+9],
		})
	}
	return s
}

// SearchParameters configures an extended "K" search command.
type SearchParameters struct {
	Database        string
	Expression      string
	NumberOfRecords int
	FirstRecord     int
	Format          string
	MinMfn          int
	MaxMfn          int
	Sequential      string
}

// TermParameters configures a "H"/"P" term enumeration command.
type TermParameters struct {
	Database      string
	StartTerm     string
	NumberOfTerms int
	Format        string
	ReverseOrder  bool
}

// PostingParameters configures an "I" posting-list command.
type PostingParameters struct {
	Database         string
	Term             string
	ListOfTerms      []string
	FirstPosting     int
	NumberOfPostings int
	Format           string
}

// PostingInfo is one entry of an "I" posting-list response: where
// within which record a dictionary term occurs.
type PostingInfo struct {
	Mfn        int
	Tag        int
	Occurrence int
	Count      int
	Text       string
}

// ParsePostingInfo splits a single "I" response line of the form
// "<mfn>#<tag>#<occurrence>#<count>#<text>" into a PostingInfo. Missing
// trailing parts parse as zero/empty.
func ParsePostingInfo(line string) PostingInfo {
	parts := strings.SplitN(line, "#", 5)
	var p PostingInfo
	if len(parts) > 0 {
		p.Mfn, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		p.Tag, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if len(parts) > 2 {
		p.Occurrence, _ = strconv.Atoi(strings.TrimSpace(parts[2]))
	}
	if len(parts) > 3 {
		p.Count, _ = strconv.Atoi(strings.TrimSpace(parts[3]))
	}
	if len(parts) > 4 {
		p.Text = parts[4]
	}
	return p
}

// TermInfo is one entry of an "H"/"P" term enumeration response: the
// dictionary term text and its posting count.
type TermInfo struct {
	Count int
	Text  string
}

// ParseTermInfo splits a single "H"/"P" response line of the form
// "<count>#<term>" into a TermInfo. A line with no "#" is treated as a
// bare term with a zero count.
func ParseTermInfo(line string) TermInfo {
	idx := strings.IndexByte(line, '#')
	if idx < 0 {
		return TermInfo{Text: line}
	}
	count, _ := strconv.Atoi(strings.TrimSpace(line[:idx]))
	return TermInfo{Count: count, Text: line[idx+1:]}
}

// TableDefinition configures a "7" print-table command.
type TableDefinition struct {
	Database        string
	Table           string
	Headers         []string
	Mode            string
	SearchQuery     string
	MinMfn          int
	MaxMfn          int
	SequentialQuery string
	MfnList         []int
}
