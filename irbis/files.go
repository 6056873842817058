package irbis

import (
	"github.com/amironov73/irbis-go/internal/resources"
)

// PrintTable renders a server-side report table (command "7") and
// returns the UTF-8 rendered text.
func (c *Connection) PrintTable(table resources.TableDefinition) string {
	if !c.connected {
		return ""
	}

	db := table.Database
	if db == "" {
		db = c.Database
	}

	q := c.newQuery("7")
	q.AddAnsi(db)
	q.AddAnsi(table.Table)
	q.AddAnsi("")
	q.AddAnsi(table.Mode)
	q.AddUtf(table.SearchQuery)
	q.AddInt(table.MinMfn)
	q.AddInt(table.MaxMfn)
	q.AddAnsi(table.SequentialQuery)
	q.AddAnsi("")

	resp := c.execute(q)
	if !resp.Ok {
		return ""
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return ""
	}

	return resp.ReadRemainingUtfText()
}

// ListFiles enumerates filenames matching the given specifications
// (command "!"), one specification per request line, legacy-encoded
// like every other filename on the wire. Specifications commonly use a
// wildcard form ("*.mnu"); the server returns one matching filename per
// line, blank lines dropped.
func (c *Connection) ListFiles(specifications []string) []string {
	if !c.connected || len(specifications) == 0 {
		return nil
	}

	q := c.newQuery("!")
	for _, spec := range specifications {
		q.AddAnsi(spec)
	}

	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}

	var out []string
	for _, line := range resp.ReadRemainingAnsiLines() {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ReadTextFile fetches the named server-side text resource (command
// "L"), legacy-encoded (menus, INI files, and other auxiliary text all
// live in the legacy code page).
func (c *Connection) ReadTextFile(specification string) string {
	if !c.connected {
		return ""
	}

	q := c.newQuery("L")
	q.AddAnsi(specification)

	resp := c.execute(q)
	if !resp.Ok {
		return ""
	}

	return resp.ReadRemainingAnsiText()
}

// WriteTextFile saves content to the server-side text resource named by
// specification (command "L"), returning whether the server accepted
// the write.
func (c *Connection) WriteTextFile(specification, content string) bool {
	if !c.connected {
		return false
	}

	q := c.newQuery("L")
	q.AddAnsi(specification)
	q.AddAnsi(content)

	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// UpdateIniFile pushes lines (already in "[section]"/"key=value" form)
// as the client's server-side INI settings (command "8"), one line per
// request body line.
func (c *Connection) UpdateIniFile(lines []string) bool {
	if !c.connected || len(lines) == 0 {
		return false
	}

	q := c.newQuery("8")
	for _, line := range lines {
		q.AddAnsi(line)
	}

	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}
