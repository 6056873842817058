package irbis

import (
	"github.com/amironov73/irbis-go/internal/resources"
)

// databaseOr returns db if non-empty, otherwise the connection's default
// database (most admin commands take an explicit database name but
// conventionally default to the session's, mirroring ReadRecord/Search).
func (c *Connection) databaseOr(db string) string {
	if db == "" {
		return c.Database
	}
	return db
}

// simpleDbCommand sends cmd with a single "db" body line and reports
// whether the server accepted it, the shape shared by most of the
// single-database admin commands.
func (c *Connection) simpleDbCommand(cmd, db string) bool {
	if !c.connected {
		return false
	}
	q := c.newQuery(cmd)
	q.AddAnsi(c.databaseOr(db))
	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// GetMaxMfn returns the highest MFN assigned in db (command "O"). The
// return code itself is the payload; failure yields 0.
func (c *Connection) GetMaxMfn(db string) int {
	if !c.connected {
		return 0
	}
	q := c.newQuery("O")
	q.AddAnsi(c.databaseOr(db))
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

// GetDatabaseInfo fetches db's max MFN, lock state, and the five
// deleted/locked/new MFN lists (command "0"). Description and ReadOnly
// are left empty: the "0" response does not carry them.
func (c *Connection) GetDatabaseInfo(db string) (resources.DatabaseInfo, bool) {
	if !c.connected {
		return resources.DatabaseInfo{}, false
	}
	name := c.databaseOr(db)
	q := c.newQuery("0")
	q.AddAnsi(name)
	resp := c.execute(q)
	if !resp.Ok {
		return resources.DatabaseInfo{}, false
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return resources.DatabaseInfo{}, false
	}
	return resources.ParseDatabaseInfo(name, resp.ReadRemainingAnsiLines()), true
}

// CreateDatabase creates a new database named db (command "T").
func (c *Connection) CreateDatabase(db, description string, readerAccess bool) bool {
	if !c.connected {
		return false
	}
	q := c.newQuery("T")
	q.AddAnsi(db)
	q.AddAnsi(description)
	q.AddInt(boolToInt(readerAccess))
	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// DeleteDatabase removes db entirely (command "W").
func (c *Connection) DeleteDatabase(db string) bool { return c.simpleDbCommand("W", db) }

// TruncateDatabase empties db of all records, keeping its definition
// (command "S").
func (c *Connection) TruncateDatabase(db string) bool { return c.simpleDbCommand("S", db) }

// UnlockDatabase releases a server-side exclusive lock on db (command
// "U").
func (c *Connection) UnlockDatabase(db string) bool { return c.simpleDbCommand("U", db) }

// ReloadMasterFile forces the server to reload db's master file from
// disk (command "X").
func (c *Connection) ReloadMasterFile(db string) bool { return c.simpleDbCommand("X", db) }

// ReloadDictionary forces the server to rebuild db's inverted-index
// dictionary (command "Y").
func (c *Connection) ReloadDictionary(db string) bool { return c.simpleDbCommand("Y", db) }

// CreateDictionary creates an empty inverted-index dictionary for db
// (command "Z").
func (c *Connection) CreateDictionary(db string) bool { return c.simpleDbCommand("Z", db) }

// ActualizeRecord rebuilds db's index entries for mfn, or for every
// record in db when mfn is 0 (command "F").
func (c *Connection) ActualizeRecord(db string, mfn int) bool {
	if !c.connected {
		return false
	}
	q := c.newQuery("F")
	q.AddAnsi(c.databaseOr(db))
	q.AddInt(mfn)
	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// RestartServer asks the server to restart (command "+8"), the
// administrator-only "+" family command group.
func (c *Connection) RestartServer() bool {
	if !c.connected {
		return false
	}
	q := c.newQuery("+8")
	resp := c.execute(q)
	if !resp.Ok {
		return false
	}
	_, ok := c.checkReturnCode(resp)
	return ok
}

// GetServerVersion fetches the server's organization/version/client-
// capacity line quad (command "1").
func (c *Connection) GetServerVersion() (resources.VersionInfo, bool) {
	if !c.connected {
		return resources.VersionInfo{}, false
	}
	q := c.newQuery("1")
	resp := c.execute(q)
	if !resp.Ok {
		return resources.VersionInfo{}, false
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return resources.VersionInfo{}, false
	}
	return resources.ParseVersionInfo(resp.ReadRemainingAnsiLines()), true
}

// GetServerStat fetches the currently connected clients and aggregate
// command count (command "+1").
func (c *Connection) GetServerStat() (resources.ServerStat, bool) {
	if !c.connected {
		return resources.ServerStat{}, false
	}
	q := c.newQuery("+1")
	resp := c.execute(q)
	if !resp.Ok {
		return resources.ServerStat{}, false
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return resources.ServerStat{}, false
	}
	return resources.ParseServerStat(resp.ReadRemainingAnsiLines()), true
}

// ListProcesses enumerates the server's active client processes
// (command "+3").
func (c *Connection) ListProcesses() []resources.ProcessInfo {
	if !c.connected {
		return nil
	}
	q := c.newQuery("+3")
	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil
	}
	return resources.ParseProcessList(resp.ReadRemainingAnsiLines())
}

// ListUsers enumerates configured server users and their per-role
// credentials (command "+9").
func (c *Connection) ListUsers() []resources.UserInfo {
	if !c.connected {
		return nil
	}
	q := c.newQuery("+9")
	resp := c.execute(q)
	if !resp.Ok {
		return nil
	}
	if _, ok := c.checkReturnCode(resp); !ok {
		return nil
	}
	return resources.ParseUserList(resp.ReadRemainingAnsiLines())
}
