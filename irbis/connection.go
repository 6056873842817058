// Package irbis is the public surface of the IRBIS64 client: a
// single-threaded, synchronous session (C8) that assembles queries
// (C5), transports them over a fresh TCP connection per call (C7), and
// parses responses (C6) into the record/resource types under
// internal/records and internal/resources.
//
// A Connection is not safe for concurrent use: issue parallel requests
// by creating multiple Connections.
package irbis

import (
	"github.com/sirupsen/logrus"

	ilserrors "github.com/amironov73/irbis-go/internal/errors"
	"github.com/amironov73/irbis-go/internal/resources"
	"github.com/amironov73/irbis-go/internal/transport"
	"github.com/amironov73/irbis-go/internal/wire"
)

// maxConnectAttempts bounds the -3337 retry loop so a server that
// keeps rejecting fresh identities cannot hang Connect forever.
const maxConnectAttempts = 5

// Connection is one IRBIS64 client session.
type Connection struct {
	// Configured state.
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	Workstation byte

	// Runtime state.
	connected     bool
	clientID      int
	queryID       int
	serverVersion string
	interval      int
	ini           resources.IniFile
	lastError     int

	transport transport.Transport
	identity  IdentitySource
	log       *logrus.Logger
}

// NewConnection builds a Connection from cfg, using the real TCP
// transport and a random identity source. Database defaults to "IBIS"
// if cfg.Database is empty, matching the conventional default catalog.
func NewConnection(cfg Config) *Connection {
	db := cfg.Database
	if db == "" {
		db = "IBIS"
	}
	workstation := cfg.Workstation
	if workstation == 0 {
		workstation = DefaultWorkstation
	}
	return &Connection{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.Username,
		Password:    cfg.Password,
		Database:    db,
		Workstation: workstation,
		transport:   transport.NewSocket(),
		identity:    NewIdentitySource(),
		log:         logrus.StandardLogger(),
	}
}

// SetTransport overrides the transport (tests substitute
// transport.MockTransport).
func (c *Connection) SetTransport(t transport.Transport) { c.transport = t }

// SetIdentitySource overrides the clientId generator (tests substitute a
// deterministic sequence).
func (c *Connection) SetIdentitySource(s IdentitySource) { c.identity = s }

// SetLogger overrides the logrus logger used for lifecycle events.
func (c *Connection) SetLogger(l *logrus.Logger) { c.log = l }

// Connected reports whether the session believes it is registered with
// the server.
func (c *Connection) Connected() bool { return c.connected }

// LastError is the most recently recorded return code (or the
// synthetic -100000 transport-failure code).
func (c *Connection) LastError() int { return c.lastError }

// LastErrorAsError converts the session's last recorded code into an
// error carrying the code and its description, or nil if the last
// command succeeded. Every command soft-fails with its empty value;
// callers wanting an error check this afterward.
func (c *Connection) LastErrorAsError() error {
	return ilserrors.ThrowOnError("", c.lastError)
}

// DescribeError returns the human-readable description for a server
// return code.
func DescribeError(code int) string { return ilserrors.Describe(code) }

// ServerVersion is the version string the server reported at connect.
func (c *Connection) ServerVersion() string { return c.serverVersion }

// Ini is the INI file the server returned at connect.
func (c *Connection) Ini() resources.IniFile { return c.ini }

func (c *Connection) address() string {
	return (&Config{Host: c.Host, Port: c.Port}).Address()
}

// execute sends a query and returns the parsed response. Any transport
// failure sets lastError to the synthetic transport-failure code and
// returns a not-ok, empty response; queryID is only incremented on a
// successful round trip.
func (c *Connection) execute(q *wire.Query) *wire.Response {
	raw, err := c.transport.Talk(c.address(), q.Encode())
	if err != nil {
		c.lastError = ilserrors.TransportFailureCode
		if c.log != nil {
			c.log.WithError(err).Warn("irbis: transport failure")
		}
		return wire.EmptyResponse()
	}
	c.queryID++
	return wire.NewResponse(raw)
}

// checkReturnCode reads resp's return code, records it as the session's
// lastError, and reports whether the command succeeded. Negative codes
// pass only when whitelisted in allowed.
func (c *Connection) checkReturnCode(resp *wire.Response, allowed ...int) (int, bool) {
	code, ok := resp.CheckReturnCode(allowed...)
	c.lastError = code
	return code, ok
}

// newQuery starts a query for command, pre-filled with the 10-line
// session header.
func (c *Connection) newQuery(command string) *wire.Query {
	return wire.NewQuery(command).Header(c.Workstation, c.clientID, c.queryID, c.Password, c.Username)
}

// Connect registers the session with the server. Idempotent
// when already connected. Retries on -3337 ("client already
// registered") with a freshly regenerated identity, making at most
// maxConnectAttempts attempts in all, then returns a hard ProtocolError.
func (c *Connection) Connect() error {
	if c.connected {
		return nil
	}

	c.queryID = 1

	for attempt := 0; attempt < maxConnectAttempts; attempt++ {
		c.clientID = c.identity.NextClientID()

		q := c.newQuery("A")
		q.AddAnsi(c.Username)
		q.AddAnsi(c.Password)

		resp := c.execute(q)
		if !resp.Ok {
			return &ilserrors.ProtocolError{Command: "A", Code: c.lastError}
		}

		code := resp.GetReturnCode()
		c.lastError = code

		if code == -3337 {
			// This attempt never really happened from the server's point
			// of view: it rejected the identity outright, so its query
			// number isn't consumed.
			c.queryID--
			if c.log != nil {
				c.log.WithField("attempt", attempt+1).Warn("irbis: client already registered, retrying with new identity")
			}
			continue
		}
		if code < 0 {
			return &ilserrors.ProtocolError{Command: "A", Code: code}
		}

		c.serverVersion = resp.ServerVersion
		c.interval = resp.Interval
		lines := resp.ReadRemainingAnsiLines()
		c.ini = resources.ParseIni(lines)
		c.connected = true
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"clientId":      c.clientID,
				"serverVersion": c.serverVersion,
			}).Info("irbis: connected")
		}
		return nil
	}

	return &ilserrors.ProtocolError{Command: "A", Code: -3337}
}

// Disconnect unregisters the session. Always flips connected to false
// first, then makes a best-effort
// "B" send whose outcome is ignored. Safe to call multiple times; a
// no-op when not connected.
func (c *Connection) Disconnect() {
	if !c.connected {
		return
	}
	c.connected = false

	q := c.newQuery("B")
	q.AddAnsi(c.Username)
	c.execute(q)

	if c.log != nil {
		c.log.Info("irbis: disconnected")
	}
}

// NoOp sends the "N" no-op command, used to keep a session alive.
func (c *Connection) NoOp() bool {
	if !c.connected {
		return false
	}
	q := c.newQuery("N")
	resp := c.execute(q)
	return resp.Ok
}
