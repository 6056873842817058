// Package transport implements the one-shot socket transport (C7): open
// a TCP connection, send the framed request, read until EOF, close on
// every exit path. Each request opens a fresh connection; the session
// keeps no socket across calls.
package transport

import (
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Transport sends a single framed request and returns the complete raw
// response. Implementations are single-shot: one Talk call is one
// connect/write/read/close cycle. Tests substitute MockTransport.
type Transport interface {
	Talk(address string, request []byte) ([]byte, error)
}

// Socket is the real TCP implementation of Transport.
type Socket struct {
	// DialTimeout bounds the initial connect; zero means no timeout.
	DialTimeout time.Duration
}

// NewSocket returns a Socket with a sensible default dial timeout.
func NewSocket() *Socket {
	return &Socket{DialTimeout: 30 * time.Second}
}

// Talk opens a TCP connection to address, writes request, reads the
// full response until EOF, and closes the connection on every exit
// path (including early returns on error).
func (s *Socket) Talk(address string, request []byte) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", address, s.DialTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	defer conn.Close()

	if _, err := conn.Write(request); err != nil {
		return nil, errors.Wrap(err, "send")
	}

	response, err := io.ReadAll(conn)
	if err != nil {
		return nil, errors.Wrap(err, "receive")
	}

	return response, nil
}
