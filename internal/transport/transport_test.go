package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketTalkRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, _ := conn.Read(buf)
		_ = n
		conn.Write([]byte("response-bytes"))
	}()

	s := NewSocket()
	resp, err := s.Talk(ln.Addr().String(), []byte("request"))
	require.NoError(t, err)
	assert.Equal(t, "response-bytes", string(resp))
}

func TestSocketTalkDialFailure(t *testing.T) {
	s := &Socket{DialTimeout: 200 * time.Millisecond}
	_, err := s.Talk("127.0.0.1:1", []byte("x"))
	assert.Error(t, err)
}

func TestMockTransportRecordsCalls(t *testing.T) {
	m := NewMockTransport()
	m.Responses = [][]byte{[]byte("first"), []byte("second")}

	r1, err := m.Talk("host:port", []byte("req1"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(r1))

	r2, err := m.Talk("host:port", []byte("req2"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(r2))

	calls := m.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "req1", string(calls[0].Request))
}
