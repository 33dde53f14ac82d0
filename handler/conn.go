package handler

import (
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const DefaultBufferSize = 4096

type ConnConfig struct {
	BufferSize int
	// Zero disables the deadline. A silent client then holds the server
	// until it sends or closes.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewConnConfig() *ConnConfig {
	return &ConnConfig{
		BufferSize: DefaultBufferSize,
	}
}

// Conn is one accepted client, live for a single read/dispatch/echo cycle.
type Conn struct {
	Id     string
	conn   net.Conn
	config *ConnConfig
	closed atomic.Bool
}

func newConn(conn net.Conn, config *ConnConfig) *Conn {
	return &Conn{
		Id:     uuid.NewString(),
		conn:   conn,
		config: config,
	}
}

func (c *Conn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

func (c *Conn) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.conn.Close()
}

func (c *Conn) Closed() bool { return c.closed.Load() }

// readChunk performs one read of at most BufferSize bytes. A nil slice
// with a nil error means the peer closed before sending anything.
func (c *Conn) readChunk() ([]byte, error) {
	if c.config.ReadTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout)); err != nil {
			return nil, err
		}
	}

	b := make([]byte, c.config.BufferSize)
	n, err := c.conn.Read(b)
	if n > 0 {
		return b[:n], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, nil
	}
	return nil, err
}

func (c *Conn) writeAll(b []byte) error {
	if c.config.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout)); err != nil {
			return err
		}
	}

	p := 0
	write := 0
	l := len(b)
	for write < l {
		var err error
		p, err = c.conn.Write(b[write:])
		if err != nil {
			return err
		}
		write += p
	}
	return nil
}
