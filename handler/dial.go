package handler

import (
	"io"
	"net"
	"time"
)

// Exchange dials address, sends payload, half-closes the write side and
// returns everything the server sends back before closing. An empty
// payload only opens and half-closes the connection.
func Exchange(address string, payload []byte, timeout time.Duration) ([]byte, error) {
	c, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if timeout > 0 {
		if err := c.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
	}

	write := 0
	for write < len(payload) {
		p, err := c.Write(payload[write:])
		if err != nil {
			return nil, err
		}
		write += p
	}

	if tc, ok := c.(*net.TCPConn); ok {
		if err := tc.CloseWrite(); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(c)
}
