package handler

import (
	"context"
	"net"
	"strconv"
	"sync/atomic"
)

// Listener owns the listening socket for the lifetime of the process.
type Listener struct {
	ln     net.Listener
	closed atomic.Bool
}

// Listen binds config.Address:config.Port over TCP with the OS default
// backlog. Any failure is returned as a *BindError.
func Listen(config *TCPServerConfig) (*Listener, error) {
	addr := net.JoinHostPort(config.Address, strconv.Itoa(config.Port))
	if config.ReusePort && !reusePortSupported {
		return nil, &BindError{Address: addr, Err: errReusePortUnsupported}
	}

	lc := net.ListenConfig{Control: listenControl(config.ReusePort)}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, &BindError{Address: addr, Err: err}
	}
	return &Listener{ln: ln}, nil
}

func (l *Listener) Accept() (net.Conn, error) { return l.ln.Accept() }

func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.ln.Close()
}
