package handler

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync/atomic"
	"unicode/utf8"

	"github.com/labstack/gommon/bytes"
	"github.com/rs/zerolog/log"
)

// State is the position of the serving loop. Serving is entered only from
// Listening, and only after the previous cycle has fully finished.
type State int32

const (
	StateIdle State = iota
	StateListening
	StateServing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateServing:
		return "serving"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// FailurePolicy decides what a failed cycle does to the serving loop.
type FailurePolicy int

const (
	// AbortProcess makes Serve return the cycle error.
	AbortProcess FailurePolicy = iota
	// AbortCycle drops the connection and goes back to accepting.
	AbortCycle
)

func (p FailurePolicy) String() string {
	switch p {
	case AbortProcess:
		return "abort_process"
	case AbortCycle:
		return "abort_cycle"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "abort_process":
		return AbortProcess, nil
	case "abort_cycle":
		return AbortCycle, nil
	}
	return 0, fmt.Errorf("unknown failure policy %q", s)
}

type TCPServerConfig struct {
	*ConnConfig
	Address   string
	Port      int
	ReusePort bool
	OnFailure FailurePolicy
	// Out receives every decoded payload, one per line.
	Out io.Writer
}

func NewTCPServerConfig() *TCPServerConfig {
	return &TCPServerConfig{
		ConnConfig: NewConnConfig(),
		Address:    "0.0.0.0",
		Port:       5000,
		OnFailure:  AbortProcess,
		Out:        os.Stdout,
	}
}

// TCPServerHandler observes the lifecycle of each connection. Callbacks run
// on the serving goroutine, so a slow callback delays the next accept.
type TCPServerHandler interface {
	OnOpen(conn *Conn)
	OnClose(conn *Conn)
	OnDispatch(conn *Conn, res Result)
	OnReadError(conn *Conn, err error)
	OnWriteError(conn *Conn, err error)
}

type NopHandler struct{}

func (NopHandler) OnOpen(*Conn)              {}
func (NopHandler) OnClose(*Conn)             {}
func (NopHandler) OnDispatch(*Conn, Result)  {}
func (NopHandler) OnReadError(*Conn, error)  {}
func (NopHandler) OnWriteError(*Conn, error) {}

// TCPServer services one connection at a time on the goroutine that calls
// Serve.
type TCPServer struct {
	listener   *Listener
	dispatcher *Dispatcher
	handler    TCPServerHandler
	config     *TCPServerConfig
	out        io.Writer
	state      atomic.Int32
	active     atomic.Pointer[Conn]
	closed     atomic.Bool
}

func NewTCPServer(
	listener *Listener,
	dispatcher *Dispatcher,
	handler TCPServerHandler,
	config *TCPServerConfig,
) *TCPServer {
	if handler == nil {
		handler = NopHandler{}
	}
	out := config.Out
	if out == nil {
		out = io.Discard
	}
	return &TCPServer{
		listener:   listener,
		dispatcher: dispatcher,
		handler:    handler,
		config:     config,
		out:        out,
	}
}

func (s *TCPServer) State() State { return State(s.state.Load()) }

func (s *TCPServer) setState(st State) { s.state.Store(int32(st)) }

// Serve accepts and services connections until Close is called, the
// listener fails, or a cycle fails under AbortProcess. It returns nil only
// after Close.
func (s *TCPServer) Serve() error {
	log.Info().
		Str("addr", s.listener.Addr().String()).
		Str("read_buffer", bytes.Format(int64(s.config.BufferSize))).
		Stringer("on_failure", s.config.OnFailure).
		Msg("server listening")

	for {
		s.setState(StateListening)
		c, err := s.listener.Accept()
		if err != nil {
			s.setState(StateClosed)
			if s.closed.Load() {
				return nil
			}
			return err
		}

		s.setState(StateServing)
		if err := s.serve(c); err != nil && s.config.OnFailure == AbortProcess {
			s.setState(StateClosed)
			return err
		}
	}
}

func (s *TCPServer) serve(c net.Conn) error {
	conn := newConn(c, s.config.ConnConfig)
	s.active.Store(conn)
	if s.closed.Load() {
		conn.Close()
	}

	log.Debug().
		Str("conn", conn.Id).
		Stringer("remote", conn.RemoteAddr()).
		Msg("conn open")
	s.handler.OnOpen(conn)

	err := s.cycle(conn)
	if err != nil {
		log.Error().
			Err(err).
			Str("conn", conn.Id).
			Stringer("on_failure", s.config.OnFailure).
			Msg("cycle failed")
	}

	conn.Close()
	s.active.Store(nil)
	s.handler.OnClose(conn)
	log.Debug().Str("conn", conn.Id).Msg("conn close")
	return err
}

// cycle reads once, dispatches, and echoes. Errors caused by Close are
// swallowed.
func (s *TCPServer) cycle(conn *Conn) error {
	b, err := conn.readChunk()
	if err != nil {
		if conn.Closed() {
			return nil
		}
		s.handler.OnReadError(conn, err)
		return err
	}
	if b == nil {
		log.Debug().Str("conn", conn.Id).Msg("peer closed without data")
		return nil
	}

	if !utf8.Valid(b) {
		return &DecodeError{Offset: invalidOffset(b), Size: len(b)}
	}
	text := string(b)
	if _, err := fmt.Fprintln(s.out, text); err != nil {
		return fmt.Errorf("print payload: %w", err)
	}
	log.Debug().Str("conn", conn.Id).Str("text", text).Msg("received")

	res := s.dispatcher.Dispatch(text)
	log.Debug().
		Str("conn", conn.Id).
		Stringer("outcome", res.Outcome).
		Msg("dispatched")
	s.handler.OnDispatch(conn, res)
	if res.Failed() {
		return res.Err
	}

	if err := conn.writeAll(b); err != nil {
		if conn.Closed() {
			return nil
		}
		s.handler.OnWriteError(conn, err)
		return err
	}
	return nil
}

// Close stops Serve and drops the in-flight connection, if any.
func (s *TCPServer) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.listener.Close()
	if c := s.active.Load(); c != nil {
		c.Close()
	}
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
