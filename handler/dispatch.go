package handler

import (
	"fmt"
	"io"

	"cmdecho/ds"
)

type Outcome int

const (
	OutcomeNoMatch Outcome = iota
	OutcomeHandled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeHandled:
		return "handled"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is what a dispatch produced. Err is set only when Outcome is
// OutcomeFailed.
type Result struct {
	Outcome Outcome
	Command string
	Err     error
}

func (r Result) Failed() bool { return r.Outcome == OutcomeFailed }

// CommandFunc runs a command. out is the dispatcher's output.
type CommandFunc func(out io.Writer) error

// Dispatcher matches text against registered command literals by exact,
// case-sensitive equality.
type Dispatcher struct {
	out      io.Writer
	commands *ds.Map[string, CommandFunc]
}

// NewDispatcher returns a dispatcher with the built-in commands "cmd1" and
// "error". A nil out discards command output.
func NewDispatcher(out io.Writer) *Dispatcher {
	if out == nil {
		out = io.Discard
	}
	d := &Dispatcher{
		out:      out,
		commands: ds.NewMap[string, CommandFunc](8),
	}
	d.commands.Store("cmd1", func(out io.Writer) error {
		_, err := fmt.Fprintln(out, "cmd 1")
		return err
	})
	d.commands.Store("error", func(io.Writer) error {
		return &DispatchError{Command: "error", Message: "Whatever"}
	})
	return d
}

func (d *Dispatcher) Register(name string, fn CommandFunc) error {
	if _, loaded := d.commands.LoadOrStore(name, fn); loaded {
		return fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
	}
	return nil
}

func (d *Dispatcher) Commands() []string {
	return ds.SortedKeys(d.commands)
}

func (d *Dispatcher) Dispatch(text string) Result {
	fn, ok := d.commands.Load(text)
	if !ok {
		return Result{Outcome: OutcomeNoMatch, Command: text}
	}
	if err := fn(d.out); err != nil {
		return Result{Outcome: OutcomeFailed, Command: text, Err: err}
	}
	return Result{Outcome: OutcomeHandled, Command: text}
}
