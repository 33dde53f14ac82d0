package handler

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")

	errReusePortUnsupported = errors.New("SO_REUSEPORT not supported on this platform")
)

// BindError is returned by Listen when the listening socket cannot be
// created or bound.
type BindError struct {
	Address string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Address, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// DecodeError reports a payload that is not valid UTF-8.
type DecodeError struct {
	Offset int
	Size   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d of %d", e.Offset, e.Size)
}

// DispatchError is the failure produced by a command.
type DispatchError struct {
	Command string
	Message string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("command %q failed: %s", e.Command, e.Message)
}
