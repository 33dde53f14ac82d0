//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package handler

import "syscall"

const reusePortSupported = false

func listenControl(bool) func(network, address string, c syscall.RawConn) error {
	return nil
}
