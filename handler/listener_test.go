package handler

import (
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func localConfig(port int) *TCPServerConfig {
	config := NewTCPServerConfig()
	config.Address = "127.0.0.1"
	config.Port = port
	return config
}

func TestListenPortInUse(t *testing.T) {
	first, err := Listen(localConfig(0))
	require.NoError(t, err)
	defer first.Close()

	port := first.Addr().(*net.TCPAddr).Port
	_, err = Listen(localConfig(port))

	var be *BindError
	require.ErrorAs(t, err, &be)
	require.True(t, strings.HasSuffix(be.Address, ":"+strconv.Itoa(port)))
	require.NotNil(t, be.Unwrap())
}

func TestListenAddressNotLocal(t *testing.T) {
	config := localConfig(0)
	config.Address = "192.0.2.1"
	_, err := Listen(config)

	var be *BindError
	require.ErrorAs(t, err, &be)
}

func TestListenerAcceptAndClose(t *testing.T) {
	l, err := Listen(localConfig(0))
	require.NoError(t, err)

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := l.Accept()
		if err == nil {
			accepted <- c
		}
		close(accepted)
	}()

	c, err := net.DialTimeout("tcp", l.Addr().String(), time.Second)
	require.NoError(t, err)
	defer c.Close()

	sc, ok := <-accepted
	require.True(t, ok)
	sc.Close()

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	_, err = l.Accept()
	require.Error(t, err)
}
