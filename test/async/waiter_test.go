package async

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaiterDone(t *testing.T) {
	w := NewWaiter(2)
	w.Done()
	w.Done()
	require.NoError(t, w.WaitTimeout(time.Second))
}

func TestWaiterFirstErrorWins(t *testing.T) {
	w := NewWaiter(1)
	first := errors.New("first")
	w.SendError(nil)
	w.SendError(first)
	w.SendError(errors.New("second"))
	require.ErrorIs(t, w.Wait(), first)
	w.Done()
}

func TestWaiterTimeout(t *testing.T) {
	w := NewWaiter(1)
	require.Error(t, w.WaitTimeout(10*time.Millisecond))
	w.Done()
}
