package async

import (
	"fmt"
	"sync"
	"time"
)

// Waiter completes after n calls to Done, or as soon as a non-nil error is
// sent. Only the first error is kept.
type Waiter struct {
	wg   sync.WaitGroup
	endC chan struct{}
	errC chan error
}

func NewWaiter(n int) *Waiter {
	w := &Waiter{
		endC: make(chan struct{}),
		errC: make(chan error, 1),
	}
	w.wg.Add(n)
	go func() {
		w.wg.Wait()
		close(w.endC)
	}()
	return w
}

func (w *Waiter) SendError(err error) {
	if err == nil {
		return
	}

	select {
	case w.errC <- err:
	default:
	}
}

func (w *Waiter) Done() {
	w.wg.Done()
}

func (w *Waiter) Wait() error {
	select {
	case err := <-w.errC:
		return err
	default:
	}

	select {
	case err := <-w.errC:
		return err
	case <-w.endC:
		return nil
	}
}

// WaitTimeout is Wait bounded by d.
func (w *Waiter) WaitTimeout(d time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- w.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(d):
		return fmt.Errorf("waiter timed out after %s", d)
	}
}
