// Package ready provides a one-shot readiness gate. Startup work signals the
// gate exactly once; request paths wait on it with a bounded timeout instead
// of polling.
package ready

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultTimeout bounds how long a waiter blocks before giving up.
const DefaultTimeout = 5 * time.Second

// ErrTimeout indicates the gate was not signalled within the wait window.
var ErrTimeout = errors.New("readiness gate: timed out waiting")

// Gate is a one-shot readiness signal. The zero value is not usable; use New.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// New creates an unsignalled Gate.
func New() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Signal marks the gate ready. Safe to call more than once; only the first
// call has effect.
func (g *Gate) Signal() {
	g.once.Do(func() { close(g.ch) })
}

// Ready reports whether the gate has been signalled, without blocking.
func (g *Gate) Ready() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate is signalled, the context is cancelled, or the
// timeout elapses. A non-positive timeout means DefaultTimeout.
func (g *Gate) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTimeout
	}
}
