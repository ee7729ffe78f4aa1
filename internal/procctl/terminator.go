// Package procctl provides process-level control primitives for the
// backend service. Its single concern is the delayed-termination task the
// fatal log path arms: an explicitly owned background task instead of
// ambient process state.
package procctl

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// Terminator schedules one, and only one, delayed process termination.
// Once armed the task is not cancellable and runs independently of
// whoever created it: a fatal condition must always end the process, even
// if the owning sender is torn down first.
type Terminator struct {
	armed atomic.Bool

	sleep func(time.Duration)
	kill  func(sig unix.Signal) error
	diag  io.Writer
}

// NewTerminator creates a Terminator that signals the current process.
func NewTerminator() *Terminator {
	return &Terminator{
		sleep: time.Sleep,
		kill: func(sig unix.Signal) error {
			return unix.Kill(os.Getpid(), sig)
		},
		diag: os.Stderr,
	}
}

// Schedule arms the termination task: after the grace delay the given
// signal is sent to the process. It reports whether the task was armed by
// this call; once a timer is pending, further calls are no-ops returning
// false.
func (t *Terminator) Schedule(delay time.Duration, sig unix.Signal) bool {
	if !t.armed.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		t.sleep(delay)
		if err := t.kill(sig); err != nil {
			fmt.Fprintf(t.diag, "delayed termination signal failed: %v\n", err)
		}
	}()
	return true
}

// Armed reports whether a termination task is pending or has fired.
func (t *Terminator) Armed() bool {
	return t.armed.Load()
}
