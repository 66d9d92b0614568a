// Package monitor polls a process on a fixed interval until it exits.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/okxiaochen/americano/internal/proc"
)

// Target identifies the process being watched.
type Target struct {
	PID  int32
	Name string
}

func (t Target) String() string {
	if t.Name == "" {
		return fmt.Sprintf("pid %d", t.PID)
	}
	return fmt.Sprintf("%s (pid %d)", t.Name, t.PID)
}

// Watcher polls the process table. The zero value checks the real
// table; tests inject Probe.
type Watcher struct {
	// Probe reports whether a pid is alive. Defaults to proc.Alive.
	Probe func(pid int32) bool
}

// Watch blocks until target exits or ctx is cancelled.
//
// A target that is already gone at the first check reports the exit
// immediately, with no ticks. Every tick re-checks liveness before
// reporting progress, so a tick never claims a dead process is still
// running. Cancellation returns ctx.Err() without calling onExit; only
// a real exit counts as one.
func (w *Watcher) Watch(ctx context.Context, target Target, interval time.Duration, onTick func(elapsed time.Duration), onExit func()) error {
	probe := w.Probe
	if probe == nil {
		probe = proc.Alive
	}
	if interval <= 0 {
		interval = time.Minute
	}

	if !probe(target.PID) {
		onExit()
		return nil
	}

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !probe(target.PID) {
				onExit()
				return nil
			}
			onTick(time.Since(start))
		}
	}
}
