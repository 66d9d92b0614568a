// Package session drives one americano run: lock onto a target, hold
// the sleep inhibitor, watch the target, release.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/okxiaochen/americano/internal/inhibit"
	"github.com/okxiaochen/americano/internal/monitor"
	"github.com/okxiaochen/americano/internal/proc"
	"github.com/okxiaochen/americano/internal/resolve"
)

// ErrNotRunning reports a target pid that is not in the process table.
var ErrNotRunning = errors.New("process is not running")

// InterruptedError reports the signal that cut a session short.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted by %v", e.Signal)
}

// ExitCode maps the signal to the shell convention of 128 plus the
// signal number.
func (e *InterruptedError) ExitCode() int {
	if sig, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(sig)
	}
	return 130
}

// Inhibitor is the part of inhibit.Handle a session needs.
type Inhibitor interface {
	Stop()
}

// Options configures a session. Token, DisplaySleep, Interval and
// Logger come from the command line. The function fields default to
// the real implementations; tests inject them.
type Options struct {
	// Token is a pid or a search term, exactly as the user typed it.
	Token string
	// DisplaySleep keeps the display awake too.
	DisplaySleep bool
	// Interval is the time between liveness checks.
	Interval time.Duration
	Logger   *slog.Logger

	// Resolve maps a non-numeric token to one process.
	Resolve func(term string) (proc.Entry, error)
	// Probe reports whether a pid is alive.
	Probe func(pid int32) bool
	// StartInhibitor launches the sleep inhibitor.
	StartInhibitor func(displaySleep bool) (Inhibitor, error)
	// Signals overrides the interrupt channel.
	Signals <-chan os.Signal
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = time.Minute
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Resolve == nil {
		o.Resolve = func(term string) (proc.Entry, error) {
			r := &resolve.Resolver{}
			return r.Resolve(term)
		}
	}
	if o.Probe == nil {
		o.Probe = proc.Alive
	}
	if o.StartInhibitor == nil {
		logger := o.Logger
		o.StartInhibitor = func(displaySleep bool) (Inhibitor, error) {
			return inhibit.Start(displaySleep, logger)
		}
	}
	return o
}

// Run keeps the machine awake until the token's process exits.
//
// The inhibitor starts only after the target is resolved and confirmed
// alive, and every path out of here stops it again. A cancelled
// selection is a no-op, not an error.
func Run(opts Options) error {
	opts = opts.withDefaults()
	log := opts.Logger

	target, err := lockTarget(opts)
	if err != nil {
		if errors.Is(err, resolve.ErrCancelled) {
			log.Info("Selection cancelled")
			return nil
		}
		return err
	}

	if !opts.Probe(target.PID) {
		return fmt.Errorf("%w: pid %d", ErrNotRunning, target.PID)
	}

	handle, err := opts.StartInhibitor(opts.DisplaySleep)
	if err != nil {
		return fmt.Errorf("cannot keep machine awake: %w", err)
	}
	defer handle.Stop()

	ctx, cancel, received := interruptContext(opts.Signals)
	defer cancel()

	log.Info("Keeping machine awake", "target", target.String(), "interval", opts.Interval)

	w := &monitor.Watcher{Probe: opts.Probe}
	err = w.Watch(ctx, target, opts.Interval,
		func(elapsed time.Duration) {
			log.Info("Target still running", "target", target.String(), "elapsed", elapsed.Round(time.Second))
		},
		func() {
			log.Info("Target exited", "target", target.String())
		})
	if err != nil {
		handle.Stop()
		sig := received()
		log.Warn("Interrupted, letting the machine sleep again", "signal", sig)
		return &InterruptedError{Signal: sig}
	}

	handle.Stop()
	return nil
}

// RunTimer keeps the machine awake for a fixed duration.
func RunTimer(opts Options, d time.Duration) error {
	opts = opts.withDefaults()
	log := opts.Logger

	handle, err := opts.StartInhibitor(opts.DisplaySleep)
	if err != nil {
		return fmt.Errorf("cannot keep machine awake: %w", err)
	}
	defer handle.Stop()

	ctx, cancel, received := interruptContext(opts.Signals)
	defer cancel()

	deadline := time.Now().Add(d)
	log.Info("Keeping machine awake", "for", d, "until", deadline.Format(time.DateTime))

	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			handle.Stop()
			sig := received()
			log.Warn("Interrupted, letting the machine sleep again", "signal", sig)
			return &InterruptedError{Signal: sig}
		case <-timer.C:
			handle.Stop()
			log.Info("Timer elapsed, letting the machine sleep again", "held", d)
			return nil
		case <-ticker.C:
			remaining := time.Until(deadline)
			if remaining < 0 {
				remaining = 0
			}
			log.Info("Still keeping machine awake", "remaining", remaining.Round(time.Second))
		}
	}
}

// lockTarget maps the token to a concrete process. A numeric token is
// trusted as-is; anything else goes through the resolver.
func lockTarget(opts Options) (monitor.Target, error) {
	if pid, ok := proc.ParsePID(opts.Token); ok {
		return monitor.Target{PID: pid, Name: bestName(pid, "")}, nil
	}
	entry, err := opts.Resolve(opts.Token)
	if err != nil {
		return monitor.Target{}, err
	}
	return monitor.Target{PID: entry.PID, Name: bestName(entry.PID, entry.Command)}, nil
}

// bestName asks the process table for the short executable name and
// falls back to the command line's first word.
func bestName(pid int32, cmdline string) string {
	if name, err := proc.CommandName(pid); err == nil && name != "" {
		return name
	}
	if fields := strings.Fields(cmdline); len(fields) > 0 {
		return filepath.Base(fields[0])
	}
	return ""
}

// interruptContext cancels when SIGINT or SIGTERM arrives. The last
// returned function reports which signal it was; call it only after
// the context is done.
func interruptContext(ch <-chan os.Signal) (context.Context, func(), func() os.Signal) {
	stop := func() {}
	if ch == nil {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		stop = func() { signal.Stop(c) }
		ch = c
	}

	ctx, cancel := context.WithCancel(context.Background())
	var received os.Signal
	go func() {
		select {
		case sig, ok := <-ch:
			if ok {
				received = sig
				cancel()
			}
		case <-ctx.Done():
		}
	}()

	cleanup := func() {
		stop()
		cancel()
	}
	sigValue := func() os.Signal {
		if received == nil {
			return syscall.SIGINT
		}
		return received
	}
	return ctx, cleanup, sigValue
}
