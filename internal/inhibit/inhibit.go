// Package inhibit owns the sleep inhibitor child process.
//
// americano never talks to power management APIs directly. It starts
// the platform helper (caffeinate on macOS, systemd-inhibit on Linux)
// as a child and keeps that child alive exactly as long as sleep should
// stay suppressed. Terminating the child is the single release path.
package inhibit

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Handle tracks a running sleep inhibitor. A Handle belongs to the
// goroutine that started it. Stop may be called any number of times.
type Handle struct {
	pid    int
	logger *slog.Logger
}

// Start launches the platform sleep inhibitor. displaySleep keeps the
// display awake too, where the platform helper supports it.
func Start(displaySleep bool, logger *slog.Logger) (*Handle, error) {
	if logger == nil {
		logger = slog.Default()
	}

	name, args := inhibitCommand(displaySleep)
	cmd := exec.Command(name, args...)
	setSysProcAttr(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting sleep inhibitor %s: %w", name, err)
	}

	// Reap the child whenever it exits so a dead inhibitor never
	// lingers as a zombie while the target is still being watched.
	go cmd.Wait()

	logger.Info("Sleep inhibitor started",
		"command", name,
		"pid", cmd.Process.Pid,
		"display_sleep", displaySleep)

	return &Handle{pid: cmd.Process.Pid, logger: logger}, nil
}

// PID returns the inhibitor child pid, or 0 once stopped.
func (h *Handle) PID() int {
	if h == nil {
		return 0
	}
	return h.pid
}

// Stop terminates the inhibitor child. Stopping twice, or stopping
// after the child already died on its own, is harmless.
func (h *Handle) Stop() {
	if h == nil || h.pid == 0 {
		return
	}
	pid := h.pid
	h.pid = 0

	err := unix.Kill(pid, unix.SIGTERM)
	switch {
	case err == nil:
		h.logger.Info("Sleep inhibitor stopped", "pid", pid)
	case errors.Is(err, unix.ESRCH):
		h.logger.Debug("Sleep inhibitor already gone", "pid", pid)
	default:
		h.logger.Warn("Failed to stop sleep inhibitor", "pid", pid, "error", err)
	}
}
