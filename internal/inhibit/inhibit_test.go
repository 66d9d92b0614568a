package inhibit

import (
	"io"
	"log/slog"
	"os/exec"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSleeper gives tests a real child pid to stop.
func startSleeper(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sleep", "300")
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting sleep: %v", err)
	}
	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})
	return cmd
}

func TestStopTerminatesChild(t *testing.T) {
	cmd := startSleeper(t)
	h := &Handle{pid: cmd.Process.Pid, logger: discardLogger()}

	h.Stop()

	if h.PID() != 0 {
		t.Errorf("PID() = %d after Stop, want 0", h.PID())
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("child still running 3s after Stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	cmd := startSleeper(t)
	h := &Handle{pid: cmd.Process.Pid, logger: discardLogger()}

	h.Stop()
	h.Stop()
	h.Stop()

	if h.PID() != 0 {
		t.Errorf("PID() = %d after repeated Stop, want 0", h.PID())
	}
}

func TestStopAfterChildDied(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Fatalf("running true: %v", err)
	}

	h := &Handle{pid: cmd.Process.Pid, logger: discardLogger()}
	h.Stop()

	if h.PID() != 0 {
		t.Errorf("PID() = %d after Stop on a dead child, want 0", h.PID())
	}
}

func TestStopNilHandle(t *testing.T) {
	var h *Handle
	h.Stop()
	if h.PID() != 0 {
		t.Errorf("nil handle PID() = %d, want 0", h.PID())
	}
}
