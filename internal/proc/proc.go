// Package proc inspects the local process table: fuzzy command line
// search, liveness checks, and ps-style display formatting.
package proc

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// ErrNoMatch is returned by Search when no process matches the term.
var ErrNoMatch = errors.New("no matching process")

// Entry is one row of the process table. Display fields are
// pre-formatted the way ps renders them so callers can print them
// without knowing about platform quirks.
type Entry struct {
	PID        int32
	PPID       int32
	User       string
	CPUPercent float64
	Started    string
	Terminal   string
	CPUTime    string
	Command    string
}

// ParsePID reports whether token is a usable process id. Zero and
// negative values are rejected so a bare "0" falls through to name
// search instead of targeting the kernel.
func ParsePID(token string) (int32, bool) {
	pid, err := strconv.ParseInt(token, 10, 32)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return int32(pid), true
}

// Alive reports whether pid exists in the process table. It sends the
// null signal and treats EPERM as alive: the process is there, we just
// don't own it.
func Alive(pid int32) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(int(pid), 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}

// CommandName returns the short executable name for pid.
func CommandName(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", fmt.Errorf("looking up pid %d: %w", pid, err)
	}
	name, err := p.Name()
	if err != nil {
		return "", fmt.Errorf("reading name of pid %d: %w", pid, err)
	}
	return name, nil
}

// Search returns every process whose full command line contains term,
// case-insensitively. The calling process itself is excluded so the
// search never matches the americano invocation that carries the term
// in its own argv. Entries that vanish mid-scan are skipped.
func Search(term string) ([]Entry, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	self := int32(os.Getpid())
	needle := strings.ToLower(term)

	var matches []Entry
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			// Gone already, or a kernel thread with no argv.
			continue
		}
		if !strings.Contains(strings.ToLower(cmdline), needle) {
			continue
		}
		matches = append(matches, newEntry(p, cmdline))
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, term)
	}
	return matches, nil
}

// newEntry collects display fields best-effort. The command line is the
// only field a row cannot do without; everything else degrades to a
// placeholder when the kernel refuses or the process slips away.
func newEntry(p *process.Process, cmdline string) Entry {
	e := Entry{
		PID:      p.Pid,
		User:     "?",
		Started:  "?",
		Terminal: "??",
		CPUTime:  "0:00.00",
		Command:  cmdline,
	}
	if ppid, err := p.Ppid(); err == nil {
		e.PPID = ppid
	}
	if user, err := p.Username(); err == nil && user != "" {
		e.User = user
	}
	if pct, err := p.CPUPercent(); err == nil {
		e.CPUPercent = pct
	}
	if ms, err := p.CreateTime(); err == nil && ms > 0 {
		e.Started = formatStarted(time.UnixMilli(ms), time.Now())
	}
	if tty, err := p.Terminal(); err == nil && tty != "" {
		e.Terminal = strings.TrimPrefix(tty, "/dev/")
	}
	if ts, err := p.Times(); err == nil {
		e.CPUTime = formatCPUTime(ts.User + ts.System)
	}
	return e
}

// formatStarted renders a start time the way the ps STARTED column
// does: clock time for today, day and month within the current year,
// full date otherwise.
func formatStarted(t, now time.Time) string {
	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("3:04PM")
	case t.Year() == now.Year():
		return t.Format("2Jan")
	default:
		return t.Format("2Jan06")
	}
}

// formatCPUTime renders accumulated CPU seconds as the ps TIME column:
// minutes, seconds, and centiseconds.
func formatCPUTime(seconds float64) string {
	cs := int64(seconds * 100)
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs%6000)/100, cs%100)
}
