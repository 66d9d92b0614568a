package inhibit

import (
	"os/exec"
	"syscall"
)

// inhibitCommand builds the systemd-inhibit invocation. The helper
// holds a block-mode idle and sleep lock for as long as its payload
// runs, and the payload is an unbounded sleep. displaySleep has no
// logind counterpart; display power stays with the compositor.
func inhibitCommand(displaySleep bool) (string, []string) {
	return "systemd-inhibit", []string{
		"--what=idle:sleep",
		"--who=americano",
		"--why=keeping the machine awake",
		"--mode=block",
		"sleep", "infinity",
	}
}

// setSysProcAttr has the kernel SIGTERM the inhibitor if americano
// dies without cleaning up.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
}
