package inhibit

import (
	"os"
	"os/exec"
	"strconv"
)

// inhibitCommand builds the caffeinate invocation: idle, disk and AC
// power sleep are always suppressed, display sleep only on request.
// The -w flag makes caffeinate exit on its own when americano dies
// without cleaning up.
func inhibitCommand(displaySleep bool) (string, []string) {
	flags := "-ims"
	if displaySleep {
		flags = "-dims"
	}
	return "caffeinate", []string{flags, "-w", strconv.Itoa(os.Getpid())}
}

func setSysProcAttr(cmd *exec.Cmd) {}
