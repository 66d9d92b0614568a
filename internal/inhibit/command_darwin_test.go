package inhibit

import (
	"os"
	"strconv"
	"testing"
)

func TestInhibitCommand(t *testing.T) {
	name, args := inhibitCommand(false)
	if name != "caffeinate" {
		t.Errorf("command = %q, want caffeinate", name)
	}
	if len(args) != 3 || args[0] != "-ims" {
		t.Errorf("args = %v, want [-ims -w <pid>]", args)
	}
	if args[1] != "-w" || args[2] != strconv.Itoa(os.Getpid()) {
		t.Errorf("args = %v, want caffeinate tied to pid %d", args, os.Getpid())
	}

	_, withDisplay := inhibitCommand(true)
	if withDisplay[0] != "-dims" {
		t.Errorf("display args = %v, want -dims first", withDisplay)
	}
}
