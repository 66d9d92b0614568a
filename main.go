package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/okxiaochen/americano/cmd"
	"github.com/okxiaochen/americano/internal/session"
)

func main() {
	root := cmd.NewRootCommand()
	err := root.Execute()
	if err == nil {
		return
	}

	var interrupted *session.InterruptedError
	if errors.As(err, &interrupted) {
		// The session already reported the interrupt on stderr.
		os.Exit(interrupted.ExitCode())
	}

	var usage *cmd.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", usage)
		fmt.Fprintln(os.Stderr, "Run 'americano --help' for usage.")
		os.Exit(2)
	}

	slog.Error(err.Error())
	os.Exit(1)
}
