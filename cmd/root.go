package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/okxiaochen/americano/internal/core"
	"github.com/okxiaochen/americano/internal/proc"
	"github.com/okxiaochen/americano/internal/session"
)

// UsageError marks argument mistakes so main can exit with the usage
// code instead of reporting a runtime failure.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// runMode is what the positional arguments asked for: a countdown or a
// process token.
type runMode struct {
	duration time.Duration
	token    string
}

func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose int

	homeDir, _ := os.UserHomeDir()

	rootCmd := &cobra.Command{
		Use:   "americano [flags] <duration|pid|search term>",
		Short: "americano - keep the machine awake",
		Long: `americano keeps the machine awake while something interesting is running.

Give it a duration ("90m", "2h30m") and it holds off sleep until the
timer ends. Give it a pid or a search term and it holds off sleep until
that process exits. A term that matches several processes opens a
numbered picker on stderr.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := core.InitializeConfig(configPath); err != nil {
				return err
			}
			if verbose == 0 {
				verbose = core.Config.Verbose
			}
			core.SetupLogging(verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return usageErrorf("a duration, pid or search term is required")
			}

			mode, err := classifyArgs(args)
			if err != nil {
				return err
			}

			interval := core.Config.Interval
			if cmd.Flags().Changed("interval") {
				interval, _ = cmd.Flags().GetDuration("interval")
				if interval <= 0 {
					return usageErrorf("interval must be positive, got %s", interval)
				}
			}
			displaySleep := core.Config.DisplaySleep
			if cmd.Flags().Changed("display") {
				displaySleep, _ = cmd.Flags().GetBool("display")
			}

			opts := session.Options{
				Token:        mode.token,
				DisplaySleep: displaySleep,
				Interval:     interval,
			}
			if mode.duration > 0 {
				return session.RunTimer(opts, mode.duration)
			}
			return session.Run(opts)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config-path", filepath.Join(homeDir, core.BaseDirName),
		"config path",
	)
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "more output, repeat for even more")
	rootCmd.Flags().BoolP("display", "d", false, "keep the display awake too")
	rootCmd.Flags().DurationP("interval", "i", 0, "time between liveness checks (default from config file, then 60s)")

	rootCmd.AddCommand(
		NewResolveCommand(),
		NewStatusCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// classifyArgs maps the positional arguments onto a run mode.
//
//	americano 90m          countdown
//	americano 28082        watch that pid
//	americano pid 28082    watch that pid, spelled out
//	americano node         search for a process
//
// A bare number is always a pid; durations need a unit.
func classifyArgs(args []string) (runMode, error) {
	switch len(args) {
	case 1:
		token := args[0]
		if token == "" {
			return runMode{}, usageErrorf("empty target")
		}
		if _, ok := proc.ParsePID(token); ok {
			return runMode{token: token}, nil
		}
		if d, err := time.ParseDuration(token); err == nil {
			if d <= 0 {
				return runMode{}, usageErrorf("duration must be positive, got %q", token)
			}
			return runMode{duration: d}, nil
		}
		return runMode{token: token}, nil
	case 2:
		if args[0] != "pid" {
			return runMode{}, usageErrorf("unknown mode %q, the only two-argument form is: americano pid <pid>", args[0])
		}
		if _, ok := proc.ParsePID(args[1]); !ok {
			return runMode{}, usageErrorf("%q is not a process id", args[1])
		}
		return runMode{token: args[1]}, nil
	default:
		return runMode{}, usageErrorf("at most two arguments, got %d", len(args))
	}
}
