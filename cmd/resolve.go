package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/okxiaochen/americano/internal/proc"
	"github.com/okxiaochen/americano/internal/resolve"
)

func NewResolveCommand() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve <pid|search term>",
		Short: "Resolve a search term to a single pid",
		Long: `Resolve a search term to a single pid and print it on stdout.

The match table and prompts go to stderr, so the result can be captured:

  PID=$(americano resolve npm)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]

			// Numeric tokens pass through untouched, same as the
			// monitoring fast path.
			if pid, ok := proc.ParsePID(token); ok {
				fmt.Println(pid)
				return nil
			}

			r := &resolve.Resolver{}
			entry, err := r.Resolve(token)
			if errors.Is(err, resolve.ErrCancelled) {
				slog.Info("Selection cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(entry.PID)
			return nil
		},
	}

	return resolveCmd
}
