package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okxiaochen/americano/internal/inhibit"
)

func NewStatusCommand() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show what is currently holding the machine awake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assertions, err := inhibit.Assertions()
			if err != nil {
				return fmt.Errorf("reading sleep assertions: %w", err)
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "text":
				if len(assertions) == 0 {
					fmt.Println("Nothing is holding the machine awake.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 2, 8, 2, ' ', 0)
				fmt.Fprintln(w, "PID\tWHAT\tWHO\tWHY")
				for _, a := range assertions {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.PID, a.What, a.Who, a.Why)
				}
				return w.Flush()
			case "json":
				out, err := json.MarshalIndent(assertions, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			default:
				return usageErrorf("unknown format %q", format)
			}
		},
	}
	statusCmd.Flags().StringP("format", "F", "text", "Format to use (text/json)")

	return statusCmd
}
