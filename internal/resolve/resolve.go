// Package resolve turns a search term into a single target process,
// asking the user to disambiguate when several processes match.
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/okxiaochen/americano/internal/proc"
)

// ErrCancelled is returned when the selection stream ends before the
// user picks a match.
var ErrCancelled = errors.New("selection cancelled")

// Resolver narrows a search term down to one process. The zero value
// searches the live process table and prompts on stderr; tests inject
// Query, In and Diag.
type Resolver struct {
	// Query returns the candidates for a term. It must return at least
	// one entry or an error. Defaults to proc.Search.
	Query func(term string) ([]proc.Entry, error)

	// In supplies selection input. Defaults to stdin, so selections can
	// be piped in and end of input cancels.
	In io.Reader

	// Diag receives the match table and prompts. Defaults to stderr so
	// stdout stays clean for the resolved pid.
	Diag io.Writer
}

// Resolve maps term to exactly one process entry.
//
// A single match resolves immediately, without prompting. Multiple
// matches render a numbered table: a number picks a row, any other word
// becomes a fresh search, and end of input cancels. A fresh search that
// matches nothing keeps the current table alive, so a typo never costs
// the user their choices.
func (r *Resolver) Resolve(term string) (proc.Entry, error) {
	query := r.Query
	if query == nil {
		query = proc.Search
	}
	in := r.In
	if in == nil {
		in = os.Stdin
	}
	diag := r.Diag
	if diag == nil {
		diag = os.Stderr
	}
	scanner := bufio.NewScanner(in)

	matches, err := query(term)
	if err != nil {
		return proc.Entry{}, err
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	for {
		writeTable(diag, matches)
		entry, next, err := prompt(scanner, diag, matches)
		if err != nil {
			return proc.Entry{}, err
		}
		if next == "" {
			return entry, nil
		}

		fresh, err := query(next)
		switch {
		case errors.Is(err, proc.ErrNoMatch):
			fmt.Fprintf(diag, "No processes match %q, keeping the previous matches.\n", next)
		case err != nil:
			return proc.Entry{}, err
		case len(fresh) == 1:
			return fresh[0], nil
		default:
			matches = fresh
		}
	}
}

// prompt reads lines until one is usable: a row number resolves, any
// other word comes back as the next search term. Out-of-range numbers
// and blank lines re-prompt. Numbers are never treated as search terms,
// so typing a pid-looking value cannot silently start a new search.
func prompt(scanner *bufio.Scanner, diag io.Writer, matches []proc.Entry) (proc.Entry, string, error) {
	for {
		fmt.Fprintf(diag, "Select 1-%d, or type a new search term: ", len(matches))
		if !scanner.Scan() {
			fmt.Fprintln(diag)
			if err := scanner.Err(); err != nil {
				return proc.Entry{}, "", fmt.Errorf("reading selection: %w", err)
			}
			return proc.Entry{}, "", ErrCancelled
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if n, err := strconv.Atoi(input); err == nil {
			if n < 1 || n > len(matches) {
				fmt.Fprintf(diag, "%d is out of range.\n", n)
				continue
			}
			return matches[n-1], "", nil
		}
		return proc.Entry{}, input, nil
	}
}

// writeTable renders matches as a numbered table. When the destination
// is a terminal, command lines are clipped to the window width the way
// ps clips its COMMAND column.
func writeTable(w io.Writer, matches []proc.Entry) {
	width := 0
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}

	tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tUSER\tPID\tPPID\t%CPU\tSTARTED\tTTY\tTIME\tCOMMAND")
	for i, e := range matches {
		fmt.Fprintf(tw, "%d)\t%s\t%d\t%d\t%.1f\t%s\t%s\t%s\t%s\n",
			i+1, e.User, e.PID, e.PPID, e.CPUPercent, e.Started, e.Terminal, e.CPUTime, clip(e.Command, width))
	}
	tw.Flush()
}

// clip shortens a command line so the fixed columns plus the command
// still fit on one terminal row. width <= 0 disables clipping.
func clip(s string, width int) string {
	// Rough room taken by the columns before COMMAND.
	const fixed = 72
	max := width - fixed
	if width <= 0 || max < 16 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
