package mirror

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ConfirmFunc decides whether the orphaned mirror commits handed to it may
// be removed from the sync repository. Returning false declines, which ends
// the run cleanly without mutating anything.
type ConfirmFunc func(orphans []*Commit) (bool, error)

// LineConfirm returns a [ConfirmFunc] that writes one summary line per
// orphan to w, then a prompt, and approves removal only when the next line
// read from r is exactly "y". Anything else, including end of input,
// declines.
func LineConfirm(r io.Reader, w io.Writer) ConfirmFunc {
	return func(orphans []*Commit) (bool, error) {
		for _, c := range orphans {
			if _, err := fmt.Fprintln(w, c.Summary()); err != nil {
				return false, fmt.Errorf("failed to write orphan summary: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "Remove %d mirror commit(s)? [y/N] ", len(orphans)); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		return strings.TrimRight(line, "\r\n") == "y", nil
	}
}
