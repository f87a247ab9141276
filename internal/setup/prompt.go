package setup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompts share one buffered reader so consecutive questions consume
// consecutive lines.

// ConfirmProceed asks a [Y/n] question. Empty input proceeds; any reply not
// starting with "n" also proceeds, garbage included. That matches the
// long-standing behavior of the interactive flow, so it stays.
func ConfirmProceed(r *bufio.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [Y/n] ", prompt)
	reply := readLine(r)
	return !strings.HasPrefix(strings.ToLower(reply), "n")
}

// ConfirmOptIn asks a [y/N] question. Only an explicit "y" or "yes"
// proceeds; empty input declines.
func ConfirmOptIn(r *bufio.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	reply := strings.ToLower(readLine(r))
	return reply == "y" || reply == "yes"
}

func readLine(r *bufio.Reader) string {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
