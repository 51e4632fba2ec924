package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/allenwsellars/Cycles/internal/tracker"
)

var errNoTerminal = errors.New("stdin is not a terminal; pass --yes to confirm")

// promptConfirmer asks a yes/no question on the command's streams.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// Confirm returns true only for an explicit "y" or "yes".
func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// confirmerFor returns the Confirmer for a destructive command. With
// assumeYes it always confirms; otherwise it prompts, which requires an
// interactive stdin.
func confirmerFor(cmd *cobra.Command, assumeYes bool) (tracker.Confirmer, error) {
	if assumeYes {
		return tracker.ConfirmFunc(func(string) bool { return true }), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return nil, errNoTerminal
	}
	return promptConfirmer{in: bufio.NewReader(in), out: cmd.OutOrStdout()}, nil
}
