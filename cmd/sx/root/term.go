package root

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"synthevix/internal/tui"
	"synthevix/internal/ui"
)

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirm asks a yes/no question on the command's input. Non-interactive input is
// refused so scripts must opt in with a flag.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, errors.New("refusing to prompt on a non-interactive input; pass the confirmation flag")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s [y/N] ", ui.Warn.Render(ui.IconWarn), question)
	return readYes(cmd.InOrStdin())
}

func readYes(r io.Reader) (bool, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func runBoard(cmd *cobra.Command, a *app) error {
	return tui.RunBoard(cmd.Context(), a.svc, a.cfg.Quest.XPMultiplier, cmd.OutOrStdout())
}
