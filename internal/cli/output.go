package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) jsonOutput(cmd *cobra.Command) bool {
	if on, err := cmd.Flags().GetBool("json"); err == nil && on {
		return true
	}
	return a.IsTerminal == nil || !a.IsTerminal()
}

// render writes v as indented JSON or the formatted text, depending on the
// --json flag and whether stdout is a terminal.
func (a *App) render(cmd *cobra.Command, v any, text func() string) error {
	out := cmd.OutOrStdout()
	if a.jsonOutput(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, text())
	return err
}
