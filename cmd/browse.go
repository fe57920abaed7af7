// ABOUTME: Browse command opening an interactive TUI over a parsed diagram
// ABOUTME: Expand/collapse tree navigation of the hierarchy

package cmd

import (
	"fmt"

	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	"github.com/ahmedalalousi/hwVisualiser/internal/tui/tree"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <diagram.puml>",
	Short: "Browse a diagram hierarchy interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := puml.ParseFile(args[0])
		if err != nil {
			return err
		}
		if h.Empty() {
			return fmt.Errorf("no usable structure found in %s", args[0])
		}

		p := tea.NewProgram(tree.New(h), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run browser: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
