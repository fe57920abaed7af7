// ABOUTME: Inspect command parsing a diagram back into a hierarchy graph
// ABOUTME: Prints the reconstructed tree as indented text or JSON

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	"github.com/spf13/cobra"
)

var inspectMetadata bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <diagram.puml>",
	Short: "Parse a diagram and print the reconstructed hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := puml.ParseFile(args[0])
		if err != nil {
			return err
		}
		if h.Empty() {
			return fmt.Errorf("no usable structure found in %s", args[0])
		}
		return printHierarchy(os.Stdout, h)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectMetadata, "metadata", false, "Include node metadata lines")
}

func printHierarchy(w io.Writer, h *puml.Hierarchy) error {
	if IsJSONOutput() {
		return json.NewEncoder(w).Encode(map[string]interface{}{
			"roots":         h.Roots,
			"nodes":         h.NodeCount(),
			"skipped_lines": h.SkippedCount,
		})
	}

	h.Walk(func(n *puml.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s [%s] (%s)\n", indent, n.Name, n.Type, n.ID)
		if inspectMetadata {
			for _, meta := range n.Metadata {
				fmt.Fprintf(w, "%s    %s\n", indent, meta)
			}
		}
	})
	fmt.Fprintf(w, "\n%d nodes", h.NodeCount())
	if h.SkippedCount > 0 {
		fmt.Fprintf(w, ", %d lines skipped", h.SkippedCount)
	}
	fmt.Fprintln(w)
	return nil
}
