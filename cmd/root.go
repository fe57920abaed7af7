// ABOUTME: Root command for the hwVisualiser CLI
// ABOUTME: Handles global flags and logger setup

package cmd

import (
	"github.com/ahmedalalousi/hwVisualiser/internal/logger"
	"github.com/spf13/cobra"
)

var jsonOutput bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "hwvisualiser",
	Short: "Hardware inventory correlation and diagram tooling",
	Long: `hwvisualiser ingests hardware and application inventory CSV tables,
correlates installed applications to logical partitions, and generates
PlantUML/C4 diagrams of the System -> LPAR -> application hierarchy.

It can also parse generated diagrams back into a hierarchy graph for
browsing, serving, and consistency checking.

Environment Variables:
  LOG_LEVEL, LOG_FORMAT          Logging level and format
  HWVIZ_*                        Tool settings (see .env support)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
