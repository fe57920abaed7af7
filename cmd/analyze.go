// ABOUTME: Analyze command cross-checking diagrams against the source tables
// ABOUTME: Prints an inventory summary and a consistency report with exit codes

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ahmedalalousi/hwVisualiser/internal/diag"
	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	"github.com/ahmedalalousi/hwVisualiser/internal/tui/styles"
	"github.com/spf13/cobra"
)

var (
	analyzeInputDir string
	analyzeDiagram  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze inventory tables and verify a generated diagram",
	Long: `Analyze recomputes statistics from the source CSV tables and, when a
diagram is given, cross-checks the diagram content against them: system name
sets, per-system CPU/memory totals, partition name sets, and residual
unmatched hosts.

Exit codes:
  0 - Consistent (or no diagram given)
  1 - Discrepancies found
  2 - Error (missing input, unreadable diagram)`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runAnalyze(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeInputDir, "input-dir", "", "Directory containing the input CSV files")
	analyzeCmd.Flags().StringVar(&analyzeDiagram, "diagram", "", "Generated PlantUML diagram to verify (optional)")
	analyzeCmd.MarkFlagRequired("input-dir")
}

// runAnalyze executes the analysis and returns an exit code.
func runAnalyze(w io.Writer) int {
	inv, err := loadInventory(analyzeInputDir)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	result := inventory.Correlate(inv.Applications, inv.Partitions)
	inv.ApplyMatches(result)
	summary := diag.Summarize(inv)

	var report *diag.Report
	if analyzeDiagram != "" {
		h, err := puml.ParseFile(analyzeDiagram)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		report = diag.Compare(inv, h)
	}

	if IsJSONOutput() {
		out := map[string]interface{}{"summary": summary}
		if report != nil {
			out["report"] = report
			out["consistent"] = report.Consistent()
		}
		json.NewEncoder(w).Encode(out)
	} else {
		printAnalysis(w, summary, report)
	}

	if report != nil && !report.Consistent() {
		return 1
	}
	return 0
}

func printAnalysis(w io.Writer, summary diag.Summary, report *diag.Report) {
	fmt.Fprintln(w, "=== Data Analysis ===")
	fmt.Fprint(w, summary.String())

	if len(summary.AppTypes) > 0 {
		fmt.Fprintln(w, "Application types:")
		for _, tc := range summary.AppTypes {
			fmt.Fprintf(w, "  %s: %d\n", tc.Type, tc.Count)
		}
	}

	if report == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Diagram Consistency ===")
	printCheck(w, "System names", append(report.MissingSystems, report.ExtraSystems...))
	printCheck(w, "Aggregate CPU/memory", mismatchLines(report.Mismatches))
	printCheck(w, "Partition names", append(report.MissingPartitions, report.ExtraPartitions...))

	if len(report.UnmatchedHosts) > 0 {
		sample := report.UnmatchedHosts
		if len(sample) > 10 {
			sample = sample[:10]
		}
		fmt.Fprintf(w, "Unmatched hosts: %d (sample: %v)\n", len(report.UnmatchedHosts), sample)
	}

	if report.Consistent() {
		fmt.Fprintln(w, styles.StatusOK.Render("CONSISTENT"))
	} else {
		fmt.Fprintln(w, styles.StatusCritical.Render("INCONSISTENT"))
	}
}

func printCheck(w io.Writer, name string, problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(w, "%s %s\n", styles.StatusOK.Render("✓"), name)
		return
	}
	fmt.Fprintf(w, "%s %s\n", styles.StatusCritical.Render("✗"), name)
	for _, p := range problems {
		fmt.Fprintf(w, "    %s\n", p)
	}
}

func mismatchLines(mismatches []diag.AggregateMismatch) []string {
	lines := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		lines = append(lines, fmt.Sprintf("%s %s: source %.2f, diagram %.2f", m.System, m.Field, m.Source, m.Diagram))
	}
	return lines
}
