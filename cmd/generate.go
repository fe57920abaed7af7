// ABOUTME: Generate command producing PlantUML/C4 diagrams from CSV tables
// ABOUTME: Runs ingestion, correlation, and serialization end to end

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ahmedalalousi/hwVisualiser/internal/config"
	"github.com/ahmedalalousi/hwVisualiser/internal/diag"
	"github.com/ahmedalalousi/hwVisualiser/internal/inventory"
	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
	"github.com/spf13/cobra"
)

const (
	FormatPlantUML = "plantuml"
	FormatC4       = "c4"
	FormatBoth     = "both"

	plantUMLOutput = "hardware_inventory.puml"
	c4Output       = "hardware_inventory_c4.puml"
)

var (
	generateInputDir  string
	generateOutputDir string
	generateFormat    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate diagrams from inventory CSV tables",
	Long: `Generate PlantUML and/or C4 diagrams from the hardware partition table
(chasses.csv) and the application installation table (fixed_inventory_file.csv)
found in the input directory.

Exit codes:
  0 - Diagrams written
  1 - Unrecoverable input/output error (missing file, unreadable path)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(generateFormat); err != nil {
			return err
		}
		return runGenerate(generateInputDir, generateOutputDir, generateFormat, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateInputDir, "input-dir", "", "Directory containing the input CSV files")
	generateCmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "Directory where the output files will be written")
	generateCmd.Flags().StringVar(&generateFormat, "format", FormatBoth, "Output format: plantuml, c4, or both")
	generateCmd.MarkFlagRequired("input-dir")
	generateCmd.MarkFlagRequired("output-dir")
}

func validateFormat(format string) error {
	switch format {
	case FormatPlantUML, FormatC4, FormatBoth:
		return nil
	default:
		return fmt.Errorf("--format must be one of %s, %s, %s", FormatPlantUML, FormatC4, FormatBoth)
	}
}

// runGenerate is the full pipeline: ingest both tables, correlate, serialize.
// Shared with the wizard command.
func runGenerate(inputDir, outputDir, format string, w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	inv, err := loadInventory(inputDir)
	if err != nil {
		return err
	}

	result := inventory.Correlate(inv.Applications, inv.Partitions)
	logMatchResult(result)
	inv.ApplyMatches(result)
	inv.AddUnmatchedPartition()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	opts := puml.WriterOptions{
		MaxAppsPerGroup:  cfg.MaxAppsPerGroup,
		MaxUnmatchedApps: cfg.MaxUnmatchedApps,
	}
	if format == FormatPlantUML || format == FormatBoth {
		path := filepath.Join(outputDir, plantUMLOutput)
		if err := writeDiagramFile(path, func(f io.Writer) error {
			return puml.WriteDiagram(f, inv, opts)
		}); err != nil {
			return err
		}
		slog.Info("PlantUML diagram written", "path", path)
	}
	if format == FormatC4 || format == FormatBoth {
		path := filepath.Join(outputDir, c4Output)
		if err := writeDiagramFile(path, func(f io.Writer) error {
			return puml.WriteC4(f, inv)
		}); err != nil {
			return err
		}
		slog.Info("C4 diagram written", "path", path)
	}

	return printSummary(w, diag.Summarize(inv), result)
}

// loadInventory ingests both source tables from the input directory.
// Both tables are required; missing files abort the run.
func loadInventory(inputDir string) (*inventory.Inventory, error) {
	files, err := inventory.FindInputFiles(inputDir)
	if err != nil {
		return nil, err
	}
	if files.Partitions == "" {
		return nil, fmt.Errorf("could not find chasses.csv in %s", inputDir)
	}
	if files.Applications == "" {
		return nil, fmt.Errorf("could not find fixed_inventory_file.csv in %s", inputDir)
	}

	inv := inventory.New()
	if err := inv.LoadPartitionsCSV(files.Partitions); err != nil {
		return nil, err
	}
	if err := inv.LoadApplicationsCSV(files.Applications); err != nil {
		return nil, err
	}
	return inv, nil
}

// logMatchResult reports per-strategy counts and bounded host samples for
// operator auditing.
func logMatchResult(result inventory.MatchResult) {
	slog.Info("Correlation finished",
		"hosts", result.TotalHosts,
		"matched_hosts", result.MatchedHosts,
		"matched_records", result.MatchedRecords,
		"unmatched_records", result.UnmatchedRecords,
	)
	for strategy, count := range result.Stats {
		slog.Info("Strategy matches", "strategy", string(strategy), "hosts", count)
	}
	if len(result.SampleUnmatched) > 0 {
		slog.Info("Sample unmatched hosts", "hosts", result.SampleUnmatched)
	}
	if len(result.SampleMatched) > 0 {
		slog.Debug("Sample matched hosts", "hosts", result.SampleMatched)
	}
}

func writeDiagramFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// printSummary ends the run with the headline totals an operator needs to
// judge correlation quality.
func printSummary(w io.Writer, summary diag.Summary, result inventory.MatchResult) error {
	if IsJSONOutput() {
		return json.NewEncoder(w).Encode(map[string]interface{}{
			"summary":    summary,
			"strategies": result.Stats,
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Run Summary ===")
	fmt.Fprint(w, summary.String())
	if len(result.Stats) > 0 {
		fmt.Fprintln(w, "Matching strategies used:")
		for _, strategy := range []inventory.Strategy{
			inventory.StrategyExact,
			inventory.StrategyCaseInsensitive,
			inventory.StrategyDomainCleanup,
			inventory.StrategyVMCleanup,
			inventory.StrategyPartial,
		} {
			if count := result.Stats[strategy]; count > 0 {
				fmt.Fprintf(w, "  %s: %d hosts\n", strategy, count)
			}
		}
	}
	return nil
}
