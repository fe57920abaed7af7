// ABOUTME: Wizard command collecting generate inputs via a huh form
// ABOUTME: Guided alternative to the generate flags

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively configure and run diagram generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			inputDir  string
			outputDir string
			format    = FormatBoth
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Input directory").
					Description("Directory containing chasses.csv and fixed_inventory_file.csv").
					Validate(validateDir).
					Value(&inputDir),
				huh.NewInput().
					Title("Output directory").
					Description("Created if it does not exist").
					Validate(validateNotEmpty).
					Value(&outputDir),
				huh.NewSelect[string]().
					Title("Output format").
					Options(
						huh.NewOption("PlantUML + C4", FormatBoth),
						huh.NewOption("PlantUML only", FormatPlantUML),
						huh.NewOption("C4 only", FormatC4),
					).
					Value(&format),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("wizard cancelled: %w", err)
		}
		return runGenerate(inputDir, outputDir, format, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func validateDir(path string) error {
	if path == "" {
		return fmt.Errorf("required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("not found")
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

func validateNotEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}
