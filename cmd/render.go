// ABOUTME: Render command invoking the external PlantUML renderer
// ABOUTME: Produces an SVG with a caller-supplied timeout

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ahmedalalousi/hwVisualiser/internal/config"
	"github.com/ahmedalalousi/hwVisualiser/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderOutput  string
	renderTimeout int
)

var renderCmd = &cobra.Command{
	Use:   "render <diagram.puml>",
	Short: "Render a diagram to SVG via PlantUML",
	Long: `Render invokes the external PlantUML renderer (the jar configured via
HWVIZ_PLANTUML_JAR, or the plantuml binary on PATH) to produce an SVG.
Rendering is bounded by a timeout and failures are propagated explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		timeout := cfg.RenderTimeout
		if renderTimeout > 0 {
			timeout = renderTimeout
		}

		input := args[0]
		output := renderOutput
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
		defer cancel()

		r := render.NewFromConfig(cfg)
		if err := r.RenderSVG(ctx, input, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s -> %s\n", input, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderOutput, "output", "", "Output SVG path (default: input with .svg extension)")
	renderCmd.Flags().IntVar(&renderTimeout, "timeout", 0, "Render timeout in seconds (default: HWVIZ_RENDER_TIMEOUT)")
}
