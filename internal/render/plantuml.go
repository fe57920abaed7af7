// ABOUTME: Synchronous wrapper around the external PlantUML renderer
// ABOUTME: Invokes the jar or binary with a caller-supplied timeout

package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ahmedalalousi/hwVisualiser/internal/config"
)

// Renderer shells out to PlantUML to turn diagram text into SVG. Rendering
// is the one long-running operation in the pipeline, so every call takes a
// context and failures carry the renderer's own stderr.
type Renderer struct {
	JavaBin     string
	PlantUMLJar string
	PlantUMLBin string
}

// NewFromConfig builds a Renderer from tool configuration.
func NewFromConfig(cfg *config.Config) *Renderer {
	return &Renderer{
		JavaBin:     cfg.JavaBin,
		PlantUMLJar: cfg.PlantUMLJar,
		PlantUMLBin: cfg.PlantUMLBin,
	}
}

// RenderSVG renders inputPath to outputPath. PlantUML writes the SVG next to
// the input, so the result is moved into place afterwards.
func (r *Renderer) RenderSVG(ctx context.Context, inputPath, outputPath string) error {
	args := r.commandArgs(inputPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Info("Rendering diagram", "input", inputPath, "command", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("plantuml render timed out: %w", ctx.Err())
		}
		return fmt.Errorf("plantuml render failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	generated := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".svg"
	if generated == outputPath {
		return nil
	}
	if err := os.Rename(generated, outputPath); err != nil {
		return fmt.Errorf("move rendered SVG into place: %w", err)
	}
	return nil
}

// commandArgs prefers the jar when configured, otherwise the binary on PATH.
func (r *Renderer) commandArgs(inputPath string) []string {
	if r.PlantUMLJar != "" {
		return []string{r.JavaBin, "-jar", r.PlantUMLJar, "-tsvg", inputPath}
	}
	return []string{r.PlantUMLBin, "-tsvg", inputPath}
}
