// Package chart invokes darktable-chart to fit a style to a patch table.
package chart

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"clut2dtstyle/internal/extract"
)

// darktable-chart supports color charts of 24 to 49 patches.
const (
	MinPatches = 24
	MaxPatches = 49
)

// Fit runs the chart tool against a patch CSV and writes the fitted style to
// outPath. A non-zero exit or a missing output file is a tool error; no
// retries are attempted.
func Fit(ctx context.Context, runner extract.Runner, bin, csvPath string, patches int, outPath string) error {
	if patches < MinPatches || patches > MaxPatches {
		return fmt.Errorf("patches must be an integer between %d and %d, got %d", MinPatches, MaxPatches, patches)
	}
	if err := runner.Run(ctx, bin, "--csv", csvPath, strconv.Itoa(patches), outPath); err != nil {
		return &extract.ToolError{Tool: bin, Err: err}
	}
	if _, err := os.Stat(outPath); err != nil {
		return &extract.ToolError{Tool: bin, Err: fmt.Errorf("no style written to %s", outPath)}
	}
	return nil
}
