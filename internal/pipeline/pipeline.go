// Package pipeline wires dimension validation, Lab extraction, sampling,
// patch writing, chart fitting, and style pruning into a single conversion.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"clut2dtstyle/internal/chart"
	"clut2dtstyle/internal/clut"
	"clut2dtstyle/internal/extract"
	"clut2dtstyle/internal/lab"
	"clut2dtstyle/internal/patch"
	"clut2dtstyle/internal/style"
)

// Config carries the conversion parameters and the external tool names.
type Config struct {
	Number      int    // sample points per axis used for fitting
	Patches     int    // patches in the output color chart (24-49)
	Title       string // style title; input basename when empty
	Output      string // output path; input with .dtstyle extension when empty
	PixelFormat string // Lab dump format: "pfm" (default) or "txt"
	IdentifyBin string
	ConvertBin  string
	ChartBin    string
}

// Converter runs the CLUT-to-style conversion. All external tool calls go
// through the injected Runner.
type Converter struct {
	runner extract.Runner
	cfg    Config
	logger *slog.Logger
}

// NewConverter validates the configuration and fills in defaults.
func NewConverter(runner extract.Runner, cfg Config, logger *slog.Logger) (*Converter, error) {
	if cfg.Number == 0 {
		cfg.Number = 64
	}
	if cfg.Number < 1 {
		return nil, fmt.Errorf("number must be a positive integer, got %d", cfg.Number)
	}
	if cfg.Patches == 0 {
		cfg.Patches = chart.MaxPatches
	}
	if cfg.Patches < chart.MinPatches || cfg.Patches > chart.MaxPatches {
		return nil, fmt.Errorf("patches must be an integer between %d and %d, got %d", chart.MinPatches, chart.MaxPatches, cfg.Patches)
	}
	if cfg.IdentifyBin == "" {
		cfg.IdentifyBin = "identify"
	}
	if cfg.ConvertBin == "" {
		cfg.ConvertBin = "convert"
	}
	if cfg.ChartBin == "" {
		cfg.ChartBin = "darktable-chart"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{runner: runner, cfg: cfg, logger: logger}, nil
}

// Convert turns the Hald CLUT at input into a pruned dtstyle file and
// returns its path. Temporary artifacts (the synthesized neutral CLUT and
// the patch CSV) live in one scoped directory removed on every path,
// including cancellation.
func (c *Converter) Convert(ctx context.Context, input string) (string, error) {
	width, height, err := clut.Dimensions(ctx, c.runner, c.cfg.IdentifyBin, input)
	if err != nil {
		return "", err
	}
	if err := clut.ValidateHald(input, width, height); err != nil {
		return "", err
	}
	size := width
	level := clut.Level(size)
	c.logger.Debug("validated Hald CLUT", "input", input, "size", size, "level", level)

	tmpDir, err := os.MkdirTemp("", "clut2dtstyle-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	extractor, err := extract.ForFormat(c.cfg.PixelFormat, c.runner, c.cfg.ConvertBin)
	if err != nil {
		return "", err
	}

	// Synthesize the neutral identity CLUT of the matching level; it is the
	// source side of every patch pair.
	neutralPath := filepath.Join(tmpDir, "neutral.png")
	if err := c.runner.Run(ctx, c.cfg.ConvertBin, fmt.Sprintf("hald:%d", level), neutralPath); err != nil {
		return "", &extract.ToolError{Tool: c.cfg.ConvertBin, Err: err}
	}
	source, err := extractor.Extract(ctx, neutralPath, size)
	if err != nil {
		return "", err
	}
	reference, err := extractor.Extract(ctx, input, size)
	if err != nil {
		return "", err
	}

	sampledSrc, sampledRef, err := lab.Sample(source, reference, c.cfg.Number)
	if err != nil {
		return "", err
	}
	c.reportDeltaE(sampledSrc, sampledRef)

	title := c.cfg.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	csvPath := filepath.Join(tmpDir, "patches.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return "", fmt.Errorf("failed to create patch table: %w", err)
	}
	if err := patch.Write(f, sampledSrc, sampledRef, title, input); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write patch table: %w", err)
	}

	output := c.cfg.Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".dtstyle"
	}
	if err := chart.Fit(ctx, c.runner, c.cfg.ChartBin, csvPath, c.cfg.Patches, output); err != nil {
		return "", err
	}
	if err := style.Prune(output, nil); err != nil {
		return "", err
	}
	return output, nil
}

// reportDeltaE logs how far the CLUT moves the sampled colors: the mean and
// max CIEDE2000 distance between paired source and reference patches. A
// neutral CLUT reports values near zero.
func (c *Converter) reportDeltaE(source, reference *lab.Grid) {
	side := source.Size()
	distances := make([]float64, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			s, r := source.At(i, j), reference.At(i, j)
			cs := colorful.Lab(s[0]/100, s[1]/100, s[2]/100)
			cr := colorful.Lab(r[0]/100, r[1]/100, r[2]/100)
			distances = append(distances, cs.DistanceCIEDE2000(cr))
		}
	}
	c.logger.Info("sampled patch pairs",
		"patches", len(distances),
		"mean_delta_e", stat.Mean(distances, nil),
		"max_delta_e", floats.Max(distances),
	)
}
