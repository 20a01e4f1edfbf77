// Package clut validates Hald CLUT images and synthesizes neutral identity
// CLUTs. A Hald CLUT is a square image whose side length is n³ for the
// table's level n; see http://www.quelsolaar.com/technology/clut.html.
package clut

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"clut2dtstyle/internal/extract"
)

// InvalidCLUTError reports an image whose dimensions cannot encode a Hald CLUT.
type InvalidCLUTError struct {
	Path          string
	Width, Height int
}

func (e *InvalidCLUTError) Error() string {
	return fmt.Sprintf("%s has wrong dimensions (%d×%d) to be a valid Hald CLUT", e.Path, e.Width, e.Height)
}

// Level returns the Hald level of a CLUT with the given side length.
func Level(size int) int {
	return int(math.Round(math.Cbrt(float64(size))))
}

// ValidateHald checks the square and perfect-cube constraints. Rounding the
// cube root before re-cubing guards against floating-point error for large
// sides.
func ValidateHald(path string, width, height int) error {
	if width < 1 || width != height {
		return &InvalidCLUTError{Path: path, Width: width, Height: height}
	}
	if n := Level(width); n*n*n != width {
		return &InvalidCLUTError{Path: path, Width: width, Height: height}
	}
	return nil
}

// Dimensions queries the width and height of an image via the external
// metadata tool, which prints them as two comma-separated integers.
func Dimensions(ctx context.Context, runner extract.Runner, bin, path string) (int, int, error) {
	out, err := runner.Output(ctx, bin, "-format", "%w,%h", path)
	if err != nil {
		return 0, 0, &extract.ToolError{Tool: bin, Err: err}
	}
	fields := strings.Split(strings.TrimSpace(string(out)), ",")
	if len(fields) != 2 {
		return 0, 0, &extract.ToolError{Tool: bin, Err: fmt.Errorf("error reading dimensions of %s: output %q", path, out)}
	}
	width, errW := strconv.Atoi(fields[0])
	height, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil {
		return 0, 0, &extract.ToolError{Tool: bin, Err: fmt.Errorf("error reading dimensions of %s: output %q", path, out)}
	}
	return width, height, nil
}
