package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"clut2dtstyle/internal/lab"
)

// labTxtRE pulls the Lab percentage triple out of one line of ImageMagick's
// txt: pixel enumeration, e.g.
//
//	0,0: (13107,32768,32768)  #3333808080808080  cielab(20%,0%,0%)
var labTxtRE = regexp.MustCompile(`cielab\(([^%,]+)%,([^%,]+)%,([^%,)]+)%\)\s*$`)

// TxtExtractor asks the conversion tool for a textual pixel enumeration in
// Lab space. This is the historical pathway; the percentage values are
// passed through verbatim. The line pattern is tool-version-dependent, so a
// non-matching line fails loudly rather than being skipped.
type TxtExtractor struct {
	Runner  Runner
	Convert string
}

func (e *TxtExtractor) Extract(ctx context.Context, path string, size int) (*lab.Grid, error) {
	out, err := e.Runner.Output(ctx, e.Convert, path, "-colorspace", "Lab", "txt:-")
	if err != nil {
		return nil, &ToolError{Tool: e.Convert, Err: err}
	}
	grid, err := parseTxt(out, size)
	if err != nil {
		return nil, &ToolError{Tool: e.Convert, Err: fmt.Errorf("converting %s: %w", path, err)}
	}
	return grid, nil
}

func parseTxt(data []byte, size int) (*lab.Grid, error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) < 1 || !strings.HasPrefix(lines[0], "#") {
		return nil, fmt.Errorf("txt dump missing enumeration header")
	}

	grid := lab.NewGrid(size)
	pixels := 0
	for n, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := labTxtRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("txt dump line %d does not match the cielab pattern", n+2)
		}
		if pixels >= size*size {
			return nil, fmt.Errorf("txt dump has more than %d pixels", size*size)
		}
		var triple [3]float64
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(m[c+1], 64)
			if err != nil {
				return nil, fmt.Errorf("txt dump line %d: bad value %q", n+2, m[c+1])
			}
			triple[c] = v
		}
		grid.Set(pixels/size, pixels%size, triple)
		pixels++
	}
	if pixels != size*size {
		return nil, fmt.Errorf("txt dump has %d pixels, want %d", pixels, size*size)
	}
	return grid, nil
}
