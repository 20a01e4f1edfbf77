package extract

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"clut2dtstyle/internal/lab"
)

// PFMExtractor asks the conversion tool for a Portable Float Map dump of the
// image in Lab space. PFM carries exact float32 samples, so it is the
// canonical extraction pathway.
type PFMExtractor struct {
	Runner  Runner
	Convert string
}

func (e *PFMExtractor) Extract(ctx context.Context, path string, size int) (*lab.Grid, error) {
	out, err := e.Runner.Output(ctx, e.Convert, path, "-colorspace", "Lab", "pfm:-")
	if err != nil {
		return nil, &ToolError{Tool: e.Convert, Err: err}
	}
	grid, err := parsePFM(out, size)
	if err != nil {
		return nil, &ToolError{Tool: e.Convert, Err: fmt.Errorf("converting %s: %w", path, err)}
	}
	return grid, nil
}

// parsePFM decodes a color PFM buffer into a Lab grid. The header is three
// text lines: "PF", "<width> <height>", and a scale whose sign gives the
// byte order (negative = little-endian). Pixel rows are stored bottom to
// top, so they are reversed to match raster ordering. Channels arrive
// normalized to 0..1 and are rescaled to L 0..100 and a, b -128..127.
func parsePFM(data []byte, size int) (*lab.Grid, error) {
	tokens, body, err := pfmHeader(data)
	if err != nil {
		return nil, err
	}
	if tokens[0] != "PF" {
		return nil, fmt.Errorf("pfm: not a color float map (magic %q)", tokens[0])
	}
	w, errW := strconv.Atoi(tokens[1])
	h, errH := strconv.Atoi(tokens[2])
	if errW != nil || errH != nil {
		return nil, fmt.Errorf("pfm: bad dimensions %q×%q", tokens[1], tokens[2])
	}
	if w != size || h != size {
		return nil, fmt.Errorf("pfm: dump is %d×%d pixels, want %d×%d", w, h, size, size)
	}
	scale, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return nil, fmt.Errorf("pfm: bad scale %q", tokens[3])
	}
	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}

	if need := w * h * 3 * 4; len(body) < need {
		return nil, fmt.Errorf("pfm: truncated pixel data: %d bytes, want %d", len(body), need)
	}

	grid := lab.NewGrid(size)
	for row := 0; row < h; row++ {
		src := (h - 1 - row) * w * 3 * 4
		for col := 0; col < w; col++ {
			p := src + col*12
			l := float64(math.Float32frombits(order.Uint32(body[p:])))
			a := float64(math.Float32frombits(order.Uint32(body[p+4:])))
			b := float64(math.Float32frombits(order.Uint32(body[p+8:])))
			grid.Set(row, col, [3]float64{l * 100, a*255 - 128, b*255 - 128})
		}
	}
	return grid, nil
}

// pfmHeader splits off the four header tokens (magic, width, height, scale)
// and returns the remaining pixel data. The header ends with the single
// whitespace byte after the scale token.
func pfmHeader(data []byte) ([4]string, []byte, error) {
	var tokens [4]string
	pos := 0
	for i := range tokens {
		for pos < len(data) && isSpace(data[pos]) {
			pos++
		}
		start := pos
		for pos < len(data) && !isSpace(data[pos]) {
			pos++
		}
		if start == pos {
			return tokens, nil, fmt.Errorf("pfm: truncated header")
		}
		tokens[i] = string(data[start:pos])
	}
	if pos >= len(data) || !isSpace(data[pos]) {
		return tokens, nil, fmt.Errorf("pfm: missing header terminator")
	}
	return tokens, data[pos+1:], nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
