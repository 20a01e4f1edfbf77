// Package extract obtains Lab pixel grids from image files by invoking an
// external colorspace-conversion tool and parsing its pixel dump.
//
// Two dump formats are supported: PFM (the canonical pathway, a float32
// buffer with a three-line text header) and ImageMagick's txt: enumeration
// (the historical pathway, kept as an alternate adapter).
package extract

import (
	"context"
	"fmt"

	"clut2dtstyle/internal/lab"
)

// Extractor turns an image file into a Lab grid with the given side length.
type Extractor interface {
	Extract(ctx context.Context, path string, size int) (*lab.Grid, error)
}

// ForFormat returns the extractor for a pixel dump format ("pfm" or "txt").
func ForFormat(format string, runner Runner, convertBin string) (Extractor, error) {
	switch format {
	case "", "pfm":
		return &PFMExtractor{Runner: runner, Convert: convertBin}, nil
	case "txt":
		return &TxtExtractor{Runner: runner, Convert: convertBin}, nil
	default:
		return nil, fmt.Errorf("unknown pixel format %q: must be 'pfm' or 'txt'", format)
	}
}
