package clut

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/tiff"
)

// Identity builds the neutral Hald CLUT for a level in memory. The image is
// level³ pixels on a side; raster pixel i encodes channel indices
// (r, g, b) = (i mod c, (i/c) mod c, i/c²) for the per-channel resolution
// c = level², each scaled to the full 8-bit range over c-1 steps.
func Identity(level int) (*image.NRGBA, error) {
	if level < 1 {
		return nil, fmt.Errorf("level must be positive, got %d", level)
	}
	cube := level * level
	side := cube * level
	img := image.NewNRGBA(image.Rect(0, 0, side, side))

	i := 0
	for b := 0; b < cube; b++ {
		for g := 0; g < cube; g++ {
			for r := 0; r < cube; r++ {
				img.SetNRGBA(i%side, i/side, color.NRGBA{
					R: channelByte(r, cube),
					G: channelByte(g, cube),
					B: channelByte(b, cube),
					A: 255,
				})
				i++
			}
		}
	}
	return img, nil
}

func channelByte(i, cube int) uint8 {
	if cube < 2 {
		return 0
	}
	return uint8(math.Round(float64(i) * 255 / float64(cube-1)))
}

// WriteIdentity writes the neutral Hald CLUT for a level to path, encoded
// as "png" or "tiff".
func WriteIdentity(path string, level int, format string) error {
	img, err := Identity(level)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, nil)
	default:
		return fmt.Errorf("unknown format %q: must be 'png' or 'tiff'", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
