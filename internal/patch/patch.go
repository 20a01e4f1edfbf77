// Package patch writes the semicolon-delimited patch table darktable-chart
// fits styles from. Writing the table directly instead of photographing a
// color chart is based on an idea by Heiko Bauke:
// https://www.mail-archive.com/darktable-dev@lists.darktable.org/msg02441.html
package patch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"

	"clut2dtstyle/internal/lab"
)

// Value is a Lab component. It marshals in plain decimal notation because
// darktable-chart cannot parse scientific notation.
type Value float64

func (v Value) MarshalCSV() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(v), 'f', -1, 64), nil
}

// Row pairs a neutral (source) Lab sample with the CLUT's (reference) output
// for the same grid position.
type Row struct {
	Patch      string `csv:"patch"`
	LSource    Value  `csv:"L_source"`
	ASource    Value  `csv:"a_source"`
	BSource    Value  `csv:"b_source"`
	LReference Value  `csv:"L_reference"`
	AReference Value  `csv:"a_reference"`
	BReference Value  `csv:"b_reference"`
}

// Patches are named A{row:02d}B{col:02d}, so indices above two digits would
// collide.
const maxSide = 100

// Write emits the patch table for a sampled grid pair: three preamble lines
// (style name, description, no gray-only patches), the column header, and
// one row per grid cell in raster order.
func Write(w io.Writer, source, reference *lab.Grid, title, sourceFile string) error {
	if source.Size() != reference.Size() {
		return fmt.Errorf("patch: grid sizes differ: %d vs %d", source.Size(), reference.Size())
	}
	side := source.Size()
	if side > maxSide {
		return fmt.Errorf("patch: %d samples per axis exceed the %d supported by patch naming", side, maxSide)
	}

	// darktable-chart splits these lines on ';' without unquoting, so they
	// are written raw rather than through the CSV writer.
	if _, err := fmt.Fprintf(w, "name; %s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "description;fitted from Hald CLUT \"%s\" using clut2dtstyle\n", sourceFile); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "num_gray;0\n"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	enc := csvutil.NewEncoder(cw)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			s, r := source.At(i, j), reference.At(i, j)
			row := Row{
				Patch:      fmt.Sprintf("A%02dB%02d", i, j),
				LSource:    Value(s[0]),
				ASource:    Value(s[1]),
				BSource:    Value(s[2]),
				LReference: Value(r[0]),
				AReference: Value(r[1]),
				BReference: Value(r[2]),
			}
			if err := enc.Encode(row); err != nil {
				return fmt.Errorf("patch %s: %w", row.Patch, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
