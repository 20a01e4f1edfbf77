package lab

import "fmt"

// Grid is a square Lab image of shape (size, size, 3), stored row-major in
// raster order (row 0 is the top of the image). Each cell holds an (L, a, b)
// triple with L in 0..100 and a, b roughly in -128..127.
type Grid struct {
	size int
	data []float64
}

// NewGrid allocates a zeroed size×size grid.
func NewGrid(size int) *Grid {
	return &Grid{size: size, data: make([]float64, size*size*3)}
}

// FromValues wraps a flat slice of size*size Lab triples.
func FromValues(size int, values []float64) (*Grid, error) {
	if len(values) != size*size*3 {
		return nil, fmt.Errorf("lab: got %d values, want %d for a %d×%d grid", len(values), size*size*3, size, size)
	}
	return &Grid{size: size, data: values}, nil
}

func (g *Grid) Size() int { return g.size }

// At returns the Lab triple at (row, col).
func (g *Grid) At(row, col int) [3]float64 {
	i := (row*g.size + col) * 3
	return [3]float64{g.data[i], g.data[i+1], g.data[i+2]}
}

// Set stores the Lab triple at (row, col).
func (g *Grid) Set(row, col int, v [3]float64) {
	i := (row*g.size + col) * 3
	g.data[i], g.data[i+1], g.data[i+2] = v[0], v[1], v[2]
}

// Sample subsamples the source and reference grids at a stride derived from
// the requested point count per axis: stride = size/points. When the stride
// exceeds 1 every stride-th row and column is taken starting at index 0;
// otherwise both grids are returned unmodified. Both grids are always
// sampled identically, so cell (i, j) of each result refers to the same
// position of the original CLUT. No interpolation is performed.
func Sample(source, reference *Grid, points int) (*Grid, *Grid, error) {
	if points < 1 {
		return nil, nil, fmt.Errorf("lab: point count must be positive, got %d", points)
	}
	if source.size != reference.size {
		return nil, nil, fmt.Errorf("lab: grid sizes differ: %d vs %d", source.size, reference.size)
	}

	stride := source.size / points
	if stride <= 1 {
		return source, reference, nil
	}

	sampled := (source.size + stride - 1) / stride
	a, b := NewGrid(sampled), NewGrid(sampled)
	for i := 0; i < sampled; i++ {
		for j := 0; j < sampled; j++ {
			a.Set(i, j, source.At(i*stride, j*stride))
			b.Set(i, j, reference.At(i*stride, j*stride))
		}
	}
	return a, b, nil
}
