package lab

import "testing"

// fill gives every cell a value derived from its position so sampled cells
// can be traced back to their origin.
func fill(size int) *Grid {
	g := NewGrid(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			g.Set(i, j, [3]float64{float64(i), float64(j), float64(i*size + j)})
		}
	}
	return g
}

func TestFromValues(t *testing.T) {
	g, err := FromValues(2, []float64{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if got := g.At(0, 1); got != [3]float64{4, 5, 6} {
		t.Errorf("At(0,1) = %v, want [4 5 6]", got)
	}
	if got := g.At(1, 0); got != [3]float64{7, 8, 9} {
		t.Errorf("At(1,0) = %v, want [7 8 9]", got)
	}

	if _, err := FromValues(2, make([]float64, 7)); err == nil {
		t.Error("expected error for wrong value count")
	}
}

func TestSampleStride(t *testing.T) {
	src, ref := fill(8), fill(8)

	a, b, err := Sample(src, ref, 2)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if a.Size() != 2 || b.Size() != 2 {
		t.Fatalf("sampled sizes = %d, %d, want 2", a.Size(), b.Size())
	}
	// stride = 8/2 = 4; cell (i,j) must be original cell (4i,4j) in both grids.
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := src.At(i*4, j*4)
			if got := a.At(i, j); got != want {
				t.Errorf("a.At(%d,%d) = %v, want %v", i, j, got, want)
			}
			if got := b.At(i, j); got != want {
				t.Errorf("b.At(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestSampleCeilShape(t *testing.T) {
	// size 9, points 2: stride 4, samples at 0, 4, 8 -> side 3.
	src, ref := fill(9), fill(9)
	a, _, err := Sample(src, ref, 2)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if a.Size() != 3 {
		t.Fatalf("sampled size = %d, want 3", a.Size())
	}
	if got := a.At(2, 2); got != src.At(8, 8) {
		t.Errorf("a.At(2,2) = %v, want %v", got, src.At(8, 8))
	}
}

func TestSampleFullResolution(t *testing.T) {
	tests := []struct {
		name   string
		points int
	}{
		{"points equals size", 8},
		{"points exceeds size", 100},
		{"stride rounds to one", 5},
	}

	src, ref := fill(8), fill(8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, err := Sample(src, ref, tt.points)
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			if a != src || b != ref {
				t.Error("expected the original grids back at full resolution")
			}
		})
	}
}

func TestSampleErrors(t *testing.T) {
	if _, _, err := Sample(fill(8), fill(8), 0); err == nil {
		t.Error("expected error for zero points")
	}
	if _, _, err := Sample(fill(8), fill(4), 2); err == nil {
		t.Error("expected error for mismatched grid sizes")
	}
}
