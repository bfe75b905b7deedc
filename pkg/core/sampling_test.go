package core

import (
	"math"
	"testing"
)

func TestGridCellCenters(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected []Vec2
	}{
		{"single cell", 1, []Vec2{{0, 0}}},
		{"two by two", 2, []Vec2{{-0.25, 0.25}, {0.25, 0.25}, {-0.25, -0.25}, {0.25, -0.25}}},
		{"empty", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := GridCellCenters(tt.n)
			if len(cells) != len(tt.expected) {
				t.Fatalf("Expected %d cells, got %d", len(tt.expected), len(cells))
			}
			for i := range cells {
				if math.Abs(cells[i].X-tt.expected[i].X) > 1e-12 || math.Abs(cells[i].Y-tt.expected[i].Y) > 1e-12 {
					t.Errorf("Cell %d: expected %v, got %v", i, tt.expected[i], cells[i])
				}
			}
		})
	}
}

func TestCornerCells(t *testing.T) {
	n := 3
	cells := GridCellCenters(n)
	corners := CornerCells(n)

	tl, tr, bl, br := cells[corners[0]], cells[corners[1]], cells[corners[2]], cells[corners[3]]
	if !(tl.X < 0 && tl.Y > 0) || !(tr.X > 0 && tr.Y > 0) || !(bl.X < 0 && bl.Y < 0) || !(br.X > 0 && br.Y < 0) {
		t.Errorf("Corner cells in wrong quadrants: %v %v %v %v", tl, tr, bl, br)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			p := SamplePointInUnitDisk(Vec2{float64(i) / 10, float64(j) / 10})
			if p.X*p.X+p.Y*p.Y > 1+1e-9 {
				t.Errorf("Sample (%d,%d) mapped outside the unit disk: %v", i, j, p)
			}
		}
	}

	if p := SamplePointInUnitDisk(Vec2{0.5, 0.5}); p.X != 0 || p.Y != 0 {
		t.Errorf("Expected center to map to origin, got %v", p)
	}
}

func TestStratifiedDisk(t *testing.T) {
	points := StratifiedDisk(100)
	if len(points) != 100 {
		t.Fatalf("Expected 100 aperture points, got %d", len(points))
	}

	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	// Symmetric pattern: centroid stays at the lens center
	if math.Abs(sx/100) > 1e-9 || math.Abs(sy/100) > 1e-9 {
		t.Errorf("Expected centroid at origin, got (%g, %g)", sx/100, sy/100)
	}

	if got := len(StratifiedDisk(0)); got != 1 {
		t.Errorf("Expected at least one point, got %d", got)
	}
}
