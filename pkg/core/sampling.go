package core

import "math"

// Vec2 represents a 2D offset, used for sample positions on the view plane and the aperture
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// GridCellCenters returns the centers of an n×n grid covering [-0.5, 0.5]², row by row.
// Rows run top to bottom (positive Y first) so callers can address corners by index.
func GridCellCenters(n int) []Vec2 {
	if n <= 0 {
		return nil
	}
	cells := make([]Vec2, 0, n*n)
	step := 1.0 / float64(n)
	for row := 0; row < n; row++ {
		y := 0.5 - (float64(row)+0.5)*step
		for col := 0; col < n; col++ {
			x := -0.5 + (float64(col)+0.5)*step
			cells = append(cells, Vec2{x, y})
		}
	}
	return cells
}

// CornerCells returns the indices of the four corner cells of an n×n grid
// in the order top-left, top-right, bottom-left, bottom-right
func CornerCells(n int) [4]int {
	return [4]int{0, n - 1, n * (n - 1), n*n - 1}
}

// SamplePointInUnitDisk maps a sample in [0,1]² onto the unit disk using concentric mapping.
// This avoids rejection sampling by mapping a square uniformly to a disk.
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	u := Vec2{2*sample.X - 1, 2*sample.Y - 1}
	if u.X == 0 && u.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(u.X) > math.Abs(u.Y) {
		r = u.X
		theta = math.Pi / 4 * (u.Y / u.X)
	} else {
		r = u.Y
		theta = math.Pi/2 - math.Pi/4*(u.X/u.Y)
	}

	return Vec2{r * math.Cos(theta), r * math.Sin(theta)}
}

// StratifiedDisk returns about n points spread evenly over the unit disk: the cells of a
// k×k grid (k = ⌊√n⌋, at least 1) pushed through the concentric mapping
func StratifiedDisk(n int) []Vec2 {
	k := int(math.Sqrt(float64(n)))
	if k < 1 {
		k = 1
	}
	cells := GridCellCenters(k)
	points := make([]Vec2, len(cells))
	for i, c := range cells {
		points[i] = SamplePointInUnitDisk(Vec2{c.X + 0.5, c.Y + 0.5})
	}
	return points
}
