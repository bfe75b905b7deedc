package renderer

import (
	"math"
	"testing"
	"time"
)

func TestCollectStats(t *testing.T) {
	results := []TileResult{
		{Pixels: 4, PrimaryRays: 4, Elapsed: time.Millisecond},
		{Pixels: 4, PrimaryRays: 20, SubdividedPixels: 1, Elapsed: 3 * time.Millisecond},
	}

	stats := collectStats(results, 5*time.Millisecond)

	if stats.Pixels != 8 || stats.PrimaryRays != 24 || stats.SubdividedPixels != 1 || stats.Tiles != 2 {
		t.Errorf("Unexpected totals %+v", stats)
	}
	if stats.MeanTileTime != 2*time.Millisecond {
		t.Errorf("Expected mean 2ms, got %v", stats.MeanTileTime)
	}
	expectedStd := math.Sqrt2 * float64(time.Millisecond)
	if math.Abs(float64(stats.StdDevTileTime)-expectedStd) > 1 {
		t.Errorf("Expected std dev %v, got %v", time.Duration(expectedStd), stats.StdDevTileTime)
	}
	if stats.MaxTileTime != 3*time.Millisecond {
		t.Errorf("Expected max 3ms, got %v", stats.MaxTileTime)
	}
	if stats.AverageRaysPerPixel() != 3 {
		t.Errorf("Expected 3 rays per pixel, got %f", stats.AverageRaysPerPixel())
	}
	if stats.Elapsed != 5*time.Millisecond {
		t.Errorf("Expected elapsed 5ms, got %v", stats.Elapsed)
	}
}

func TestCollectStats_Edges(t *testing.T) {
	single := collectStats([]TileResult{{Pixels: 1, Elapsed: time.Second}}, time.Second)
	if single.StdDevTileTime != 0 || single.MeanTileTime != time.Second {
		t.Errorf("Unexpected single-tile stats %+v", single)
	}

	empty := collectStats(nil, 0)
	if empty.Tiles != 0 || empty.AverageRaysPerPixel() != 0 {
		t.Errorf("Unexpected empty stats %+v", empty)
	}
}
