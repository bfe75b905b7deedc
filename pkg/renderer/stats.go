package renderer

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels           int           // Total number of pixels rendered
	SubdividedPixels int           // Pixels where anti-aliasing fell back to the full grid
	PrimaryRays      int           // Rays handed to the ray tracer by the camera
	Tiles            int           // Number of tiles rendered
	MeanTileTime     time.Duration // Mean wall time per tile
	StdDevTileTime   time.Duration // Spread of tile wall times
	MaxTileTime      time.Duration // Slowest tile
	Elapsed          time.Duration // Wall time of the whole render
}

// AverageRaysPerPixel returns PrimaryRays / Pixels
func (s RenderStats) AverageRaysPerPixel() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.PrimaryRays) / float64(s.Pixels)
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels (%d subdivided), %d primary rays (%.2f/pixel), %d tiles, tile time mean %v stddev %v max %v, total %v",
		s.Pixels, s.SubdividedPixels, s.PrimaryRays, s.AverageRaysPerPixel(), s.Tiles,
		s.MeanTileTime, s.StdDevTileTime, s.MaxTileTime, s.Elapsed)
}

// collectStats combines per-tile results into render-wide statistics
func collectStats(results []TileResult, elapsed time.Duration) RenderStats {
	stats := RenderStats{Tiles: len(results), Elapsed: elapsed}
	if len(results) == 0 {
		return stats
	}

	times := make([]float64, len(results))
	for i, r := range results {
		stats.Pixels += r.Pixels
		stats.SubdividedPixels += r.SubdividedPixels
		stats.PrimaryRays += r.PrimaryRays
		times[i] = float64(r.Elapsed)
	}

	mean, std := stat.MeanStdDev(times, nil)
	if len(times) < 2 {
		std = 0 // sample deviation is undefined for a single tile
	}
	stats.MeanTileTime = time.Duration(mean)
	stats.StdDevTileTime = time.Duration(std)
	stats.MaxTileTime = time.Duration(floats.Max(times))
	return stats
}
