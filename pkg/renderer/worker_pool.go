package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Tile is a rectangular block of pixels rendered by a single worker
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid splits a width × height raster into tiles of at most tileSize × tileSize
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultRenderConfig().TileSize
	}
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index of the result slot
}

// TileResult contains the counters gathered while rendering a tile
type TileResult struct {
	TaskID           int
	Pixels           int
	SubdividedPixels int
	PrimaryRays      int
	Elapsed          time.Duration
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses one worker per CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile and returns the results in tile order. Tiles have
// non-overlapping bounds, so render may write shared pixel storage without locking.
// Cancelling ctx stops handing out tiles; tiles already started run to completion.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(*Tile) TileResult) ([]TileResult, error) {
	results := make([]TileResult, len(tiles))

	if wp.numWorkers == 1 {
		for i, tile := range tiles {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = render(tile)
			results[i].TaskID = i
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	taskQueue := make(chan TileTask)

	g.Go(func() error {
		defer close(taskQueue) // No more tasks
		for i, tile := range tiles {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case taskQueue <- TileTask{Tile: tile, TaskID: i}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < wp.numWorkers; w++ {
		g.Go(func() error {
			for task := range taskQueue {
				result := render(task.Tile)
				result.TaskID = task.TaskID
				results[task.TaskID] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
