package renderer

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// AntiAliasing configures adaptive super-sampling. A grid size of 0 or 1 disables it.
type AntiAliasing struct {
	GridSize int // Sub-pixel grid is GridSize × GridSize
}

// DepthOfField configures aperture sampling. An aperture size of 0 disables it.
type DepthOfField struct {
	ApertureSize    float64 // Radius of the aperture disk
	FocalDistance   float64 // Distance from the camera to the plane in focus
	ApertureSamples int     // Rays per view-plane point (0 = 100)
}

// CameraConfig contains camera parameters
type CameraConfig struct {
	Position        core.Point3
	Forward         core.Vec3 // Viewing direction
	Up              core.Vec3 // Must be orthogonal to Forward
	ViewPlaneWidth  float64
	ViewPlaneHeight float64
	Distance        float64 // Distance from Position to the view plane
	AntiAliasing    AntiAliasing
	DepthOfField    DepthOfField
}

// DefaultCameraConfig returns a camera on the +Z axis looking at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:        core.NewPoint3(0, 0, 1000),
		Forward:         core.Vec3{X: 0, Y: 0, Z: -1},
		Up:              core.Vec3{X: 0, Y: 1, Z: 0},
		ViewPlaneWidth:  200,
		ViewPlaneHeight: 200,
		Distance:        1000,
	}
}

const defaultApertureSamples = 100

// RenderConfig controls how pixels are distributed across workers
type RenderConfig struct {
	Workers  int // Number of parallel workers (0 = use CPU count, 1 = sequential)
	TileSize int // Size of each square tile in pixels
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers:  0,
		TileSize: 32,
	}
}

// Camera generates primary rays and drives the render of every pixel
type Camera struct {
	config   CameraConfig
	position core.Point3
	forward  core.Vec3
	up       core.Vec3
	right    core.Vec3
	vpCenter core.Point3

	aaCells        []core.Vec2
	apertureOffset []core.Vec3     // Lens sample offsets from the position
	focalPlane     *geometry.Plane // nil without depth of field

	imageSink    ImageSink
	rayTracer    RayTracer
	renderConfig RenderConfig
	logger       core.Logger
}

// NewCamera validates config and builds the camera basis. right = forward × up.
func NewCamera(config CameraConfig) (*Camera, error) {
	forward, err := config.Forward.Normalize()
	if err != nil {
		return nil, errorsmod.Wrap(core.ErrInvalidCamera, "forward vector is zero")
	}
	up, err := config.Up.Normalize()
	if err != nil {
		return nil, errorsmod.Wrap(core.ErrInvalidCamera, "up vector is zero")
	}
	if !core.IsZero(forward.Dot(up)) {
		return nil, errorsmod.Wrapf(core.ErrInvalidCamera, "forward %v and up %v are not orthogonal", config.Forward, config.Up)
	}
	if config.ViewPlaneWidth <= 0 || config.ViewPlaneHeight <= 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidCamera, "view plane size %gx%g must be positive", config.ViewPlaneWidth, config.ViewPlaneHeight)
	}
	if config.Distance <= 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidCamera, "view plane distance %g must be positive", config.Distance)
	}
	if config.AntiAliasing.GridSize < 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidCamera, "anti-aliasing grid size %d is negative", config.AntiAliasing.GridSize)
	}

	c := &Camera{
		config:       config,
		position:     config.Position,
		forward:      forward,
		up:           up,
		right:        forward.Cross(up),
		vpCenter:     config.Position.Add(forward.Scale(config.Distance)),
		renderConfig: DefaultRenderConfig(),
		logger:       core.NopLogger{},
	}

	if config.AntiAliasing.GridSize > 1 {
		c.aaCells = core.GridCellCenters(config.AntiAliasing.GridSize)
	}

	if err := c.setupDepthOfField(config.DepthOfField); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Camera) setupDepthOfField(dof DepthOfField) error {
	if dof.ApertureSize < 0 {
		return errorsmod.Wrapf(core.ErrInvalidCamera, "aperture size %g is negative", dof.ApertureSize)
	}
	if dof.ApertureSize == 0 {
		return nil
	}
	if dof.FocalDistance <= 0 {
		return errorsmod.Wrapf(core.ErrInvalidCamera, "focal distance %g must be positive", dof.FocalDistance)
	}
	if dof.ApertureSamples < 0 {
		return errorsmod.Wrapf(core.ErrInvalidCamera, "aperture samples %d is negative", dof.ApertureSamples)
	}

	samples := dof.ApertureSamples
	if samples == 0 {
		samples = defaultApertureSamples
	}
	for _, p := range core.StratifiedDisk(samples) {
		offset := c.up.Scale(dof.ApertureSize * p.Y).Add(c.right.Scale(dof.ApertureSize * p.X))
		c.apertureOffset = append(c.apertureOffset, offset)
	}

	plane, err := geometry.NewPlane(c.position.Add(c.forward.Scale(dof.FocalDistance)), c.forward, geometry.Surface{})
	if err != nil {
		return errorsmod.Wrap(core.ErrInvalidCamera, err.Error())
	}
	c.focalPlane = plane
	return nil
}

// SetImageSink attaches the pixel destination
func (c *Camera) SetImageSink(sink ImageSink) *Camera {
	c.imageSink = sink
	return c
}

// SetRayTracer attaches the shading engine
func (c *Camera) SetRayTracer(rt RayTracer) *Camera {
	c.rayTracer = rt
	return c
}

// SetRenderConfig sets worker count and tile size
func (c *Camera) SetRenderConfig(config RenderConfig) *Camera {
	c.renderConfig = config
	return c
}

// SetLogger sets the logger used for render progress
func (c *Camera) SetLogger(logger core.Logger) *Camera {
	if logger == nil {
		logger = core.NopLogger{}
	}
	c.logger = logger
	return c
}

// Right returns the camera's right vector
func (c *Camera) Right() core.Vec3 {
	return c.right
}

// ConstructRay returns the ray from the camera position through the center of pixel
// (col, row) on an nx × ny view plane. Row 0 is the top row.
func (c *Camera) ConstructRay(nx, ny, col, row int) core.Ray {
	return c.rayThrough(c.position, c.pixelCenter(nx, ny, col, row))
}

func (c *Camera) pixelCenter(nx, ny, col, row int) core.Point3 {
	ry := c.config.ViewPlaneHeight / float64(ny)
	rx := c.config.ViewPlaneWidth / float64(nx)

	yI := -(float64(row) - float64(ny-1)/2) * ry
	xJ := (float64(col) - float64(nx-1)/2) * rx

	pIJ := c.vpCenter
	if !core.IsZero(xJ) {
		pIJ = pIJ.Add(c.right.Scale(xJ))
	}
	if !core.IsZero(yI) {
		pIJ = pIJ.Add(c.up.Scale(yI))
	}
	return pIJ
}

// rayThrough builds the ray from origin toward target. Every target the camera uses lies
// ahead of origin along forward, so the direction is never zero.
func (c *Camera) rayThrough(origin, target core.Point3) core.Ray {
	ray, err := core.NewRay(origin, target.Subtract(origin))
	if err != nil {
		return core.Ray{Origin: origin, Direction: c.forward}
	}
	return ray
}

// pixelColor computes the color of one pixel, returning the number of primary rays
// traced and whether anti-aliasing subdivided the pixel
func (c *Camera) pixelColor(nx, ny, col, row int) (core.Color, int, bool) {
	center := c.pixelCenter(nx, ny, col, row)
	if c.aaCells == nil {
		color, rays := c.traceThrough(center)
		return color, rays, false
	}

	rx := c.config.ViewPlaneWidth / float64(nx)
	ry := c.config.ViewPlaneHeight / float64(ny)
	cellPoint := func(cell core.Vec2) core.Point3 {
		return center.Add(c.right.Scale(cell.X * rx)).Add(c.up.Scale(cell.Y * ry))
	}

	// Probe the four corner cells first
	corners := core.CornerCells(c.config.AntiAliasing.GridSize)
	probed := make(map[int]core.Color, len(corners))
	rays := 0
	for _, idx := range corners {
		color, n := c.traceThrough(cellPoint(c.aaCells[idx]))
		probed[idx] = color
		rays += n
	}

	first := probed[corners[0]]
	uniform := true
	for _, idx := range corners[1:] {
		if !probed[idx].Equal(first) {
			uniform = false
			break
		}
	}
	if uniform {
		color, n := c.traceThrough(center)
		return color, rays + n, false
	}

	sum := core.Black
	for i, cell := range c.aaCells {
		if color, ok := probed[i]; ok {
			sum = sum.Add(color)
			continue
		}
		color, n := c.traceThrough(cellPoint(cell))
		sum = sum.Add(color)
		rays += n
	}
	return sum.Reduce(float64(len(c.aaCells))), rays, true
}

// traceThrough traces the color seen through a view-plane point, averaging over the
// aperture when depth of field is enabled
func (c *Camera) traceThrough(point core.Point3) (core.Color, int) {
	ray := c.rayThrough(c.position, point)
	if c.focalPlane == nil {
		return c.rayTracer.TraceRay(ray), 1
	}

	hits := c.focalPlane.Intersect(ray)
	if hits == nil {
		return c.rayTracer.TraceRay(ray), 1
	}
	focalPoint := hits[0].Point

	sum := core.Black
	for _, offset := range c.apertureOffset {
		sum = sum.Add(c.rayTracer.TraceRay(c.rayThrough(c.position.Add(offset), focalPoint)))
	}
	return sum.Reduce(float64(len(c.apertureOffset))), len(c.apertureOffset)
}

// RenderImage computes every pixel of the attached image sink
func (c *Camera) RenderImage(ctx context.Context) (RenderStats, error) {
	if c.imageSink == nil {
		return RenderStats{}, errorsmod.Wrap(core.ErrMissingResource, "image sink not set")
	}
	if c.rayTracer == nil {
		return RenderStats{}, errorsmod.Wrap(core.ErrMissingResource, "ray tracer not set")
	}

	nx, ny := c.imageSink.Nx(), c.imageSink.Ny()
	tiles := NewTileGrid(nx, ny, c.renderConfig.TileSize)
	pool := NewWorkerPool(c.renderConfig.Workers)

	c.logger.Printf("Rendering %dx%d in %d tiles with %d workers\n", nx, ny, len(tiles), pool.GetNumWorkers())
	start := time.Now()

	results, err := pool.Run(ctx, tiles, func(tile *Tile) TileResult {
		return c.renderTile(tile, nx, ny)
	})
	if err != nil {
		c.logger.Printf("Render aborted: %v\n", err)
		return RenderStats{}, err
	}

	stats := collectStats(results, time.Since(start))
	c.logger.Printf("Render complete: %s\n", stats)
	return stats, nil
}

func (c *Camera) renderTile(tile *Tile, nx, ny int) TileResult {
	start := time.Now()
	var result TileResult
	for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
		for col := tile.Bounds.Min.X; col < tile.Bounds.Max.X; col++ {
			color, rays, subdivided := c.pixelColor(nx, ny, col, row)
			c.imageSink.WritePixel(col, row, color)
			result.Pixels++
			result.PrimaryRays += rays
			if subdivided {
				result.SubdividedPixels++
			}
		}
	}
	result.Elapsed = time.Since(start)
	return result
}

// PrintGrid overwrites every interval-th row and column with color
func (c *Camera) PrintGrid(interval int, color core.Color) error {
	if c.imageSink == nil {
		return errorsmod.Wrap(core.ErrMissingResource, "image sink not set")
	}
	if interval <= 0 {
		return errorsmod.Wrapf(core.ErrInvalidCamera, "grid interval %d must be positive", interval)
	}
	for row := 0; row < c.imageSink.Ny(); row++ {
		for col := 0; col < c.imageSink.Nx(); col++ {
			if row%interval == 0 || col%interval == 0 {
				c.imageSink.WritePixel(col, row, color)
			}
		}
	}
	return nil
}

// WriteToImage flushes the image sink
func (c *Camera) WriteToImage(ctx context.Context) error {
	if c.imageSink == nil {
		return errorsmod.Wrap(core.ErrMissingResource, "image sink not set")
	}
	return c.imageSink.WriteToImage(ctx)
}
