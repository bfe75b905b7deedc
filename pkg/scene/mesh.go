package scene

import (
	"path/filepath"

	errorsmod "cosmossdk.io/errors"
	"github.com/fogleman/fauxgl"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// MeshTransform scales a model per axis, then moves it
type MeshTransform struct {
	Scale     core.Vec3
	Translate core.Vec3
}

// IdentityTransform leaves a model where the file puts it
var IdentityTransform = MeshTransform{Scale: core.Vec3{X: 1, Y: 1, Z: 1}}

// LoadMesh reads an OBJ, STL, PLY or 3DS model and returns its triangles as one
// aggregate. Degenerate triangles are skipped; the second result counts them.
func LoadMesh(path string, transform MeshTransform, surface geometry.Surface) (*geometry.Geometries, int, error) {
	mesh, err := fauxgl.LoadMesh(path)
	if err != nil {
		return nil, 0, errorsmod.Wrapf(core.ErrInvalidScene, "load mesh %s: %v", path, err)
	}

	scale := fauxgl.Vector{X: transform.Scale.X, Y: transform.Scale.Y, Z: transform.Scale.Z}
	offset := fauxgl.Vector{X: transform.Translate.X, Y: transform.Translate.Y, Z: transform.Translate.Z}
	point := func(v fauxgl.Vertex) core.Point3 {
		p := v.Position.Mul(scale).Add(offset)
		return core.NewPoint3(p.X, p.Y, p.Z)
	}

	triangles := geometry.NewGeometries()
	skipped := 0
	for _, t := range mesh.Triangles {
		triangle, err := geometry.NewTriangle(point(t.V1), point(t.V2), point(t.V3), surface)
		if err != nil {
			skipped++
			continue
		}
		triangles.Add(triangle)
	}
	if triangles.Len() == 0 {
		return nil, skipped, errorsmod.Wrapf(core.ErrInvalidScene, "mesh %s has no usable triangles", path)
	}
	return triangles, skipped, nil
}

func (g geometrySpec) mesh(baseDir string, surface geometry.Surface) (geometry.Intersectable, error) {
	if g.File == "" {
		return nil, errorsmod.Wrap(core.ErrInvalidScene, "mesh needs a file")
	}
	path := g.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	transform := IdentityTransform
	if g.Scale != nil {
		x, y, z, err := triple(g.Scale)
		if err != nil {
			return nil, errorsmod.Wrap(err, "scale")
		}
		transform.Scale = core.Vec3{X: x, Y: y, Z: z}
	}
	if g.Translate != nil {
		x, y, z, err := triple(g.Translate)
		if err != nil {
			return nil, errorsmod.Wrap(err, "translate")
		}
		transform.Translate = core.Vec3{X: x, Y: y, Z: z}
	}

	triangles, _, err := LoadMesh(path, transform, surface)
	if err != nil {
		return nil, err
	}
	return triangles, nil
}
