package server

import (
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool         `json:"hit"`
	GeometryType string       `json:"geometryType,omitempty"`
	Point        [3]float64   `json:"point"`
	Normal       [3]float64   `json:"normal"`
	Distance     float64      `json:"distance"`
	Emission     [3]float64   `json:"emission"`
	Material     MaterialInfo `json:"material"`
	Color        [3]float64   `json:"color"` // Traced color of the pixel's center ray
}

// MaterialInfo lists the shading coefficients of a surface
type MaterialInfo struct {
	KD        [3]float64 `json:"kd"`
	KS        [3]float64 `json:"ks"`
	KR        [3]float64 `json:"kr"`
	KT        [3]float64 `json:"kt"`
	Shininess int        `json:"shininess"`
}

// handleInspect reports what the center ray of pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, setup, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	x, err := intParam(r, "x", 0, 0, req.Width-1)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	y, err := intParam(r, "y", 0, 0, req.Height-1)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	camera, err := renderer.NewCamera(setup.Camera)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	ray := camera.ConstructRay(req.Width, req.Height, x, y)
	tracer := renderer.NewBasicRayTracer(setup.Scene, s.config.Tracer())

	writeJSON(w, http.StatusOK, inspectRay(setup.Scene, tracer, ray))
}

// inspectRay describes the closest geometry along ray
func inspectRay(sc *scene.Scene, tracer renderer.RayTracer, ray core.Ray) InspectResponse {
	resp := InspectResponse{Color: colorArray(tracer.TraceRay(ray))}

	gp, ok := geometry.FindClosestGeoPoint(ray, sc.GetGeometries().Intersect(ray))
	if !ok {
		return resp
	}

	resp.Hit = true
	resp.GeometryType = geometryType(gp.Geometry)
	resp.Point = [3]float64{gp.Point.X, gp.Point.Y, gp.Point.Z}
	resp.Distance = ray.Origin.Distance(gp.Point)
	if n, err := gp.Geometry.Normal(gp.Point); err == nil {
		resp.Normal = [3]float64{n.X, n.Y, n.Z}
	}

	surface := gp.Geometry.Surface()
	resp.Emission = colorArray(surface.Emission)
	resp.Material = materialInfo(surface.Material)
	return resp
}

func geometryType(g geometry.Geometry) string {
	switch g.(type) {
	case *geometry.Plane:
		return "plane"
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Triangle:
		return "triangle"
	case *geometry.Tube:
		return "tube"
	case *geometry.Cylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

func materialInfo(m material.Material) MaterialInfo {
	return MaterialInfo{
		KD:        factorArray(m.KD),
		KS:        factorArray(m.KS),
		KR:        factorArray(m.KR),
		KT:        factorArray(m.KT),
		Shininess: m.Shininess,
	}
}

func colorArray(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func factorArray(f core.Factor) [3]float64 {
	return [3]float64{f.R, f.G, f.B}
}
