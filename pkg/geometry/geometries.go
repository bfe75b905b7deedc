package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Geometries is a flat collection of intersectables scanned linearly.
// It owns its children; nested collections are allowed.
type Geometries struct {
	children []Intersectable
}

// NewGeometries creates a collection holding the given children
func NewGeometries(children ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(children...)
	return g
}

// Add appends children to the collection
func (g *Geometries) Add(children ...Intersectable) {
	g.children = append(g.children, children...)
}

// Len returns the number of direct children
func (g *Geometries) Len() int {
	return len(g.children)
}

// Intersect concatenates the hits of every child, or returns nil when none hit
func (g *Geometries) Intersect(ray core.Ray) []GeoPoint {
	var hits []GeoPoint
	for _, child := range g.children {
		if h := child.Intersect(ray); h != nil {
			hits = append(hits, h...)
		}
	}
	return hits
}
