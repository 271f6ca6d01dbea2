// Package collision answers overlap, contact and ray queries between placed
// convex shapes. Geometry is handed to Chipmunk (cp) one pair at a time; no
// physics space is kept.
package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var (
	ErrInvalidShape = errors.New("collision: invalid shape")
	ErrConcave      = errors.New("collision: polygon is not convex")
)

// Shape is one of Box, Circle or Polygon, in local coordinates centred on
// the owning Transform.
type Shape interface {
	// Validate reports whether the shape has usable dimensions.
	Validate() error

	bounds(t Transform) cp.BB
	attach(body *cp.Body) *cp.Shape
}

// Transform places a shape in the world. Rotation is in radians.
type Transform struct {
	Position cp.Vector
	Rotation float64
}

// Placed is a shape at a world transform on a collision layer.
type Placed struct {
	Shape     Shape
	Transform Transform
	Layer     Layer
}

// Box is an axis-aligned rectangle before rotation.
type Box struct {
	Width  float64
	Height float64
}

func (b Box) Validate() error {
	if !(b.Width > 0) || !(b.Height > 0) {
		return fmt.Errorf("%w: box %gx%g", ErrInvalidShape, b.Width, b.Height)
	}
	return nil
}

func (b Box) corners() []cp.Vector {
	hw, hh := b.Width/2, b.Height/2
	return []cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
}

func (b Box) bounds(t Transform) cp.BB {
	return boundsOf(b.corners(), t)
}

func (b Box) attach(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, b.Width, b.Height, 0)
}

type Circle struct {
	Radius float64
}

func (c Circle) Validate() error {
	if !(c.Radius > 0) {
		return fmt.Errorf("%w: circle radius %g", ErrInvalidShape, c.Radius)
	}
	return nil
}

func (c Circle) bounds(t Transform) cp.BB {
	p := t.Position
	return cp.BB{L: p.X - c.Radius, B: p.Y - c.Radius, R: p.X + c.Radius, T: p.Y + c.Radius}
}

func (c Circle) attach(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, c.Radius, cp.Vector{})
}

// Polygon is a convex polygon. Vertices may wind either way.
type Polygon struct {
	Vertices []cp.Vector
}

func (p Polygon) Validate() error {
	n := len(p.Vertices)
	if n < 3 {
		return fmt.Errorf("%w: polygon needs 3 vertices, got %d", ErrInvalidShape, n)
	}
	area := signedArea(p.Vertices)
	if area == 0 || math.IsNaN(area) {
		return fmt.Errorf("%w: degenerate polygon", ErrInvalidShape)
	}
	sign := math.Copysign(1, area)
	for i := 0; i < n; i++ {
		a, b, c := p.Vertices[i], p.Vertices[(i+1)%n], p.Vertices[(i+2)%n]
		if b.Sub(a).Cross(c.Sub(b))*sign < 0 {
			return ErrConcave
		}
	}
	return nil
}

func (p Polygon) bounds(t Transform) cp.BB {
	return boundsOf(p.Vertices, t)
}

func (p Polygon) attach(body *cp.Body) *cp.Shape {
	verts := p.Vertices
	if signedArea(verts) < 0 {
		verts = make([]cp.Vector, len(p.Vertices))
		for i, v := range p.Vertices {
			verts[len(verts)-1-i] = v
		}
	}
	return cp.NewPolyShapeRaw(body, len(verts), verts, 0)
}

func signedArea(verts []cp.Vector) float64 {
	var sum float64
	for i, v := range verts {
		sum += v.Cross(verts[(i+1)%len(verts)])
	}
	return sum / 2
}

// Bounds returns the world-space bounding box of s at t.
func Bounds(s Shape, t Transform) cp.BB {
	return s.bounds(t)
}

func boundsOf(local []cp.Vector, t Transform) cp.BB {
	rot := cp.ForAngle(t.Rotation)
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range local {
		w := v.Rotate(rot).Add(t.Position)
		bb.L = math.Min(bb.L, w.X)
		bb.B = math.Min(bb.B, w.Y)
		bb.R = math.Max(bb.R, w.X)
		bb.T = math.Max(bb.T, w.Y)
	}
	return bb
}

// Outline returns the world-space vertices of a box or polygon placed at t,
// for drawing. Circles have no vertices and return nil.
func Outline(s Shape, t Transform) []cp.Vector {
	var local []cp.Vector
	switch v := s.(type) {
	case Box:
		local = v.corners()
	case Polygon:
		local = v.Vertices
	default:
		return nil
	}
	rot := cp.ForAngle(t.Rotation)
	out := make([]cp.Vector, len(local))
	for i, v := range local {
		out[i] = v.Rotate(rot).Add(t.Position)
	}
	return out
}

// place builds a cp shape for s on a free-standing body at t, with its
// world-space geometry cached so it can be queried without a space.
func place(s Shape, t Transform) *cp.Shape {
	body := cp.NewBody(1, 1)
	body.SetPosition(t.Position)
	body.SetAngle(t.Rotation)
	shape := s.attach(body)
	shape.CacheBB()
	return shape
}
