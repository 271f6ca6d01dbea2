package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// touchSlop is the penetration below which two shapes only touch.
const touchSlop = 1e-9

// Overlap reports whether a at ta and b at tb share a region of positive
// area. Shapes that only touch along an edge or at a point do not overlap.
func Overlap(a Shape, ta Transform, b Shape, tb Transform) bool {
	c, ok := Contact(a, ta, b, tb)
	return ok && c.Depth > touchSlop
}

// ContactInfo describes how two overlapping shapes penetrate. Normal points
// from the first shape towards the second; moving the second shape by
// Normal*Depth separates them.
type ContactInfo struct {
	Normal cp.Vector
	Depth  float64
}

// Contact returns the penetration between a and b, or false if they are
// apart. Touching shapes report a zero Depth.
func Contact(a Shape, ta Transform, b Shape, tb Transform) (ContactInfo, bool) {
	if a == nil || b == nil {
		return ContactInfo{}, false
	}
	if !a.bounds(ta).Intersects(b.bounds(tb)) {
		return ContactInfo{}, false
	}

	set := cp.ShapesCollide(place(a, ta), place(b, tb))
	if set.Count == 0 {
		return ContactInfo{}, false
	}
	depth := 0.0
	for i := 0; i < set.Count; i++ {
		depth = math.Max(depth, -set.Points[i].Distance)
	}
	return ContactInfo{Normal: set.Normal, Depth: depth}, true
}

// Ray starts at Origin and runs along Dir. Dir need not be normalized.
type Ray struct {
	Origin cp.Vector
	Dir    cp.Vector
}

// Raycast returns the distance along ray at which it first enters s placed at
// t, if that happens within maxDist. A ray starting inside s hits at 0.
func Raycast(s Shape, t Transform, ray Ray, maxDist float64) (float64, bool) {
	if s == nil || !(maxDist >= 0) {
		return 0, false
	}
	dirLen := ray.Dir.Length()
	if dirLen == 0 {
		return 0, false
	}
	dir := ray.Dir.Mult(1 / dirLen)
	end := ray.Origin.Add(dir.Mult(maxDist))

	segBB := cp.BB{
		L: math.Min(ray.Origin.X, end.X),
		B: math.Min(ray.Origin.Y, end.Y),
		R: math.Max(ray.Origin.X, end.X),
		T: math.Max(ray.Origin.Y, end.Y),
	}
	if !segBB.Intersects(s.bounds(t)) {
		return 0, false
	}

	shape := place(s, t)
	if shape.PointQuery(ray.Origin).Distance <= 0 {
		return 0, true
	}
	if maxDist == 0 {
		return 0, false
	}
	var info cp.SegmentQueryInfo
	if !shape.SegmentQuery(ray.Origin, end, 0, &info) {
		return 0, false
	}
	return info.Alpha * maxDist, true
}
