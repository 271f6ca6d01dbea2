package component

import "github.com/jakecoffman/cp"

// LevelBounds is the world-space size of the current level. The navigation
// grid covers [0, Width) x [0, Height).
type LevelBounds struct {
	Width  float64
	Height float64
}

func (b LevelBounds) Contains(p cp.Vector) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// Clamp moves p to the nearest point at least margin inside the bounds.
func (b LevelBounds) Clamp(p cp.Vector, margin float64) cp.Vector {
	return cp.Vector{
		X: min(max(p.X, margin), b.Width-margin),
		Y: min(max(p.Y, margin), b.Height-margin),
	}
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
