package navigation

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
)

// OverlapFunc reports whether two placed shapes intersect.
type OverlapFunc func(a collision.Shape, ta collision.Transform, b collision.Shape, tb collision.Transform) bool

// Rasterize marks every cell whose footprint intersects at least one obstacle.
// Each cell is tested as an axis-aligned box of size cell against every
// obstacle, so any overlap of positive area blocks the cell. An obstacle that
// only touches a cell edge leaves the cell open. The cost is O(cells × obstacles);
// it runs on rebuild only.
func Rasterize(dims Dims, cell CellSize, obstacles []collision.Placed, overlap OverlapFunc) *BlockedSet {
	blocked := NewBlockedSet(dims)
	if len(obstacles) == 0 {
		return blocked
	}
	if overlap == nil {
		overlap = collision.Overlap
	}

	proxy := collision.Box{Width: cell.W, Height: cell.H}
	for y := 0; y < dims.H; y++ {
		for x := 0; x < dims.W; x++ {
			p := GridPos{X: x, Y: y}
			at := collision.Transform{Position: cellCenter(p, cell)}
			for _, o := range obstacles {
				if o.Shape == nil {
					continue
				}
				if overlap(proxy, at, o.Shape, o.Transform) {
					blocked.Add(p)
					break
				}
			}
		}
	}
	return blocked
}

func cellCenter(p GridPos, cell CellSize) cp.Vector {
	return cp.Vector{
		X: (float64(p.X) + 0.5) * cell.W,
		Y: (float64(p.Y) + 0.5) * cell.H,
	}
}
