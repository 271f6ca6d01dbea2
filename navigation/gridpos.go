package navigation

import (
	"fmt"
	"math"
)

// GridPos addresses one cell of the navigation grid.
type GridPos struct {
	X int
	Y int
}

func (p GridPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance is the Euclidean distance between two cells. It is used as an edge
// weight: 1 for orthogonal neighbors, sqrt(2) for diagonal ones.
func Distance(a, b GridPos) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// CellSize is the world-space footprint of a single cell.
type CellSize struct {
	W float64
	H float64
}

const (
	defaultCellWidth  = 5.0
	defaultCellHeight = 5.0
)

// Dims is the grid size in cells.
type Dims struct {
	W int
	H int
}

// DimsFor derives the grid size covering a world of the given size.
func DimsFor(worldW, worldH float64, cell CellSize) (Dims, error) {
	if !positiveFinite(worldW) || !positiveFinite(worldH) {
		return Dims{}, fmt.Errorf("%w: %gx%g", ErrInvalidWorldSize, worldW, worldH)
	}
	if !positiveFinite(cell.W) || !positiveFinite(cell.H) {
		return Dims{}, fmt.Errorf("%w: %gx%g", ErrInvalidCellSize, cell.W, cell.H)
	}
	return Dims{
		W: int(math.Ceil(worldW / cell.W)),
		H: int(math.Ceil(worldH / cell.H)),
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Len is the number of cells in the grid.
func (d Dims) Len() int {
	return d.W * d.H
}

// InBounds reports whether p addresses a cell of the grid.
func (d Dims) InBounds(p GridPos) bool {
	return p.X >= 0 && p.X < d.W && p.Y >= 0 && p.Y < d.H
}

// Index maps p to its row-major slot. p must be in bounds.
func (d Dims) Index(p GridPos) int {
	return p.Y*d.W + p.X
}

// Pos is the inverse of Index.
func (d Dims) Pos(idx int) GridPos {
	return GridPos{X: idx % d.W, Y: idx / d.W}
}

// mooreOffsets lists the eight neighbor offsets in row-major order.
var mooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the in-bounds Moore neighborhood of p (up to 8 cells),
// always in the same order.
func (d Dims) Neighbors(p GridPos) []GridPos {
	return d.appendNeighbors(make([]GridPos, 0, 8), p)
}

func (d Dims) appendNeighbors(dst []GridPos, p GridPos) []GridPos {
	for _, o := range mooreOffsets {
		n := GridPos{X: p.X + o[0], Y: p.Y + o[1]}
		if d.InBounds(n) {
			dst = append(dst, n)
		}
	}
	return dst
}
