package navigation

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// NeighborRule selects which offsets DeriveFlow considers around a cell.
type NeighborRule int

const (
	// NeighborsLegacy considers the offsets (i, j) with i != j. The diagonals
	// (-1,-1) and (1,1) are never chosen, so agents cannot move straight
	// up-left or down-right.
	NeighborsLegacy NeighborRule = iota
	// NeighborsMoore considers all eight neighbors.
	NeighborsMoore
)

func (r NeighborRule) String() string {
	switch r {
	case NeighborsLegacy:
		return "legacy"
	case NeighborsMoore:
		return "moore"
	default:
		return fmt.Sprintf("NeighborRule(%d)", int(r))
	}
}

// ParseNeighborRule maps a config name to a NeighborRule. The empty string is
// the legacy default.
func ParseNeighborRule(name string) (NeighborRule, error) {
	switch name {
	case "", "legacy":
		return NeighborsLegacy, nil
	case "moore":
		return NeighborsMoore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNeighborRule, name)
	}
}

type flowOffset struct {
	dx, dy int
	dir    cp.Vector
}

// Offsets are scanned with i (x) outer and j (y) inner, both ascending, so
// ties go to the first minimum in that order.
var (
	legacyOffsets = buildOffsets(func(i, j int) bool { return i != j })
	mooreFlow     = buildOffsets(func(i, j int) bool { return i != 0 || j != 0 })
)

func buildOffsets(keep func(i, j int) bool) []flowOffset {
	var out []flowOffset
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if !keep(i, j) {
				continue
			}
			l := math.Hypot(float64(i), float64(j))
			out = append(out, flowOffset{
				dx:  i,
				dy:  j,
				dir: cp.Vector{X: float64(i) / l, Y: float64(j) / l},
			})
		}
	}
	return out
}

func (r NeighborRule) offsets() []flowOffset {
	if r == NeighborsMoore {
		return mooreFlow
	}
	return legacyOffsets
}

// FlowField holds one unit or zero steering vector per cell.
type FlowField struct {
	dims    Dims
	vectors []cp.Vector
}

func (f FlowField) Dims() Dims {
	return f.dims
}

// At returns the vector at p. p must be in bounds.
func (f FlowField) At(p GridPos) cp.Vector {
	return f.vectors[f.dims.Index(p)]
}

// Vectors returns a row-major copy of the field.
func (f FlowField) Vectors() []cp.Vector {
	return append([]cp.Vector(nil), f.vectors...)
}

// DeriveFlow points every cell at its cheapest neighbor. Only neighbors with a
// strictly positive cost count, which leaves sources, unreached cells and
// cells next to nothing but sources or unreached cells with a zero vector.
func DeriveFlow(costs CostField, rule NeighborRule) FlowField {
	dims := costs.dims
	vectors := make([]cp.Vector, dims.Len())
	offsets := rule.offsets()

	for y := 0; y < dims.H; y++ {
		for x := 0; x < dims.W; x++ {
			best := -1
			bestCost := math.Inf(1)
			for k, o := range offsets {
				n := GridPos{X: x + o.dx, Y: y + o.dy}
				if !dims.InBounds(n) {
					continue
				}
				c := costs.costs[dims.Index(n)]
				if c > 0 && c < bestCost {
					bestCost = c
					best = k
				}
			}
			if best >= 0 {
				vectors[y*dims.W+x] = offsets[best].dir
			}
		}
	}
	return FlowField{dims: dims, vectors: vectors}
}
