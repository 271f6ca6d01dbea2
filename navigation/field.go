package navigation

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Field is one fully built navigation snapshot. It is never mutated after
// Rebuild publishes it, so any number of goroutines may read it.
type Field struct {
	worldW, worldH float64
	cell           CellSize
	dims           Dims
	sources        []GridPos
	blocked        *BlockedSet
	costs          CostField
	flow           FlowField
}

// Stats summarizes a Field for logging.
type Stats struct {
	Dims      Dims
	Sources   int
	Blocked   int
	Reached   int
	MaxCost   float64
	ZeroFlows int
}

func (s Stats) String() string {
	return fmt.Sprintf("%dx%d sources=%d blocked=%d reached=%d max=%.2f zero=%d",
		s.Dims.W, s.Dims.H, s.Sources, s.Blocked, s.Reached, s.MaxCost, s.ZeroFlows)
}

func (f *Field) Dims() Dims {
	return f.dims
}

// WorldSize returns the world extent the field was built for.
func (f *Field) WorldSize() (float64, float64) {
	return f.worldW, f.worldH
}

// CellSize returns the world extent of one cell. It matches the configured
// size when the world is a multiple of it; otherwise cells stretch so the
// grid spans the world exactly.
func (f *Field) CellSize() CellSize {
	return f.cell
}

// WorldToCell maps a world position to the cell containing it. Positions
// outside [0, world) on either axis report false.
func (f *Field) WorldToCell(p cp.Vector) (GridPos, bool) {
	return worldToCell(p, f.worldW, f.worldH, f.dims)
}

func worldToCell(p cp.Vector, worldW, worldH float64, dims Dims) (GridPos, bool) {
	fx := math.Floor(p.X * float64(dims.W) / worldW)
	fy := math.Floor(p.Y * float64(dims.H) / worldH)
	// NaN fails every comparison and lands here as well.
	if !(fx >= 0 && fx < float64(dims.W) && fy >= 0 && fy < float64(dims.H)) {
		return GridPos{}, false
	}
	return GridPos{X: int(fx), Y: int(fy)}, true
}

// Sample returns the steering vector at c. Callers resolve c with WorldToCell
// first; an out-of-range cell panics.
func (f *Field) Sample(c GridPos) cp.Vector {
	if !f.dims.InBounds(c) {
		panic(fmt.Sprintf("navigation: sample %v outside %dx%d grid", c, f.dims.W, f.dims.H))
	}
	return f.flow.At(c)
}

// Cost returns the propagated cost at c, or Unreached. c must be in bounds.
func (f *Field) Cost(c GridPos) float64 {
	if !f.dims.InBounds(c) {
		panic(fmt.Sprintf("navigation: cost %v outside %dx%d grid", c, f.dims.W, f.dims.H))
	}
	return f.costs.At(c)
}

func (f *Field) Blocked(c GridPos) bool {
	return f.blocked.Contains(c)
}

// BlockedCells lists the blocked cells in row-major order.
func (f *Field) BlockedCells() []GridPos {
	return f.blocked.Cells()
}

// Sources returns a copy of the deduplicated source cells.
func (f *Field) Sources() []GridPos {
	return append([]GridPos(nil), f.sources...)
}

// CellCenter returns the world position of the centre of c.
func (f *Field) CellCenter(c GridPos) cp.Vector {
	return cellCenter(c, f.cell)
}

func (f *Field) CostValues() []float64 {
	return f.costs.Values()
}

func (f *Field) FlowVectors() []cp.Vector {
	return f.flow.Vectors()
}

func (f *Field) Stats() Stats {
	s := Stats{
		Dims:    f.dims,
		Sources: len(f.sources),
		Blocked: f.blocked.Len(),
	}
	for i, c := range f.costs.costs {
		if c != Unreached {
			s.Reached++
			s.MaxCost = math.Max(s.MaxCost, c)
		}
		if f.flow.vectors[i] == (cp.Vector{}) {
			s.ZeroFlows++
		}
	}
	return s
}
