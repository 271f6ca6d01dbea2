package navigation

import (
	"container/heap"
	"fmt"
)

// Unreached is the cost of a cell no source could reach.
const Unreached = -1.0

// Propagation selects how costs spread out from the source cells.
type Propagation int

const (
	// PropagationWavefront expands breadth-first from the sources. A cell whose
	// cost improves after it was first reached is updated in place but not
	// expanded again, so costs past it keep the older value. Cheap, but not
	// guaranteed minimal.
	PropagationWavefront Propagation = iota
	// PropagationDijkstra re-expands every improved cell in cost order and
	// yields shortest 8-connected path lengths.
	PropagationDijkstra
)

func (p Propagation) String() string {
	switch p {
	case PropagationWavefront:
		return "wavefront"
	case PropagationDijkstra:
		return "dijkstra"
	default:
		return fmt.Sprintf("Propagation(%d)", int(p))
	}
}

// ParsePropagation maps a config name to a Propagation. The empty string is
// the wavefront default.
func ParsePropagation(name string) (Propagation, error) {
	switch name {
	case "", "wavefront":
		return PropagationWavefront, nil
	case "dijkstra":
		return PropagationDijkstra, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPropagation, name)
	}
}

// CostField holds one traversal cost per cell, Unreached where no path exists.
type CostField struct {
	dims  Dims
	costs []float64
}

func (c CostField) Dims() Dims {
	return c.dims
}

// At returns the cost at p. p must be in bounds.
func (c CostField) At(p GridPos) float64 {
	return c.costs[c.dims.Index(p)]
}

// Reached reports whether p has a cost.
func (c CostField) Reached(p GridPos) bool {
	return c.dims.InBounds(p) && c.costs[c.dims.Index(p)] != Unreached
}

// Values returns a row-major copy of the costs.
func (c CostField) Values() []float64 {
	return append([]float64(nil), c.costs...)
}

// BuildCostField assigns a cost to every cell reachable from sources without
// entering a blocked cell. Sources are seeded at 0; duplicate and
// out-of-bounds sources are ignored.
func BuildCostField(dims Dims, sources []GridPos, blocked *BlockedSet, mode Propagation) CostField {
	costs := make([]float64, dims.Len())
	for i := range costs {
		costs[i] = Unreached
	}

	seeds := make([]GridPos, 0, len(sources))
	for _, s := range sources {
		if !dims.InBounds(s) {
			continue
		}
		idx := dims.Index(s)
		if costs[idx] == 0 {
			continue
		}
		costs[idx] = 0
		seeds = append(seeds, s)
	}

	switch mode {
	case PropagationDijkstra:
		propagateDijkstra(dims, costs, seeds, blocked)
	default:
		propagateWavefront(dims, costs, seeds, blocked)
	}
	return CostField{dims: dims, costs: costs}
}

func propagateWavefront(dims Dims, costs []float64, seeds []GridPos, blocked *BlockedSet) {
	queue := make([]GridPos, 0, dims.Len())
	queue = append(queue, seeds...)

	var buf [8]GridPos
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		base := costs[dims.Index(cur)]
		for _, n := range dims.appendNeighbors(buf[:0], cur) {
			if blocked.Contains(n) {
				continue
			}
			idx := dims.Index(n)
			next := base + Distance(cur, n)
			if costs[idx] == Unreached {
				costs[idx] = next
				queue = append(queue, n)
			} else if next < costs[idx] {
				costs[idx] = next
			}
		}
	}
}

func propagateDijkstra(dims Dims, costs []float64, seeds []GridPos, blocked *BlockedSet) {
	open := make(costQueue, 0, len(seeds))
	for _, s := range seeds {
		open = append(open, costItem{idx: dims.Index(s), cost: 0})
	}
	heap.Init(&open)

	settled := make([]bool, dims.Len())
	var buf [8]GridPos
	for open.Len() > 0 {
		item := heap.Pop(&open).(costItem)
		if settled[item.idx] || item.cost > costs[item.idx] {
			continue
		}
		settled[item.idx] = true

		cur := dims.Pos(item.idx)
		for _, n := range dims.appendNeighbors(buf[:0], cur) {
			if blocked.Contains(n) {
				continue
			}
			idx := dims.Index(n)
			if settled[idx] {
				continue
			}
			next := item.cost + Distance(cur, n)
			if costs[idx] == Unreached || next < costs[idx] {
				costs[idx] = next
				heap.Push(&open, costItem{idx: idx, cost: next})
			}
		}
	}
}

type costItem struct {
	idx  int
	cost float64
}

// costQueue is a min-heap on cost; equal costs pop in index order so the
// result does not depend on heap layout.
type costQueue []costItem

func (q costQueue) Len() int { return len(q) }
func (q costQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].idx < q[j].idx
}
func (q costQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *costQueue) Push(x any)   { *q = append(*q, x.(costItem)) }
func (q *costQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
