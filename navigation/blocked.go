package navigation

// BlockedSet marks the cells no agent may pass through.
type BlockedSet struct {
	dims  Dims
	cells []bool
	count int
}

// NewBlockedSet returns an empty set sized for dims.
func NewBlockedSet(dims Dims) *BlockedSet {
	return &BlockedSet{dims: dims, cells: make([]bool, dims.Len())}
}

// Add marks p as blocked. Out-of-bounds cells are ignored.
func (b *BlockedSet) Add(p GridPos) {
	if b == nil || !b.dims.InBounds(p) {
		return
	}
	idx := b.dims.Index(p)
	if b.cells[idx] {
		return
	}
	b.cells[idx] = true
	b.count++
}

// Contains reports whether p is blocked. A nil set blocks nothing.
func (b *BlockedSet) Contains(p GridPos) bool {
	if b == nil || !b.dims.InBounds(p) {
		return false
	}
	return b.cells[b.dims.Index(p)]
}

func (b *BlockedSet) Len() int {
	if b == nil {
		return 0
	}
	return b.count
}

// Cells lists the blocked cells in row-major order.
func (b *BlockedSet) Cells() []GridPos {
	if b == nil || b.count == 0 {
		return nil
	}
	out := make([]GridPos, 0, b.count)
	for idx, blocked := range b.cells {
		if blocked {
			out = append(out, b.dims.Pos(idx))
		}
	}
	return out
}
