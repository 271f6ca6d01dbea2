package collision

import "sort"

// Layer groups colliders. Which layers collide with which is decided by a
// LayerMatrix.
type Layer uint32

// LayerMatrix records which layer pairs interact. A pair interacts when
// either direction was allowed.
type LayerMatrix struct {
	pairs map[Layer]map[Layer]struct{}
}

// NewLayerMatrix returns a matrix allowing the given pairs.
func NewLayerMatrix(pairs ...[2]Layer) *LayerMatrix {
	m := &LayerMatrix{pairs: make(map[Layer]map[Layer]struct{})}
	for _, p := range pairs {
		m.Allow(p[0], p[1])
	}
	return m
}

// DefaultLayerMatrix lets layer 0 collide with itself and nothing else.
func DefaultLayerMatrix() *LayerMatrix {
	return NewLayerMatrix([2]Layer{0, 0})
}

func (m *LayerMatrix) Allow(a, b Layer) {
	set, ok := m.pairs[a]
	if !ok {
		set = make(map[Layer]struct{})
		m.pairs[a] = set
	}
	set[b] = struct{}{}
}

func (m *LayerMatrix) Interacts(a, b Layer) bool {
	if m == nil {
		return false
	}
	if _, ok := m.pairs[a][b]; ok {
		return true
	}
	_, ok := m.pairs[b][a]
	return ok
}

// Pairs lists the allowed pairs sorted by first then second layer.
func (m *LayerMatrix) Pairs() [][2]Layer {
	if m == nil {
		return nil
	}
	var out [][2]Layer
	for a, set := range m.pairs {
		for b := range set {
			out = append(out, [2]Layer{a, b})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
