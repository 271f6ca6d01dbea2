package navigation

import (
	"math"
	"sync"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator(t *testing.T, mutate func(*Config)) *Navigator {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	n, err := NewNavigator(cfg)
	require.NoError(t, err)
	return n
}

// ringObstacles walls off cells 5..9 on both axes of a 5-unit grid, leaving
// cells 6..8 enclosed.
func ringObstacles() []collision.Placed {
	return []collision.Placed{
		box(37.5, 27.5, 24, 4),
		box(37.5, 47.5, 24, 4),
		box(27.5, 37.5, 4, 24),
		box(47.5, 37.5, 4, 24),
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Cell.H = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidCellSize)

	cfg = DefaultConfig()
	cfg.Propagation = Propagation(7)
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownPropagation)

	cfg = DefaultConfig()
	cfg.Neighbors = NeighborRule(7)
	_, err := NewNavigator(cfg)
	assert.ErrorIs(t, err, ErrUnknownNeighborRule)
}

func TestNavigatorBeforeRebuild(t *testing.T) {
	n := newNavigator(t, nil)
	assert.Nil(t, n.Field())
	_, ok := n.WorldToCell(cp.Vector{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Panics(t, func() { n.Sample(GridPos{0, 0}) })
}

func TestRebuildErrorsKeepPreviousField(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{10, 10}}}))
	prev := n.Field()
	require.NotNil(t, prev)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"zero_width", Request{WorldWidth: 0, WorldHeight: 100, Sources: []GridPos{{0, 0}}}, ErrInvalidWorldSize},
		{"negative_height", Request{WorldWidth: 100, WorldHeight: -5, Sources: []GridPos{{0, 0}}}, ErrInvalidWorldSize},
		{"nan", Request{WorldWidth: math.NaN(), WorldHeight: 100, Sources: []GridPos{{0, 0}}}, ErrInvalidWorldSize},
		{"no_sources", Request{WorldWidth: 100, WorldHeight: 100}, ErrNoSources},
		{"source_past_edge", Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{20, 0}}}, ErrSourceOutOfBounds},
		{"negative_source", Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{3, 3}, {-1, 3}}}, ErrSourceOutOfBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := n.Rebuild(tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Same(t, prev, n.Field())
		})
	}
}

func TestWorldToCellBoundary(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{0, 0}}}))
	require.Equal(t, Dims{20, 20}, n.Field().Dims())

	tests := []struct {
		name string
		p    cp.Vector
		want GridPos
		ok   bool
	}{
		{"origin", cp.Vector{X: 0, Y: 0}, GridPos{0, 0}, true},
		{"far_corner", cp.Vector{X: 99.9, Y: 99.9}, GridPos{19, 19}, true},
		{"cell_edge", cp.Vector{X: 5, Y: 4.999}, GridPos{1, 0}, true},
		{"x_at_world_edge", cp.Vector{X: 100, Y: 0}, GridPos{}, false},
		{"y_at_world_edge", cp.Vector{X: 0, Y: 100}, GridPos{}, false},
		{"negative_x", cp.Vector{X: -0.1, Y: 50}, GridPos{}, false},
		{"negative_y", cp.Vector{X: 50, Y: -3}, GridPos{}, false},
		{"nan", cp.Vector{X: math.NaN(), Y: 1}, GridPos{}, false},
		{"inf", cp.Vector{X: math.Inf(1), Y: 1}, GridPos{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := n.WorldToCell(tc.p)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
			if ok {
				assert.True(t, n.Field().Dims().InBounds(got))
			}
		})
	}
}

func TestWorldToCellNonMultipleWorld(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 12, WorldHeight: 7, Sources: []GridPos{{0, 0}}}))
	f := n.Field()
	require.Equal(t, Dims{3, 2}, f.Dims())

	for x := 0.0; x < 12; x += 0.25 {
		for y := 0.0; y < 7; y += 0.25 {
			c, ok := f.WorldToCell(cp.Vector{X: x, Y: y})
			require.True(t, ok, "(%g,%g)", x, y)
			require.True(t, f.Dims().InBounds(c))
		}
	}
}

func TestRasterizeNonMultipleWorld(t *testing.T) {
	n := newNavigator(t, nil)
	wall := box(9.5, 3.5, 1, 7)
	require.NoError(t, n.Rebuild(Request{
		WorldWidth:  12,
		WorldHeight: 7,
		Sources:     []GridPos{{0, 0}},
		Obstacles:   []collision.Placed{wall},
	}))
	f := n.Field()
	require.Equal(t, Dims{3, 2}, f.Dims())
	assert.Equal(t, CellSize{W: 4, H: 3.5}, f.CellSize())
	assert.Equal(t, []GridPos{{2, 0}, {2, 1}}, f.BlockedCells())

	for y := 0.25; y < 7; y += 0.5 {
		c, ok := f.WorldToCell(cp.Vector{X: 9.5, Y: y})
		require.True(t, ok)
		assert.True(t, f.Blocked(c), "inside the wall at y=%g", y)
	}
	c, ok := f.WorldToCell(cp.Vector{X: 6, Y: 3.5})
	require.True(t, ok)
	assert.False(t, f.Blocked(c))
	assert.Equal(t, cp.Vector{X: 10, Y: 5.25}, f.CellCenter(GridPos{2, 1}))
}

func TestScenarioOpenFieldSingleSource(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 50, WorldHeight: 50, Sources: []GridPos{{5, 5}}}))
	f := n.Field()
	require.Equal(t, Dims{10, 10}, f.Dims())

	assert.Equal(t, 0.0, f.Cost(GridPos{5, 5}))
	assert.InDelta(t, 5*math.Sqrt2, f.Cost(GridPos{0, 0}), 1e-9)

	for idx := 0; idx < f.Dims().Len(); idx++ {
		p := f.Dims().Pos(idx)
		v := f.Sample(p)
		require.InDelta(t, 1.0, v.Length(), unitTolerance, "cell %v", p)
		// every step away from the source's neighborhood goes downhill
		if Distance(p, GridPos{5, 5}) >= 2 {
			next := GridPos{X: p.X + int(math.Round(v.X*math.Sqrt2)), Y: p.Y + int(math.Round(v.Y*math.Sqrt2))}
			assert.Less(t, f.Cost(next), f.Cost(p), "cell %v -> %v", p, next)
		}
	}
}

func TestScenarioWalledOffRegion(t *testing.T) {
	for _, mode := range []Propagation{PropagationWavefront, PropagationDijkstra} {
		t.Run(mode.String(), func(t *testing.T) {
			n := newNavigator(t, func(c *Config) { c.Propagation = mode })
			require.NoError(t, n.Rebuild(Request{
				WorldWidth:  100,
				WorldHeight: 100,
				Sources:     []GridPos{{0, 0}},
				Obstacles:   ringObstacles(),
			}))
			f := n.Field()
			assert.Len(t, f.BlockedCells(), 16)
			assert.True(t, f.Blocked(GridPos{5, 5}))
			assert.True(t, f.Blocked(GridPos{9, 7}))
			assert.False(t, f.Blocked(GridPos{7, 7}))

			for y := 6; y <= 8; y++ {
				for x := 6; x <= 8; x++ {
					c := GridPos{x, y}
					assert.Equal(t, Unreached, f.Cost(c), "cell %v", c)
					assert.Equal(t, cp.Vector{}, f.Sample(c), "cell %v", c)
				}
			}
			assert.Greater(t, f.Cost(GridPos{19, 19}), 0.0)
		})
	}
}

func TestScenarioMultipleSources(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 50, WorldHeight: 50, Sources: []GridPos{{0, 0}, {9, 9}}}))
	f := n.Field()

	assert.Equal(t, 0.0, f.Cost(GridPos{0, 0}))
	assert.Equal(t, 0.0, f.Cost(GridPos{9, 9}))
	assert.InDelta(t, 9.0, f.Cost(GridPos{9, 0}), 1e-9)
	assert.InDelta(t, 9.0, f.Cost(GridPos{0, 9}), 1e-9)
	assertVec(t, cp.Vector{X: -1}, f.Sample(GridPos{9, 0}), "(9,0)")
	assertVec(t, cp.Vector{Y: -1}, f.Sample(GridPos{0, 9}), "(0,9)")
	assert.Equal(t, []GridPos{{0, 0}, {9, 9}}, f.Sources())
}

func TestFieldProperties(t *testing.T) {
	obstacles := append(ringObstacles(), box(80, 20, 3, 29))
	req := Request{
		WorldWidth:  100,
		WorldHeight: 60,
		Sources:     []GridPos{{1, 1}, {18, 10}, {1, 1}},
		Obstacles:   obstacles,
	}

	for _, mode := range []Propagation{PropagationWavefront, PropagationDijkstra} {
		for _, rule := range []NeighborRule{NeighborsLegacy, NeighborsMoore} {
			t.Run(mode.String()+"/"+rule.String(), func(t *testing.T) {
				n := newNavigator(t, func(c *Config) {
					c.Propagation = mode
					c.Neighbors = rule
				})
				require.NoError(t, n.Rebuild(req))
				f := n.Field()
				dims := f.Dims()

				costs := f.CostValues()
				flow := f.FlowVectors()
				require.Len(t, costs, dims.W*dims.H)
				require.Len(t, flow, dims.W*dims.H)

				for _, s := range f.Sources() {
					assert.Equal(t, 0.0, f.Cost(s))
				}
				assert.Len(t, f.Sources(), 2)

				for i, c := range costs {
					assert.True(t, c == Unreached || c >= 0, "cell %v cost %g", dims.Pos(i), c)
					if l := flow[i].Length(); l != 0 {
						assert.InDelta(t, 1.0, l, unitTolerance, "cell %v", dims.Pos(i))
					}
					if c == Unreached && !f.Blocked(dims.Pos(i)) {
						assert.Equal(t, cp.Vector{}, flow[i], "cell %v", dims.Pos(i))
					}
				}

				require.NoError(t, n.Rebuild(req))
				assert.Equal(t, costs, n.Field().CostValues())
				assert.Equal(t, flow, n.Field().FlowVectors())
			})
		}
	}
}

func TestRebuildFiltersObstacleLayer(t *testing.T) {
	wall := box(52.5, 50, 4, 59)
	decoration := wall
	decoration.Layer = 3

	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{
		WorldWidth:  100,
		WorldHeight: 100,
		Sources:     []GridPos{{0, 0}},
		Obstacles:   []collision.Placed{decoration},
	}))
	assert.Empty(t, n.Field().BlockedCells())

	n = newNavigator(t, func(c *Config) { c.ObstacleLayer = 3 })
	require.NoError(t, n.Rebuild(Request{
		WorldWidth:  100,
		WorldHeight: 100,
		Sources:     []GridPos{{0, 0}},
		Obstacles:   []collision.Placed{wall, decoration},
	}))
	assert.Len(t, n.Field().BlockedCells(), 12)
}

func TestWithOverlap(t *testing.T) {
	everything := func(collision.Shape, collision.Transform, collision.Shape, collision.Transform) bool { return true }
	n, err := NewNavigator(DefaultConfig(), WithOverlap(everything))
	require.NoError(t, err)
	require.NoError(t, n.Rebuild(Request{
		WorldWidth:  20,
		WorldHeight: 20,
		Sources:     []GridPos{{0, 0}},
		Obstacles:   []collision.Placed{box(0, 0, 1, 1)},
	}))
	f := n.Field()
	assert.Len(t, f.BlockedCells(), 16)
	assert.Equal(t, 0.0, f.Cost(GridPos{0, 0}))
	assert.Equal(t, Unreached, f.Cost(GridPos{1, 1}))
}

func TestRebuildOnWorldSizeChange(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{10, 10}}}))
	old := n.Field()

	require.NoError(t, n.Rebuild(Request{WorldWidth: 1280, WorldHeight: 720, Sources: []GridPos{CenterCell(Dims{256, 144})}}))
	f := n.Field()
	assert.Equal(t, Dims{256, 144}, f.Dims())
	assert.Equal(t, []GridPos{{128, 72}}, f.Sources())
	w, h := f.WorldSize()
	assert.Equal(t, 1280.0, w)
	assert.Equal(t, 720.0, h)

	// snapshots already handed out stay consistent
	assert.Equal(t, Dims{20, 20}, old.Dims())
	assert.Equal(t, 0.0, old.Cost(GridPos{10, 10}))
}

func TestCellsFromWorld(t *testing.T) {
	n := newNavigator(t, nil)
	cells, err := n.CellsFromWorld(100, 100, []cp.Vector{{X: 0, Y: 0}, {X: 52, Y: 99}})
	require.NoError(t, err)
	assert.Equal(t, []GridPos{{0, 0}, {10, 19}}, cells)

	_, err = n.CellsFromWorld(100, 100, []cp.Vector{{X: 100, Y: 0}})
	assert.ErrorIs(t, err, ErrSourceOutOfBounds)

	_, err = n.CellsFromWorld(0, 100, nil)
	assert.ErrorIs(t, err, ErrInvalidWorldSize)
}

func TestFieldHelpers(t *testing.T) {
	n := newNavigator(t, nil)
	require.NoError(t, n.Rebuild(Request{WorldWidth: 100, WorldHeight: 100, Sources: []GridPos{{3, 4}}}))
	f := n.Field()

	assert.Equal(t, cp.Vector{X: 17.5, Y: 22.5}, f.CellCenter(GridPos{3, 4}))
	assert.Equal(t, CellSize{W: 5, H: 5}, f.CellSize())
	assert.Panics(t, func() { f.Sample(GridPos{20, 0}) })
	assert.Panics(t, func() { f.Cost(GridPos{0, -1}) })

	s := f.Stats()
	assert.Equal(t, Dims{20, 20}, s.Dims)
	assert.Equal(t, 1, s.Sources)
	assert.Equal(t, 400, s.Reached)
	assert.Zero(t, s.Blocked)
	assert.Contains(t, s.String(), "20x20")
}

func TestConcurrentReadersDuringRebuild(t *testing.T) {
	n := newNavigator(t, nil)
	req := Request{WorldWidth: 200, WorldHeight: 200, Sources: []GridPos{{20, 20}}, Obstacles: ringObstacles()}
	require.NoError(t, n.Rebuild(req))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				f := n.Field()
				c, ok := f.WorldToCell(cp.Vector{X: 123, Y: 45})
				if !ok {
					t.Error("point left the world")
					return
				}
				if l := f.Sample(c).Length(); l != 0 && math.Abs(l-1) > unitTolerance {
					t.Errorf("non-unit sample %g", l)
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, n.Rebuild(req))
	}
	close(stop)
	wg.Wait()
}
