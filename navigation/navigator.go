// Package navigation builds flow fields: a per-cell steering vector that leads
// any number of agents towards one or more goal cells around static obstacles.
//
// A Navigator owns the current Field. Rebuild rasterizes the obstacles onto a
// grid, propagates costs outward from the source cells and derives the flow
// vectors, then publishes the result in one atomic swap. Readers call
// WorldToCell and Sample, or hold on to a *Field for a consistent view across
// several lookups.
package navigation

import (
	"fmt"
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
)

// Config fixes how a Navigator builds fields. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Cell          CellSize
	ObstacleLayer collision.Layer
	Propagation   Propagation
	Neighbors     NeighborRule
}

func DefaultConfig() Config {
	return Config{
		Cell:          CellSize{W: defaultCellWidth, H: defaultCellHeight},
		ObstacleLayer: 0,
		Propagation:   PropagationWavefront,
		Neighbors:     NeighborsLegacy,
	}
}

func (c Config) Validate() error {
	if !positiveFinite(c.Cell.W) || !positiveFinite(c.Cell.H) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidCellSize, c.Cell.W, c.Cell.H)
	}
	if c.Propagation != PropagationWavefront && c.Propagation != PropagationDijkstra {
		return fmt.Errorf("%w: %v", ErrUnknownPropagation, c.Propagation)
	}
	if c.Neighbors != NeighborsLegacy && c.Neighbors != NeighborsMoore {
		return fmt.Errorf("%w: %v", ErrUnknownNeighborRule, c.Neighbors)
	}
	return nil
}

// Option customizes a Navigator.
type Option func(*Navigator)

// WithOverlap replaces the shape test used to rasterize obstacles.
func WithOverlap(fn OverlapFunc) Option {
	return func(n *Navigator) {
		if fn != nil {
			n.overlap = fn
		}
	}
}

// Request is the input of one rebuild.
type Request struct {
	WorldWidth  float64
	WorldHeight float64
	Sources     []GridPos
	// Obstacles on any layer other than the configured obstacle layer are
	// ignored.
	Obstacles []collision.Placed
}

// Navigator owns the published Field. Rebuild must only be called from one
// goroutine at a time; every other method is safe for concurrent use.
type Navigator struct {
	cfg     Config
	overlap OverlapFunc
	field   atomic.Pointer[Field]
}

func NewNavigator(cfg Config, opts ...Option) (*Navigator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Navigator{cfg: cfg, overlap: collision.Overlap}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *Navigator) Config() Config {
	return n.cfg
}

// Rebuild computes a new Field from req and publishes it. On error nothing is
// published and the previous Field stays current.
func (n *Navigator) Rebuild(req Request) error {
	f, err := n.build(req)
	if err != nil {
		return err
	}
	n.field.Store(f)
	return nil
}

func (n *Navigator) build(req Request) (*Field, error) {
	dims, err := DimsFor(req.WorldWidth, req.WorldHeight, n.cfg.Cell)
	if err != nil {
		return nil, err
	}
	if len(req.Sources) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]GridPos, 0, len(req.Sources))
	seen := make(map[GridPos]struct{}, len(req.Sources))
	for _, s := range req.Sources {
		if !dims.InBounds(s) {
			return nil, fmt.Errorf("%w: %v not in %dx%d", ErrSourceOutOfBounds, s, dims.W, dims.H)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sources = append(sources, s)
	}

	obstacles := make([]collision.Placed, 0, len(req.Obstacles))
	for _, o := range req.Obstacles {
		if o.Layer == n.cfg.ObstacleLayer {
			obstacles = append(obstacles, o)
		}
	}

	// WorldToCell divides the world evenly between the cells, so the
	// rasterized footprint has to as well.
	footprint := CellSize{W: req.WorldWidth / float64(dims.W), H: req.WorldHeight / float64(dims.H)}
	blocked := Rasterize(dims, footprint, obstacles, n.overlap)
	costs := BuildCostField(dims, sources, blocked, n.cfg.Propagation)
	flow := DeriveFlow(costs, n.cfg.Neighbors)

	return &Field{
		worldW:  req.WorldWidth,
		worldH:  req.WorldHeight,
		cell:    footprint,
		dims:    dims,
		sources: sources,
		blocked: blocked,
		costs:   costs,
		flow:    flow,
	}, nil
}

// Field returns the current snapshot, or nil before the first successful
// rebuild.
func (n *Navigator) Field() *Field {
	return n.field.Load()
}

// WorldToCell maps p onto the current field. It reports false when p is
// outside the world or nothing has been built yet.
func (n *Navigator) WorldToCell(p cp.Vector) (GridPos, bool) {
	f := n.field.Load()
	if f == nil {
		return GridPos{}, false
	}
	return f.WorldToCell(p)
}

// Sample returns the steering vector at c on the current field. It panics
// when c is out of range or nothing has been built yet.
func (n *Navigator) Sample(c GridPos) cp.Vector {
	f := n.field.Load()
	if f == nil {
		panic("navigation: sample before first rebuild")
	}
	return f.Sample(c)
}

// CellsFromWorld converts world-space goal points into the cells of a grid
// built for the given world size. Any point outside the world fails with
// ErrSourceOutOfBounds.
func (n *Navigator) CellsFromWorld(worldW, worldH float64, points []cp.Vector) ([]GridPos, error) {
	dims, err := DimsFor(worldW, worldH, n.cfg.Cell)
	if err != nil {
		return nil, err
	}
	cells := make([]GridPos, 0, len(points))
	for _, p := range points {
		c, ok := worldToCell(p, worldW, worldH, dims)
		if !ok {
			return nil, fmt.Errorf("%w: world point (%g, %g)", ErrSourceOutOfBounds, p.X, p.Y)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// CenterCell is the cell used as the goal when a level names none.
func CenterCell(dims Dims) GridPos {
	return GridPos{X: dims.W / 2, Y: dims.H / 2}
}
