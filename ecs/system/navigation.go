package system

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
)

// FieldSource hands out the navigation field current for this tick.
type FieldSource interface {
	Field() *navigation.Field
}

// NavigationSystem owns the navigator. It rebuilds the flow field when a
// NavRebuildRequest entity exists or when the level size no longer matches
// the published field. Rebuild failures keep the previous field.
type NavigationSystem struct {
	nav *navigation.Navigator
	// prev serves the last published field after Reconfigure until nav has
	// built one of its own
	prev    *navigation.Navigator
	pending bool

	// size of the last failed attempt, so a broken level is not retried
	// every tick without a new request
	failedW, failedH float64
	failed           bool
}

func NewNavigationSystem(cfg navigation.Config) (*NavigationSystem, error) {
	nav, err := navigation.NewNavigator(cfg)
	if err != nil {
		return nil, err
	}
	return &NavigationSystem{nav: nav}, nil
}

func (s *NavigationSystem) Navigator() *navigation.Navigator {
	if s == nil {
		return nil
	}
	return s.nav
}

func (s *NavigationSystem) Field() *navigation.Field {
	if s == nil || s.nav == nil {
		return nil
	}
	if f := s.nav.Field(); f != nil {
		return f
	}
	if s.prev != nil {
		return s.prev.Field()
	}
	return nil
}

// Reconfigure swaps in a navigator built from cfg and forces a rebuild on the
// next Update. The field built under the old config stays current until the
// new navigator publishes one.
func (s *NavigationSystem) Reconfigure(cfg navigation.Config) error {
	if s == nil {
		return nil
	}
	nav, err := navigation.NewNavigator(cfg)
	if err != nil {
		return err
	}
	if s.nav != nil && s.nav.Field() != nil {
		s.prev = s.nav
	}
	s.nav = nav
	s.pending = true
	s.failed = false
	return nil
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.nav == nil {
		return
	}

	bounds, ok := levelBounds(w)
	if !ok {
		return
	}

	reasons := make([]string, 0, 1)
	requests := make([]ecs.Entity, 0, 1)
	ecs.ForEach(w, component.NavRebuildRequestComponent.Kind(), func(e ecs.Entity, req *component.NavRebuildRequest) {
		requests = append(requests, e)
		if req.Reason != "" {
			reasons = append(reasons, req.Reason)
		}
	})
	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}

	sizeChanged := true
	if f := s.Field(); f != nil {
		ww, wh := f.WorldSize()
		sizeChanged = ww != bounds.Width || wh != bounds.Height
	}

	switch {
	case len(requests) > 0:
	case s.failed && s.failedW == bounds.Width && s.failedH == bounds.Height:
		return
	case s.pending:
		reasons = append(reasons, "config changed")
	case sizeChanged:
		reasons = append(reasons, "level size changed")
	default:
		return
	}

	start := time.Now()
	field, err := s.rebuild(w, bounds)
	if err != nil {
		s.failed = true
		s.failedW, s.failedH = bounds.Width, bounds.Height
		log.Printf("navigation: rebuild failed (%s): %v", strings.Join(reasons, ", "), err)
		w.Events().Push(ecs.Event{Type: ecs.EventRebuildFailed, Data: err})
		return
	}
	s.failed = false
	s.pending = false
	s.prev = nil

	stats := field.Stats()
	log.Printf("navigation: rebuilt %dx%d field in %s (%s) [%s]", stats.Dims.W, stats.Dims.H, time.Since(start).Round(time.Microsecond), stats, strings.Join(reasons, ", "))
	w.Events().Push(ecs.Event{Type: ecs.EventFieldRebuilt, Data: stats})
}

func (s *NavigationSystem) rebuild(w *ecs.World, bounds component.LevelBounds) (*navigation.Field, error) {
	cfg := s.nav.Config()
	dims, err := navigation.DimsFor(bounds.Width, bounds.Height, cfg.Cell)
	if err != nil {
		return nil, err
	}

	goals := make([]cp.Vector, 0, 4)
	ecs.ForEach2(w, component.NavGoalTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.NavGoalTag, t *component.Transform) {
		goals = append(goals, t.Position())
	})

	var sources []navigation.GridPos
	if len(goals) == 0 {
		sources = []navigation.GridPos{navigation.CenterCell(dims)}
	} else {
		sources, err = s.nav.CellsFromWorld(bounds.Width, bounds.Height, goals)
		if err != nil {
			return nil, fmt.Errorf("goals: %w", err)
		}
	}

	if err := s.nav.Rebuild(navigation.Request{
		WorldWidth:  bounds.Width,
		WorldHeight: bounds.Height,
		Sources:     sources,
		Obstacles:   gatherObstacles(w),
	}); err != nil {
		return nil, err
	}
	return s.nav.Field(), nil
}

// gatherObstacles places every obstacle collider in the world. The navigator
// keeps only the ones on its obstacle layer.
func gatherObstacles(w *ecs.World) []collision.Placed {
	out := make([]collision.Placed, 0, 16)
	ecs.ForEach3(w, component.ObstacleTagComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ObstacleTag, col *component.Collider, t *component.Transform) {
		if col.Shape == nil || ecs.Has(w, e, component.TriggerTagComponent.Kind()) {
			return
		}
		out = append(out, collision.Placed{
			Shape:     col.Shape,
			Transform: collision.Transform{Position: t.Position(), Rotation: t.Rotation},
			Layer:     col.Layer,
		})
	})
	return out
}

func levelBounds(w *ecs.World) (component.LevelBounds, bool) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return component.LevelBounds{}, false
	}
	return *bounds, true
}
