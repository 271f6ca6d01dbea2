package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
	"github.com/stretchr/testify/require"
)

func newLevel(t *testing.T, width, height float64) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height}))
	return w
}

func addWall(t *testing.T, w *ecs.World, x, y float64, shape collision.Shape, layer collision.Layer) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kinematic: true}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Shape: shape, Layer: layer}))
	return e
}

func addGoal(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.NavGoalTagComponent.Kind(), &component.NavGoalTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	return e
}

func addAgent(t *testing.T, w *ecs.World, x, y, speed float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ZombieTagComponent.Kind(), &component.ZombieTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{}))
	require.NoError(t, ecs.Add(w, e, component.FlowAgentComponent.Kind(), &component.FlowAgent{Speed: speed}))
	return e
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kinematic: true}))
	return e
}

func requestRebuild(t *testing.T, w *ecs.World, reason string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.NavRebuildRequestComponent.Kind(), &component.NavRebuildRequest{Reason: reason}))
	return e
}

func newNavSystem(t *testing.T) *NavigationSystem {
	t.Helper()
	s, err := NewNavigationSystem(navigation.DefaultConfig())
	require.NoError(t, err)
	return s
}

func eventTypes(w *ecs.World) []string {
	var out []string
	for _, evt := range w.Events().Drain() {
		out = append(out, evt.Type)
	}
	return out
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func bodyOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.RigidBody {
	t.Helper()
	rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	return rb
}

// fixedField serves a prebuilt field.
type fixedField struct{ f *navigation.Field }

func (f fixedField) Field() *navigation.Field { return f.f }

func buildField(t *testing.T, width, height float64, sources ...navigation.GridPos) *navigation.Field {
	t.Helper()
	nav, err := navigation.NewNavigator(navigation.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, nav.Rebuild(navigation.Request{WorldWidth: width, WorldHeight: height, Sources: sources}))
	return nav.Field()
}

func vec(x, y float64) cp.Vector { return cp.Vector{X: x, Y: y} }
