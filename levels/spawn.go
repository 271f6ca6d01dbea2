package levels

import (
	"fmt"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/ecs/entity"
)

const goalPrefab = "goal.yaml"

// Spawn populates w with the level: a LevelBounds entity, one kinematic
// obstacle per wall, a goal per declared goal and the listed prefabs. It
// finishes by queueing a navigation rebuild.
func Spawn(w *ecs.World, lvl *Level) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("levels: spawn: nil world or level")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  lvl.Width,
		Height: lvl.Height,
	}); err != nil {
		return fmt.Errorf("levels: spawn bounds: %w", err)
	}

	for i, wall := range lvl.Walls {
		if err := spawnWall(w, wall); err != nil {
			return fmt.Errorf("levels: spawn wall %d: %w", i, err)
		}
	}

	for i, g := range lvl.Goals {
		e, err := entity.BuildEntity(w, goalPrefab)
		if err != nil {
			return fmt.Errorf("levels: spawn goal %d: %w", i, err)
		}
		if err := entity.SetEntityTransform(w, e, g.X, g.Y, 0); err != nil {
			return fmt.Errorf("levels: spawn goal %d: %w", i, err)
		}
	}

	for i, spec := range lvl.Entities {
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			e, err := entity.BuildEntity(w, spec.Prefab)
			if err != nil {
				return fmt.Errorf("levels: spawn entity %d: %w", i, err)
			}
			y := spec.Y + float64(n)*spec.Spacing
			if err := entity.SetEntityTransform(w, e, spec.X, y, 0); err != nil {
				return fmt.Errorf("levels: spawn entity %d: %w", i, err)
			}
		}
	}

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.NavRebuildRequestComponent.Kind(), &component.NavRebuildRequest{
		Reason: "level " + lvl.Name,
	}); err != nil {
		return fmt.Errorf("levels: queue rebuild: %w", err)
	}
	return nil
}

func spawnWall(w *ecs.World, wall Wall) error {
	placed, err := wall.Placed()
	if err != nil {
		return err
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        placed.Transform.Position.X,
		Y:        placed.Transform.Position.Y,
		Rotation: placed.Transform.Rotation,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kinematic: true}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape: placed.Shape,
		Layer: placed.Layer,
	})
}

// Clear destroys every entity in w, ready for the next Spawn.
func Clear(w *ecs.World) {
	for _, e := range ecs.Entities(w) {
		ecs.DestroyEntity(w, e)
	}
}
