// Package entity assembles entities from prefab specs.
package entity

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/prefabs"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"zombie_tag":      addZombieTag,
	"obstacle_tag":    addObstacleTag,
	"trigger_tag":     addTriggerTag,
	"nav_goal_tag":    addNavGoalTag,
	"transform":       addTransform,
	"rigid_body":      addRigidBody,
	"collider":        addCollider,
	"flow_agent":      addFlowAgent,
	"chase":           addChase,
	"steering_script": addSteeringScript,
}

var componentBuildOrder = []string{
	"player_tag",
	"zombie_tag",
	"obstacle_tag",
	"trigger_tag",
	"nav_goal_tag",
	"transform",
	"rigid_body",
	"collider",
	"flow_agent",
	"chase",
	"steering_script",
}

// BuildEntity creates an entity from the prefab at prefabPath. On error the
// half-built entity is destroyed.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildFromSpec(w, prefabPath, spec)
}

func BuildFromSpec(w *ecs.World, name string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", name)
	}

	names := make([]string, 0, len(spec.Components))
	for _, n := range componentBuildOrder {
		if _, ok := spec.Components[n]; ok {
			names = append(names, n)
		}
	}
	var unknown []string
	for n := range spec.Components {
		if _, ok := componentRegistry[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", name, unknown[0])
	}

	e := ecs.CreateEntity(w)
	for _, n := range names {
		if err := componentRegistry[n](w, e, spec.Components[n]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", name, n, err)
		}
	}
	return e, nil
}

// SetEntityTransform moves e, adding a Transform if it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addZombieTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.ZombieTagComponent.Kind(), &component.ZombieTag{})
}

func addObstacleTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{})
}

func addTriggerTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.TriggerTagComponent.Kind(), &component.TriggerTag{})
}

func addNavGoalTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.NavGoalTagComponent.Kind(), &component.NavGoalTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Velocity:  cp.Vector{X: spec.VelocityX, Y: spec.VelocityY},
		Kinematic: spec.Kinematic,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return err
	}
	shape, err := spec.Shape.ToShape()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape: shape,
		Layer: collision.Layer(spec.Layer),
	})
}

func addFlowAgent(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FlowAgentComponentSpec](raw)
	if err != nil {
		return err
	}
	speed := spec.Speed
	if speed <= 0 {
		speed = 1
	}
	return ecs.Add(w, e, component.FlowAgentComponent.Kind(), &component.FlowAgent{Speed: speed})
}

func addChase(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ChaseComponentSpec](raw)
	if err != nil {
		return err
	}
	speed := spec.Speed
	if speed <= 0 {
		speed = 1
	}
	return ecs.Add(w, e, component.ChaseComponent.Kind(), &component.Chase{
		Speed:      speed,
		SightRange: spec.SightRange,
	})
}

func addSteeringScript(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SteeringScriptComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Path == "" && spec.Source == "" {
		return fmt.Errorf("steering script needs a path or source")
	}
	return ecs.Add(w, e, component.SteeringScriptComponent.Kind(), &component.SteeringScript{
		Path:   spec.Path,
		Source: spec.Source,
	})
}
