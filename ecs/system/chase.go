package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// ChaseSystem overrides the flow field when a chaser can see the player: a
// ray from the chaser to the player that hits no obstacle collider sets the
// velocity straight at the player.
type ChaseSystem struct{}

func NewChaseSystem() *ChaseSystem {
	return &ChaseSystem{}
}

func (s *ChaseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	target, ok := playerPosition(w)
	if !ok {
		ecs.ForEach(w, component.ChaseComponent.Kind(), func(_ ecs.Entity, c *component.Chase) {
			c.InSight = false
		})
		return
	}

	walls := gatherObstacles(w)

	ecs.ForEach3(w, component.ChaseComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Chase, rb *component.RigidBody, t *component.Transform) {
		from := t.Position()
		delta := target.Sub(from)
		dist := delta.Length()

		if c.SightRange > 0 && dist > c.SightRange {
			c.InSight = false
			return
		}
		if dist == 0 {
			c.InSight = true
			rb.Velocity = cp.Vector{}
			return
		}

		dir := delta.Mult(1 / dist)
		if lineBlocked(walls, collision.Ray{Origin: from, Dir: dir}, dist) {
			c.InSight = false
			return
		}

		c.InSight = true
		rb.Velocity = dir.Mult(c.Speed)
	})
}

func lineBlocked(walls []collision.Placed, ray collision.Ray, dist float64) bool {
	for _, wall := range walls {
		if _, hit := collision.Raycast(wall.Shape, wall.Transform, ray, dist); hit {
			return true
		}
	}
	return false
}

func playerPosition(w *ecs.World) (cp.Vector, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position(), true
}
