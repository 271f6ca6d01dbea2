package system

import (
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// MovementSystem integrates velocity into position, one step per tick.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, rb *component.RigidBody, t *component.Transform) {
		t.X += rb.Velocity.X
		t.Y += rb.Velocity.Y
	})
}
