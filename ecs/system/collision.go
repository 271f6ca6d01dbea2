package system

import (
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// CollisionSystem resolves penetration between rigid bodies whose layers
// interact. A body touching a kinematic one is pushed out along the contact
// normal; two dynamic or two kinematic bodies are left alone. Triggers never
// take part.
type CollisionSystem struct {
	layers *collision.LayerMatrix
}

func NewCollisionSystem(layers *collision.LayerMatrix) *CollisionSystem {
	if layers == nil {
		layers = collision.DefaultLayerMatrix()
	}
	return &CollisionSystem{layers: layers}
}

func (s *CollisionSystem) SetLayers(layers *collision.LayerMatrix) {
	if s == nil || layers == nil {
		return
	}
	s.layers = layers
}

type collisionBody struct {
	col *component.Collider
	rb  *component.RigidBody
	tr  *component.Transform
}

func (b collisionBody) placed() collision.Transform {
	return collision.Transform{Position: b.tr.Position(), Rotation: b.tr.Rotation}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	bodies := make([]collisionBody, 0, 32)
	ecs.ForEach3(w, component.ColliderComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, rb *component.RigidBody, tr *component.Transform) {
		if col.Shape == nil || ecs.Has(w, e, component.TriggerTagComponent.Kind()) {
			return
		}
		bodies = append(bodies, collisionBody{col: col, rb: rb, tr: tr})
	})

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.rb.Kinematic == b.rb.Kinematic {
				continue
			}
			if !s.layers.Interacts(a.col.Layer, b.col.Layer) {
				continue
			}

			contact, ok := collision.Contact(a.col.Shape, a.placed(), b.col.Shape, b.placed())
			if !ok || contact.Depth <= 0 {
				continue
			}

			push := contact.Normal.Mult(contact.Depth)
			if b.rb.Kinematic {
				a.tr.SetPosition(a.tr.Position().Sub(push))
			} else {
				b.tr.SetPosition(b.tr.Position().Add(push))
			}
		}
	}
}
