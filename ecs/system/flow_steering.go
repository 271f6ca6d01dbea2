package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// FlowSteeringSystem sets each flow agent's velocity to the field's steering
// vector under it, scaled by the agent's speed. Agents outside the grid stop
// and are marked lost.
type FlowSteeringSystem struct {
	fields FieldSource
}

func NewFlowSteeringSystem(fields FieldSource) *FlowSteeringSystem {
	return &FlowSteeringSystem{fields: fields}
}

func (s *FlowSteeringSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.fields == nil {
		return
	}

	// one snapshot for the whole tick
	field := s.fields.Field()
	if field == nil {
		return
	}

	ecs.ForEach3(w, component.FlowAgentComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, agent *component.FlowAgent, rb *component.RigidBody, t *component.Transform) {
		cell, ok := field.WorldToCell(t.Position())
		if !ok {
			rb.Velocity = cp.Vector{}
			if !agent.Lost {
				log.Printf("flow: entity=%s position (%.1f, %.1f) outside navigation grid", e, t.X, t.Y)
				w.Events().Push(ecs.Event{Type: ecs.EventAgentOutOfBounds, Data: e})
			}
			agent.Lost = true
			return
		}
		agent.Lost = false
		rb.Velocity = field.Sample(cell).Mult(agent.Speed)
	})
}
