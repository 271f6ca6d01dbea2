package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// SeparationSystem keeps a horde from collapsing onto one point. Zombies
// closer than Radius get a velocity nudge away from each other that grows
// linearly with the overlap.
type SeparationSystem struct {
	Radius   float64
	Strength float64
}

func NewSeparationSystem() *SeparationSystem {
	return &SeparationSystem{
		Radius:   6.0,
		Strength: 0.5,
	}
}

func (s *SeparationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Radius <= 0 {
		return
	}

	type member struct {
		rb *component.RigidBody
		tr *component.Transform
	}

	list := make([]member, 0, 32)
	ecs.ForEach3(w, component.ZombieTagComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.ZombieTag, rb *component.RigidBody, tr *component.Transform) {
		if rb.Kinematic {
			return
		}
		list = append(list, member{rb: rb, tr: tr})
	})

	n := len(list)
	if n < 2 {
		return
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			mi, mj := list[i], list[j]

			// j -> i
			d := mi.tr.Position().Sub(mj.tr.Position())
			dist := d.Length()
			if dist >= s.Radius {
				continue
			}
			if dist == 0 {
				// stacked exactly; split them along a fixed axis per pair
				angle := float64(i*n+j) * 2.399963
				d = cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
				dist = 1
			}

			mag := s.Strength * (s.Radius - dist) / s.Radius
			nudge := d.Mult(mag * 0.5 / dist)

			mi.rb.Velocity = mi.rb.Velocity.Add(nudge)
			mj.rb.Velocity = mj.rb.Velocity.Sub(nudge)
		}
	}
}
