package system

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
	"github.com/milk9111/horde/prefabs"
)

// Script globals. vx and vy are read back after the run.
var steeringGlobals = []string{"vx", "vy", "speed", "dist", "cost"}

// SteeringScriptSystem runs each agent's tengo steering script on the
// velocity the flow field gave it. Scripts are compiled once per path and
// reused; a script that fails to load is reported once and skipped until
// Invalidate drops it.
type SteeringScriptSystem struct {
	fields   FieldSource
	compiled map[string]*tengo.Compiled
	broken   map[string]error
}

func NewSteeringScriptSystem(fields FieldSource) *SteeringScriptSystem {
	return &SteeringScriptSystem{
		fields:   fields,
		compiled: map[string]*tengo.Compiled{},
		broken:   map[string]error{},
	}
}

// Invalidate forgets the compiled script for path, or every script when path
// is empty.
func (s *SteeringScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	if path == "" {
		s.compiled = map[string]*tengo.Compiled{}
		s.broken = map[string]error{}
		return
	}
	delete(s.compiled, path)
	delete(s.broken, path)
}

func (s *SteeringScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.fields == nil {
		return
	}
	field := s.fields.Field()
	if field == nil {
		return
	}
	goals := sourceCenters(field)

	ecs.ForEach4(w, component.SteeringScriptComponent.Kind(), component.FlowAgentComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.SteeringScript, agent *component.FlowAgent, rb *component.RigidBody, t *component.Transform) {
		if agent.Lost {
			return
		}

		key := scriptKey(sc)
		if key == "" {
			return
		}
		compiled, err := s.script(key, sc)
		if err != nil {
			return
		}

		pos := t.Position()
		cost := -1.0
		if cell, ok := field.WorldToCell(pos); ok {
			cost = field.Cost(cell)
		}

		out, err := runSteering(compiled, rb.Velocity, agent.Speed, nearest(goals, pos), cost)
		if err != nil {
			log.Printf("steer: entity=%s script error: %v", e, err)
			return
		}
		rb.Velocity = out
	})
}

func (s *SteeringScriptSystem) script(key string, sc *component.SteeringScript) (*tengo.Compiled, error) {
	if c, ok := s.compiled[key]; ok {
		return c, nil
	}
	if err, ok := s.broken[key]; ok {
		return nil, err
	}

	c, err := compileSteering(sc)
	if err != nil {
		log.Printf("steer: load %s: %v", key, err)
		s.broken[key] = err
		return nil, err
	}
	s.compiled[key] = c
	return c, nil
}

func scriptKey(sc *component.SteeringScript) string {
	if strings.TrimSpace(sc.Source) != "" {
		return "inline:" + sc.Source
	}
	return strings.TrimSpace(sc.Path)
}

func compileSteering(sc *component.SteeringScript) (*tengo.Compiled, error) {
	src := []byte(sc.Source)
	if strings.TrimSpace(sc.Source) == "" {
		var err error
		src, err = prefabs.LoadScript(sc.Path)
		if err != nil {
			return nil, err
		}
	}

	script := tengo.NewScript(src)
	for _, name := range steeringGlobals {
		if err := script.Add(name, 0.0); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

func runSteering(c *tengo.Compiled, v cp.Vector, speed, dist, cost float64) (cp.Vector, error) {
	inputs := map[string]float64{"vx": v.X, "vy": v.Y, "speed": speed, "dist": dist, "cost": cost}
	for _, name := range steeringGlobals {
		if err := c.Set(name, inputs[name]); err != nil {
			return v, err
		}
	}
	if err := c.Run(); err != nil {
		return v, err
	}

	out := cp.Vector{X: c.Get("vx").Float(), Y: c.Get("vy").Float()}
	if math.IsNaN(out.X) || math.IsNaN(out.Y) || math.IsInf(out.X, 0) || math.IsInf(out.Y, 0) {
		return v, fmt.Errorf("non-finite velocity (%v, %v)", out.X, out.Y)
	}
	return out, nil
}

func sourceCenters(f *navigation.Field) []cp.Vector {
	src := f.Sources()
	out := make([]cp.Vector, 0, len(src))
	for _, c := range src {
		out = append(out, f.CellCenter(c))
	}
	return out
}

// nearest returns the distance from p to the closest point, or -1 if there
// are none.
func nearest(points []cp.Vector, p cp.Vector) float64 {
	best := -1.0
	for _, q := range points {
		d := q.Distance(p)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
