package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a named bag of component specs keyed by the
// component's registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component entry into its typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type RigidBodyComponentSpec struct {
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
	Kinematic bool    `yaml:"kinematic"`
}

type ColliderComponentSpec struct {
	Shape ShapeSpec `yaml:"shape"`
	Layer uint32    `yaml:"layer"`
}

type FlowAgentComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type ChaseComponentSpec struct {
	Speed      float64 `yaml:"speed"`
	SightRange float64 `yaml:"sight_range"`
}

type SteeringScriptComponentSpec struct {
	Path   string `yaml:"path"`
	Source string `yaml:"source"`
}
