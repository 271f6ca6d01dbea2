package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/navigation"
	"gopkg.in/yaml.v3"
)

var ErrUnknownShape = errors.New("prefabs: unknown shape kind")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// NavigationSpec is the yaml form of navigation.Config. Zero cell sizes fall
// back to the navigation defaults; empty mode names select the historical
// wavefront propagation and legacy neighbor rule.
type NavigationSpec struct {
	CellWidth     float64 `yaml:"cell_width"`
	CellHeight    float64 `yaml:"cell_height"`
	ObstacleLayer uint32  `yaml:"obstacle_layer"`
	Propagation   string  `yaml:"propagation"`
	Neighbors     string  `yaml:"neighbors"`
}

func (s NavigationSpec) ToConfig() (navigation.Config, error) {
	cfg := navigation.DefaultConfig()
	if s.CellWidth != 0 {
		cfg.Cell.W = s.CellWidth
	}
	if s.CellHeight != 0 {
		cfg.Cell.H = s.CellHeight
	}
	cfg.ObstacleLayer = collision.Layer(s.ObstacleLayer)

	var err error
	if cfg.Propagation, err = navigation.ParsePropagation(s.Propagation); err != nil {
		return navigation.Config{}, fmt.Errorf("prefabs: navigation spec: %w", err)
	}
	if cfg.Neighbors, err = navigation.ParseNeighborRule(s.Neighbors); err != nil {
		return navigation.Config{}, fmt.Errorf("prefabs: navigation spec: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return navigation.Config{}, fmt.Errorf("prefabs: navigation spec: %w", err)
	}
	return cfg, nil
}

func LoadNavigationConfig() (navigation.Config, error) {
	spec, err := LoadSpec[NavigationSpec]("navigation.yaml")
	if err != nil {
		return navigation.Config{}, err
	}
	return spec.ToConfig()
}

// CollisionSpec lists the layer pairs that collide.
type CollisionSpec struct {
	Pairs [][2]uint32 `yaml:"pairs"`
}

func (s CollisionSpec) Matrix() *collision.LayerMatrix {
	m := collision.NewLayerMatrix()
	for _, p := range s.Pairs {
		m.Allow(collision.Layer(p[0]), collision.Layer(p[1]))
	}
	return m
}

func LoadCollisionMatrix() (*collision.LayerMatrix, error) {
	spec, err := LoadSpec[CollisionSpec]("collision.yaml")
	if err != nil {
		return nil, err
	}
	return spec.Matrix(), nil
}

// DebugSpec styles the debug overlay.
type DebugSpec struct {
	Background *YAMLColor `yaml:"background"`
	Wall       *YAMLColor `yaml:"wall"`
	Blocked    *YAMLColor `yaml:"blocked"`
	Arrow      *YAMLColor `yaml:"arrow"`
	Zombie     *YAMLColor `yaml:"zombie"`
	Chasing    *YAMLColor `yaml:"chasing"`
	Player     *YAMLColor `yaml:"player"`
	Goal       *YAMLColor `yaml:"goal"`
	// ArrowStride draws one flow arrow every ArrowStride cells.
	ArrowStride int     `yaml:"arrow_stride"`
	ArrowWidth  float32 `yaml:"arrow_width"`
}

func LoadDebugSpec() (*DebugSpec, error) {
	spec, err := LoadSpec[DebugSpec]("debug.yaml")
	if err != nil {
		return nil, err
	}
	if spec.ArrowStride <= 0 {
		spec.ArrowStride = 1
	}
	if spec.ArrowWidth <= 0 {
		spec.ArrowWidth = 1
	}
	return &spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// ShapeSpec describes a collision shape. Kind is box, circle or polygon.
type ShapeSpec struct {
	Kind   string       `yaml:"kind"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Radius float64      `yaml:"radius"`
	Points [][2]float64 `yaml:"points"`
}

func (s ShapeSpec) ToShape() (collision.Shape, error) {
	var shape collision.Shape
	switch strings.ToLower(s.Kind) {
	case "", "box":
		shape = collision.Box{Width: s.Width, Height: s.Height}
	case "circle":
		shape = collision.Circle{Radius: s.Radius}
	case "polygon":
		verts := make([]cp.Vector, len(s.Points))
		for i, p := range s.Points {
			verts[i] = cp.Vector{X: p[0], Y: p[1]}
		}
		shape = collision.Polygon{Vertices: verts}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Kind)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
