// Package levels loads yaml level files and spawns their contents into an
// ECS world.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Goals are world positions agents navigate to. With none, the centre
	// cell of the grid is used.
	Goals    []Point  `yaml:"goals,omitempty"`
	Walls    []Wall   `yaml:"walls,omitempty"`
	Entities []Entity `yaml:"entities,omitempty"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Wall is static, kinematic level geometry.
type Wall struct {
	X        float64           `yaml:"x"`
	Y        float64           `yaml:"y"`
	Rotation float64           `yaml:"rotation"`
	Layer    uint32            `yaml:"layer"`
	Shape    prefabs.ShapeSpec `yaml:"shape"`
}

// Entity places a prefab. Count > 1 spawns a column of copies Spacing apart.
type Entity struct {
	Prefab  string  `yaml:"prefab"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Count   int     `yaml:"count,omitempty"`
	Spacing float64 `yaml:"spacing,omitempty"`
}

// Load reads a level, preferring levels/<name> on disk over the embedded
// copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if !(l.Width > 0) || !(l.Height > 0) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, g := range l.Goals {
		if g.X < 0 || g.Y < 0 || g.X >= l.Width || g.Y >= l.Height {
			return fmt.Errorf("%w: goal %d at (%g, %g) outside level", ErrInvalidLevel, i, g.X, g.Y)
		}
	}
	if _, err := l.Obstacles(); err != nil {
		return err
	}
	for i, e := range l.Entities {
		if e.Prefab == "" {
			return fmt.Errorf("%w: entity %d has no prefab", ErrInvalidLevel, i)
		}
	}
	return nil
}

// Placed resolves the wall's shape at its position.
func (w Wall) Placed() (collision.Placed, error) {
	shape, err := w.Shape.ToShape()
	if err != nil {
		return collision.Placed{}, err
	}
	return collision.Placed{
		Shape:     shape,
		Transform: collision.Transform{Position: cp.Vector{X: w.X, Y: w.Y}, Rotation: w.Rotation},
		Layer:     collision.Layer(w.Layer),
	}, nil
}

// Obstacles places every wall of the level.
func (l *Level) Obstacles() ([]collision.Placed, error) {
	out := make([]collision.Placed, 0, len(l.Walls))
	for i, w := range l.Walls {
		p, err := w.Placed()
		if err != nil {
			return nil, fmt.Errorf("%w: wall %d: %v", ErrInvalidLevel, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (l *Level) GoalPoints() []cp.Vector {
	out := make([]cp.Vector, len(l.Goals))
	for i, g := range l.Goals {
		out[i] = cp.Vector{X: g.X, Y: g.Y}
	}
	return out
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.Glob(LevelsFS, "*.yaml")
	if err != nil {
		return nil
	}
	sort.Strings(entries)
	return entries
}

func cleanLevelPath(name string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
