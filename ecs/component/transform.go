package component

import "github.com/jakecoffman/cp"

type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

var TransformComponent = NewComponent[Transform]()
