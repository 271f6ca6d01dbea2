package component

import "github.com/milk9111/horde/collision"

// Collider gives an entity a shape on a collision layer. The shape is placed
// at the entity's Transform.
type Collider struct {
	Shape collision.Shape
	Layer collision.Layer
}

var ColliderComponent = NewComponent[Collider]()
