package component

import "github.com/jakecoffman/cp"

// RigidBody moves its entity by Velocity every tick. Kinematic bodies are
// never pushed by collision resolution; everything else is pushed out of
// them.
type RigidBody struct {
	Velocity  cp.Vector
	Kinematic bool
}

var RigidBodyComponent = NewComponent[RigidBody]()
