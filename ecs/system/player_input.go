package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

const stickDeadzone = 0.2

// PlayerInputSystem drives the player's velocity from WASD, the arrow keys
// or the first gamepad's left stick.
type PlayerInputSystem struct {
	Speed float64
	// Axis reads the movement direction; tests replace it.
	Axis func() cp.Vector
}

func NewPlayerInputSystem() *PlayerInputSystem {
	return &PlayerInputSystem{Speed: 3.0, Axis: readMoveAxis}
}

func (s *PlayerInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Axis == nil {
		return
	}

	dir := s.Axis()
	if l := dir.Length(); l > 1 {
		dir = dir.Mult(1 / l)
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.RigidBodyComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, rb *component.RigidBody) {
		rb.Velocity = dir.Mult(s.Speed)
	})
}

func readMoveAxis() cp.Vector {
	var v cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Y += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone || math.Abs(y) > stickDeadzone {
			v = cp.Vector{X: x, Y: y}
		}
	}
	return v
}
