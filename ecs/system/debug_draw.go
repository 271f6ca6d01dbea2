package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/collision"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
	"github.com/milk9111/horde/prefabs"
	"golang.org/x/image/colornames"
)

const (
	debugAgentRadius = 3
	debugGoalRadius  = 5
	debugArrowHead   = 0.35
)

// DrawNavigationDebug paints the blocked cells and the flow arrows of f.
func DrawNavigationDebug(f *navigation.Field, screen *ebiten.Image, style *prefabs.DebugSpec) {
	if f == nil || screen == nil {
		return
	}
	if style == nil {
		style = &prefabs.DebugSpec{ArrowStride: 1, ArrowWidth: 1}
	}

	cell := f.CellSize()
	blocked := style.Blocked.Or(color.NRGBA{R: 0x5a, G: 0x2a, B: 0x2a, A: 0x80})
	for _, c := range f.BlockedCells() {
		vector.FillRect(screen, float32(float64(c.X)*cell.W), float32(float64(c.Y)*cell.H), float32(cell.W), float32(cell.H), blocked, false)
	}

	stride := max(style.ArrowStride, 1)
	arrow := style.Arrow.Or(colornames.Steelblue)
	dims := f.Dims()
	length := 0.45 * math.Min(cell.W, cell.H) * float64(stride)
	for y := 0; y < dims.H; y += stride {
		for x := 0; x < dims.W; x += stride {
			c := navigation.GridPos{X: x, Y: y}
			v := f.Sample(c)
			if v.X == 0 && v.Y == 0 {
				continue
			}
			drawArrow(screen, f.CellCenter(c), v.Mult(length), style.ArrowWidth, arrow)
		}
	}
}

func drawArrow(screen *ebiten.Image, from, d cp.Vector, width float32, clr color.Color) {
	to := from.Add(d)
	vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), width, clr, true)

	back := d.Mult(-debugArrowHead)
	for _, angle := range []float64{math.Pi / 6, -math.Pi / 6} {
		tip := to.Add(back.Rotate(cp.ForAngle(angle)))
		vector.StrokeLine(screen, float32(to.X), float32(to.Y), float32(tip.X), float32(tip.Y), width, clr, true)
	}
}

// DrawWorld paints walls, goals, agents and the player.
func DrawWorld(w *ecs.World, screen *ebiten.Image, style *prefabs.DebugSpec) {
	if w == nil || screen == nil {
		return
	}
	if style == nil {
		style = &prefabs.DebugSpec{}
	}

	wall := style.Wall.Or(colornames.Slategray)
	ecs.ForEach3(w, component.ObstacleTagComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.ObstacleTag, col *component.Collider, t *component.Transform) {
		drawShape(screen, col.Shape, collision.Transform{Position: t.Position(), Rotation: t.Rotation}, wall)
	})

	goal := style.Goal.Or(colornames.Hotpink)
	ecs.ForEach2(w, component.NavGoalTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.NavGoalTag, t *component.Transform) {
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), debugGoalRadius, 1, goal, true)
	})

	zombie := style.Zombie.Or(colornames.Mediumseagreen)
	chasing := style.Chasing.Or(colornames.Gold)
	ecs.ForEach2(w, component.ZombieTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ZombieTag, t *component.Transform) {
		clr := zombie
		if c, ok := ecs.Get(w, e, component.ChaseComponent.Kind()); ok && c.InSight {
			clr = chasing
		}
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			drawShape(screen, col.Shape, collision.Transform{Position: t.Position(), Rotation: t.Rotation}, clr)
			return
		}
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), debugAgentRadius, clr, true)
	})

	player := style.Player.Or(colornames.Royalblue)
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			drawShape(screen, col.Shape, collision.Transform{Position: t.Position(), Rotation: t.Rotation}, player)
			return
		}
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), debugAgentRadius, player, true)
	})
}

func drawShape(screen *ebiten.Image, s collision.Shape, t collision.Transform, clr color.Color) {
	if c, ok := s.(collision.Circle); ok {
		vector.StrokeCircle(screen, float32(t.Position.X), float32(t.Position.Y), float32(c.Radius), 1.5, clr, true)
		return
	}
	pts := collision.Outline(s, t)
	if len(pts) < 2 {
		return
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1.5, clr, true)
	}
}

// DrawHUD prints the field stats and agent counts in the top-left corner.
func DrawHUD(w *ecs.World, f *navigation.Field, screen *ebiten.Image, extra string) {
	if screen == nil {
		return
	}
	text := fmt.Sprintf("FPS: %.1f  zombies: %d", ebiten.ActualFPS(), ecs.Count(w, component.ZombieTagComponent.Kind()))
	if f != nil {
		text += "\nfield: " + f.Stats().String()
	} else {
		text += "\nfield: none"
	}
	lost := 0
	chasing := 0
	ecs.ForEach(w, component.FlowAgentComponent.Kind(), func(_ ecs.Entity, a *component.FlowAgent) {
		if a.Lost {
			lost++
		}
	})
	ecs.ForEach(w, component.ChaseComponent.Kind(), func(_ ecs.Entity, c *component.Chase) {
		if c.InSight {
			chasing++
		}
	})
	text += fmt.Sprintf("\nchasing: %d  lost: %d", chasing, lost)
	if extra != "" {
		text += "\n" + extra
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
