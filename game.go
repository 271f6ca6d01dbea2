package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/ecs/system"
	"github.com/milk9111/horde/levels"
	"github.com/milk9111/horde/prefabs"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int
	debug  bool

	levelName string
	level     *levels.Level

	world     *ecs.World
	scheduler *ecs.Scheduler
	nav       *system.NavigationSystem
	steer     *system.SteeringScriptSystem
	collide   *system.CollisionSystem

	style   *prefabs.DebugSpec
	watcher *prefabs.Watcher
	// shown with the debug overlay
	panel *ebitenui.UI

	rebuilds int
	failures int
	lastErr  error
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	cfg, err := prefabs.LoadNavigationConfig()
	if err != nil {
		return nil, err
	}
	layers, err := prefabs.LoadCollisionMatrix()
	if err != nil {
		return nil, err
	}
	style, err := prefabs.LoadDebugSpec()
	if err != nil {
		log.Printf("game: debug style: %v", err)
	}

	nav, err := system.NewNavigationSystem(cfg)
	if err != nil {
		return nil, err
	}
	steer := system.NewSteeringScriptSystem(nav)
	collide := system.NewCollisionSystem(layers)

	g := &Game{
		debug:     debug,
		levelName: levelName,
		world:     ecs.NewWorld(),
		nav:       nav,
		steer:     steer,
		collide:   collide,
		style:     style,
	}
	g.scheduler = ecs.NewScheduler(
		system.NewPlayerInputSystem(),
		nav,
		system.NewFlowSteeringSystem(nav),
		steer,
		system.NewChaseSystem(),
		system.NewSeparationSystem(),
		system.NewMovementSystem(),
		collide,
	)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.panel = NewNavPanel(g)

	if watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"), "levels"}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.levelName)
	if err != nil {
		return err
	}
	levels.Clear(g.world)
	if err := levels.Spawn(g.world, lvl); err != nil {
		return err
	}
	g.level = lvl
	return nil
}

func (g *Game) Size() (int, int) {
	if g.level == nil {
		return 1280, 720
	}
	return int(g.level.Width), int(g.level.Height)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.loadLevel(); err != nil {
			log.Printf("game: reload level %s: %v", g.levelName, err)
		}
	}

	if g.debug && g.panel != nil {
		g.panel.Update()
	}

	g.pollWatcher()
	g.scheduler.Update(g.world)
	g.drainEvents()

	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	base := filepath.Base(path)
	log.Printf("game: %s changed", path)

	switch {
	case prefabs.IsScriptFile(path):
		g.steer.Invalidate("")
	case base == "navigation.yaml":
		cfg, err := prefabs.LoadNavigationConfig()
		if err != nil {
			log.Printf("game: reload navigation: %v", err)
			return
		}
		if err := g.nav.Reconfigure(cfg); err != nil {
			log.Printf("game: reload navigation: %v", err)
			return
		}
		g.panel = NewNavPanel(g)
	case base == "collision.yaml":
		layers, err := prefabs.LoadCollisionMatrix()
		if err != nil {
			log.Printf("game: reload collision: %v", err)
			return
		}
		g.collide.SetLayers(layers)
	case base == "debug.yaml":
		style, err := prefabs.LoadDebugSpec()
		if err != nil {
			log.Printf("game: reload debug style: %v", err)
			return
		}
		g.style = style
	default:
		// levels and entity prefabs: respawn everything
		if err := g.loadLevel(); err != nil {
			log.Printf("game: reload level %s: %v", g.levelName, err)
		}
	}
}

func (g *Game) drainEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventFieldRebuilt:
			g.rebuilds++
			g.lastErr = nil
		case ecs.EventRebuildFailed:
			g.failures++
			if err, ok := evt.Data.(error); ok {
				g.lastErr = err
			}
		case ecs.EventAgentOutOfBounds:
			if e, ok := evt.Data.(ecs.Entity); ok {
				g.returnStray(e)
			}
		}
	}
}

// returnStray puts an agent that left the grid back just inside the level.
func (g *Game) returnStray(e ecs.Entity) {
	be, ok := ecs.First(g.world, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(g.world, be, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(g.world, e, component.TransformComponent.Kind())
	if !ok || bounds.Contains(t.Position()) {
		return
	}
	t.SetPosition(bounds.Clamp(t.Position(), 1))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.style != nil {
		screen.Fill(g.style.Background.Or(colornames.Black))
	}

	field := g.nav.Field()
	if g.debug {
		system.DrawNavigationDebug(field, screen, g.style)
	}
	system.DrawWorld(g.world, screen, g.style)

	extra := fmt.Sprintf("level: %s  rebuilds: %d  failures: %d", g.levelName, g.rebuilds, g.failures)
	if g.lastErr != nil {
		extra += "\nlast error: " + g.lastErr.Error()
	}
	system.DrawHUD(g.world, field, screen, extra)

	if g.debug && g.panel != nil {
		g.panel.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.Size()
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
