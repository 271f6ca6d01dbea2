package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/navigation"
	"golang.org/x/image/font/basicfont"
)

// navSetting names one switch on the navigation panel.
type navSetting int

const (
	settingPropagation navSetting = iota
	settingNeighbors
)

// toggleNavConfig flips one setting between its two values.
func toggleNavConfig(cfg navigation.Config, which navSetting) navigation.Config {
	switch which {
	case settingPropagation:
		if cfg.Propagation == navigation.PropagationWavefront {
			cfg.Propagation = navigation.PropagationDijkstra
		} else {
			cfg.Propagation = navigation.PropagationWavefront
		}
	case settingNeighbors:
		if cfg.Neighbors == navigation.NeighborsLegacy {
			cfg.Neighbors = navigation.NeighborsMoore
		} else {
			cfg.Neighbors = navigation.NeighborsLegacy
		}
	}
	return cfg
}

func (g *Game) toggleNav(which navSetting) {
	cfg := toggleNavConfig(g.nav.Navigator().Config(), which)
	if err := g.nav.Reconfigure(cfg); err != nil {
		log.Printf("game: navigation panel: %v", err)
		return
	}
	log.Printf("game: navigation switched to %s/%s", cfg.Propagation, cfg.Neighbors)
	g.panel = NewNavPanel(g)
}

func (g *Game) requestRebuild(reason string) {
	e := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, e, component.NavRebuildRequestComponent.Kind(), &component.NavRebuildRequest{Reason: reason}); err != nil {
		log.Printf("game: rebuild request: %v", err)
	}
}

// NewNavPanel builds the navigation panel in the top right corner. Labels are
// baked in, so the panel is rebuilt whenever a setting changes.
func NewNavPanel(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	cfg := g.nav.Navigator().Config()

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("navigation", &face, white),
	))
	panel.AddChild(button(fmt.Sprintf("propagation: %s", cfg.Propagation), func() { g.toggleNav(settingPropagation) }))
	panel.AddChild(button(fmt.Sprintf("neighbors: %s", cfg.Neighbors), func() { g.toggleNav(settingNeighbors) }))
	panel.AddChild(button("rebuild", func() { g.requestRebuild("panel") }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
