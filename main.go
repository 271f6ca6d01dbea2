package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "draw blocked cells and flow arrows")
	watch := flag.Bool("watch", false, "reload prefabs/, scripts and levels/ when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	width, height := game.Size()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("horde")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
