// Command heatdump builds the navigation field for a level without opening a
// window and prints it as text: the cost of every cell, the flow arrows, or
// both.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/milk9111/horde/common"
	"github.com/milk9111/horde/levels"
	"github.com/milk9111/horde/navigation"
	"github.com/milk9111/horde/prefabs"
)

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .yaml optional)")
	mode := flag.String("mode", "", "cost propagation: wavefront or dijkstra (default from prefabs/navigation.yaml)")
	neighbors := flag.String("neighbors", "", "flow neighbor rule: legacy or moore (default from prefabs/navigation.yaml)")
	cell := flag.Float64("cell", 0, "square cell size in world units (default from prefabs/navigation.yaml)")
	show := flag.String("show", "both", "what to print: cost, flow, both or stats")
	flag.Parse()

	if err := checkShow(*show); err != nil {
		log.Fatalf("heatdump: %v", err)
	}

	cfg, err := prefabs.LoadNavigationConfig()
	if err != nil {
		log.Fatalf("heatdump: %v", err)
	}
	if *mode != "" {
		if cfg.Propagation, err = navigation.ParsePropagation(*mode); err != nil {
			log.Fatalf("heatdump: %v", err)
		}
	}
	if *neighbors != "" {
		if cfg.Neighbors, err = navigation.ParseNeighborRule(*neighbors); err != nil {
			log.Fatalf("heatdump: %v", err)
		}
	}
	if *cell > 0 {
		cfg.Cell = navigation.CellSize{W: *cell, H: *cell}
	}

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatalf("heatdump: %v", err)
	}

	start := time.Now()
	field, err := build(cfg, lvl)
	if err != nil {
		log.Fatalf("heatdump: %v", err)
	}
	log.Printf("heatdump: %s %s/%s built in %s", lvl.Name, cfg.Propagation, cfg.Neighbors, time.Since(start).Round(time.Microsecond))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprintln(out, field.Stats())
	switch *show {
	case "cost":
		writeCosts(out, field)
	case "flow":
		writeFlow(out, field)
	case "both":
		writeCosts(out, field)
		fmt.Fprintln(out)
		writeFlow(out, field)
	}
}

var errUnknownShow = errors.New("unknown -show value")

func checkShow(show string) error {
	switch show {
	case "cost", "flow", "both", "stats":
		return nil
	}
	return fmt.Errorf("%w %q", errUnknownShow, show)
}

func build(cfg navigation.Config, lvl *levels.Level) (*navigation.Field, error) {
	nav, err := navigation.NewNavigator(cfg)
	if err != nil {
		return nil, err
	}
	obstacles, err := lvl.Obstacles()
	if err != nil {
		return nil, err
	}

	var sources []navigation.GridPos
	if goals := lvl.GoalPoints(); len(goals) > 0 {
		if sources, err = nav.CellsFromWorld(lvl.Width, lvl.Height, goals); err != nil {
			return nil, err
		}
	} else {
		dims, err := navigation.DimsFor(lvl.Width, lvl.Height, cfg.Cell)
		if err != nil {
			return nil, err
		}
		sources = []navigation.GridPos{navigation.CenterCell(dims)}
	}

	if err := nav.Rebuild(navigation.Request{
		WorldWidth:  lvl.Width,
		WorldHeight: lvl.Height,
		Sources:     sources,
		Obstacles:   obstacles,
	}); err != nil {
		return nil, err
	}
	return nav.Field(), nil
}

// writeCosts prints one row per grid row. Blocked cells print as ###,
// unreached ones as ... and costs are rounded to whole cells.
func writeCosts(w io.Writer, f *navigation.Field) {
	dims := f.Dims()
	for y := 0; y < dims.H; y++ {
		for x := 0; x < dims.W; x++ {
			c := navigation.GridPos{X: x, Y: y}
			switch cost := f.Cost(c); {
			case f.Blocked(c) && cost < 0:
				fmt.Fprint(w, " ###")
			case cost < 0:
				fmt.Fprint(w, " ...")
			default:
				fmt.Fprintf(w, " %3.0f", cost)
			}
		}
		fmt.Fprintln(w)
	}
}

func writeFlow(w io.Writer, f *navigation.Field) {
	dims := f.Dims()
	sources := make(map[navigation.GridPos]bool)
	for _, s := range f.Sources() {
		sources[s] = true
	}
	for y := 0; y < dims.H; y++ {
		for x := 0; x < dims.W; x++ {
			c := navigation.GridPos{X: x, Y: y}
			switch {
			case sources[c]:
				fmt.Fprint(w, "G")
			case f.Blocked(c):
				fmt.Fprint(w, "#")
			default:
				v := f.Sample(c)
				fmt.Fprint(w, arrow(v.X, v.Y))
			}
		}
		fmt.Fprintln(w)
	}
}

// arrow picks the glyph for a steering vector. Grid y grows downwards.
func arrow(x, y float64) string {
	sx := common.Sign(x, 1e-9)
	sy := common.Sign(y, 1e-9)
	switch {
	case sx == 0 && sy == 0:
		return "."
	case sx == 0 && sy < 0:
		return "^"
	case sx == 0 && sy > 0:
		return "v"
	case sy == 0 && sx < 0:
		return "<"
	case sy == 0 && sx > 0:
		return ">"
	case sx > 0 && sy < 0, sx < 0 && sy > 0:
		return "/"
	default:
		return "\\"
	}
}
