package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/ecs/entity"
	"github.com/milk9111/raycaster/ecs/system"
	"github.com/milk9111/raycaster/levels"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

func main() {
	only := flag.String("level", "", "check a single level instead of every embedded one")
	verbose := flag.Bool("v", false, "print the door graph edges")
	debug := flag.Bool("debug", false, "verbose logs")
	flag.Parse()

	logger.Init(*debug)

	tables, err := prefabs.LoadTables()
	if err != nil {
		logger.Log.WithError(err).Fatal("load tables")
	}
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		logger.Log.WithError(err).Fatal("load game spec")
	}

	names, err := levels.Names()
	if err != nil {
		logger.Log.WithError(err).Fatal("list levels")
	}
	if *only != "" {
		names = []string{*only}
	}

	failed := 0
	for _, name := range names {
		if err := check(os.Stdout, name, tables, game, *verbose); err != nil {
			fmt.Fprintf(os.Stdout, "%s: FAIL: %v\n", name, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// report is what check learns about one level.
type report struct {
	width, height int
	rooms         int
	largestRoom   int
	doors         int
	edges         int
	actors        int
	unreachable   []int
	treasure      int
}

func check(out io.Writer, name string, tables *prefabs.Tables, game *prefabs.GameSpec, verbose bool) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}
	w, err := entity.BuildLevel(lvl, tables, game.Player, 1)
	if err != nil {
		return err
	}
	paths := system.NewPathfinder(w)
	graph := paths.Graph()

	r := report{
		width:    w.Static.Width,
		height:   w.Static.Height,
		doors:    len(graph),
		actors:   len(w.Actors),
		treasure: w.Stats.TotalTreasure,
	}
	for _, next := range graph {
		r.edges += len(next)
	}

	seen := map[component.Cell]bool{}
	w.Static.Each(func(c component.Cell, v int) {
		if seen[c] || v > 0 {
			return
		}
		room, _ := paths.Flood(c)
		for _, rc := range room {
			seen[rc] = true
		}
		r.rooms++
		r.largestRoom = max(r.largestRoom, len(room))
	})

	spawn := w.Player.Cell()
	for _, a := range w.Actors {
		if a.Home == spawn {
			continue
		}
		if len(paths.Pathfind(spawn, a.Home)) == 0 {
			r.unreachable = append(r.unreachable, a.ID)
		}
	}

	fmt.Fprintf(out, "%s: %dx%d rooms=%d largest=%d doors=%d edges=%d actors=%d treasure=%d\n",
		name, r.width, r.height, r.rooms, r.largestRoom, r.doors, r.edges, r.actors, r.treasure)
	if len(r.unreachable) > 0 {
		fmt.Fprintf(out, "  warning: actors %v cannot reach the spawn\n", r.unreachable)
	}
	if verbose {
		doors := make([]component.Cell, 0, len(graph))
		for d := range graph {
			doors = append(doors, d)
		}
		sort.Slice(doors, func(i, j int) bool {
			if doors[i].Y != doors[j].Y {
				return doors[i].Y < doors[j].Y
			}
			return doors[i].X < doors[j].X
		})
		for _, d := range doors {
			fmt.Fprintf(out, "  door (%d,%d) -> %v\n", d.X, d.Y, graph[d])
		}
	}
	return nil
}
