package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/raycaster/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode: automap, hot reload, verbose logs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (defaults to the first campaign level)")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one per level")
	flag.Parse()

	logger.Init(*debug)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*levelName, *debug, *seed)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("raycaster")
	ebiten.SetTPS(game.spec.TPS)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Log.WithError(err).Fatal("run game")
	}
}
