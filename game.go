package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"

	"github.com/milk9111/raycaster/assets"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/ecs/entity"
	"github.com/milk9111/raycaster/ecs/render"
	"github.com/milk9111/raycaster/ecs/system"
	"github.com/milk9111/raycaster/levels"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

// Game owns the level lifecycle and bridges the simulation to ebiten.
type Game struct {
	debug bool
	seed  uint64

	width  int
	height int

	spec   *prefabs.GameSpec
	tables *prefabs.Tables

	levelName string
	level     *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	assembler *system.FrameAssembler

	transition *system.TransitionSystem
	registry   *render.Registry
	sink       *render.ScreenSink
	audio      *render.AudioSink

	watcher   *prefabs.Watcher
	clipboard bool

	paused  bool
	pauseUI *ebitenui.UI
	showMap bool
	quit    bool
}

func NewGame(levelName string, debug bool, seed uint64) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	tables, err := prefabs.LoadTables()
	if err != nil {
		return nil, err
	}
	if levelName == "" {
		levelName = spec.Levels[0]
	}

	g := &Game{
		debug:      debug,
		seed:       seed,
		width:      spec.Screen.Width,
		height:     spec.Screen.Height,
		spec:       spec,
		tables:     tables,
		transition: system.NewTransitionSystem(),
		registry:   render.NewRegistry(),
		showMap:    debug,
	}
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height = 640, 400
	}
	g.sink = render.NewScreenSink(g.registry)
	g.audio = render.NewAudioSink(audio.NewContext(assets.SampleRate), spec.Sounds)
	g.registry.Preload(tables, spec.Texture.Width, spec.Texture.Height)
	g.pauseUI = NewPauseUI(g)

	if debug {
		g.startWatcher()
		if err := clipboard.Init(); err != nil {
			logger.Log.WithError(err).Warn("clipboard unavailable")
		} else {
			g.clipboard = true
		}
	}

	if err := g.load(levelName); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// load builds levelName into a fresh world and system set.
func (g *Game) load(name string) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}
	seed := g.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	w, err := entity.BuildLevel(lvl, g.tables, g.spec.Player, seed)
	if err != nil {
		return err
	}

	texW, texH := g.spec.Texture.Width, g.spec.Texture.Height
	caster := system.NewCaster(w, texW)
	paths := system.NewPathfinder(w)
	doors := system.NewDoorSystem(system.DoorConfig{Speed: g.spec.Door.Speed, OpenTicks: g.spec.Door.OpenTicks})
	g.scheduler = ecs.NewScheduler(
		system.NewPlayerSystem(system.PlayerConfig{
			Speed:     g.spec.Player.Speed,
			TurnSpeed: g.spec.Player.TurnSpeed,
			MaxAmmo:   g.spec.Player.MaxAmmo,
			Reach:     g.spec.Player.Reach,
		}, doors),
		system.NewWeaponSystem(caster, paths),
		doors,
		system.NewAISystem(caster, paths, doors),
	)
	g.assembler = system.NewFrameAssembler(system.ViewConfig{
		Width:      g.width,
		Height:     g.height,
		FOV:        g.spec.FOVRadians(),
		Projection: g.spec.Projection,
		TexW:       texW,
		TexH:       texH,
	}, caster)

	if sky := lvl.Background.Sky; sky > 0 {
		key := skyKey(sky)
		if g.registry.Get(key) == nil {
			if img, err := assets.LoadImage(key + ".png"); err == nil {
				g.registry.RegisterImage(key, img)
			} else {
				logger.Log.WithError(err).WithField("sky", sky).Warn("sky texture missing")
			}
		}
	}

	g.levelName = name
	g.level = lvl
	g.world = w
	if !g.transition.Running() {
		g.transition.Start(component.TransitionFade, g.spec.Transition, nil)
	}

	logger.Log.WithFields(logrus.Fields{
		"level": name,
		"doors": len(paths.Graph()),
		"seed":  seed,
	}).Info("level loaded")
	return nil
}

func (g *Game) restart() {
	if err := g.load(g.levelName); err != nil {
		logger.Log.WithError(err).WithField("level", g.levelName).Error("restart level")
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.drainWatcher()

	if g.debug {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			g.showMap = !g.showMap
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
			g.copyPose()
		}
	}

	cur := g.transition.Current()
	g.transition.Update(g.world)
	if cur.Running && cur.Kind != component.TransitionFade {
		// Gameplay freezes under wipes and the death sequence.
		g.world.Events().Drain()
		return nil
	}

	g.world.Input = readInput()
	g.scheduler.Update(g.world)
	g.handleEvents()
	return nil
}

func (g *Game) handleEvents() {
	p := g.world.Player
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventSound:
			if s, ok := ev.Data.(component.SoundEvent); ok {
				g.audio.Play(s, p.X, p.Y)
			}
		case ecs.EventLevelComplete:
			g.completeLevel()
		case ecs.EventPlayerDied:
			kx, ky := p.X+1, p.Y
			if id, ok := ev.Data.(int); ok && id >= 0 && id < len(g.world.Actors) {
				kx, ky = g.world.Actors[id].X, g.world.Actors[id].Y
			}
			g.transition.StartDeath(p, kx, ky, g.spec.Transition*2, g.restart)
		}
	}
}

func (g *Game) completeLevel() {
	if g.transition.Running() {
		return
	}
	st := g.world.Stats
	next := g.nextLevel()
	logger.Log.WithFields(logrus.Fields{
		"level":    g.levelName,
		"kills":    fmt.Sprintf("%d/%d", st.Kills, st.TotalEnemies),
		"treasure": fmt.Sprintf("%d/%d", st.Treasure, st.TotalTreasure),
		"seconds":  st.Ticks / max(g.spec.TPS, 1),
		"next":     next,
	}).Info("level complete")

	if next == "" {
		logger.Log.Info("campaign complete")
		next = g.spec.Levels[0]
	}
	g.transition.Start(component.TransitionWipe, g.spec.Transition, func() {
		if err := g.load(next); err != nil {
			logger.Log.WithError(err).WithField("level", next).Error("load next level")
			g.restart()
		}
	})
}

// nextLevel asks the level's trigger script first, then the campaign order.
func (g *Game) nextLevel() string {
	src, err := prefabs.LoadScript(g.levelName)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Log.WithError(err).WithField("level", g.levelName).Warn("read trigger script")
		}
		return g.spec.NextLevel(g.levelName)
	}
	st := g.world.Stats
	next, err := system.RunTriggerScript(src, map[string]int{
		"kills":    st.Kills,
		"enemies":  st.TotalEnemies,
		"treasure": st.Treasure,
		"ticks":    st.Ticks,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("level", g.levelName).Warn("trigger script failed")
	}
	if next != "" {
		return next
	}
	return g.spec.NextLevel(g.levelName)
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, d := range []string{"prefabs", filepath.Join("prefabs", "scripts"), "levels"} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	if entries, err := os.ReadDir("levels"); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join("levels", e.Name()))
			}
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		logger.Log.WithError(err).Warn("hot reload disabled")
		return
	}
	g.watcher = w
}

func (g *Game) drainWatcher() {
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
				logger.Log.WithError(err).Warn("watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	log := logger.Log.WithField("file", path)
	switch prefabs.Classify(path) {
	case prefabs.ChangeTables:
		tables, err := prefabs.LoadTables()
		if err != nil {
			log.WithError(err).Warn("reload tables")
			return
		}
		g.tables = tables
		g.registry.Preload(tables, g.spec.Texture.Width, g.spec.Texture.Height)
		log.Info("tables reloaded; applied on next level start")
	case prefabs.ChangeScript:
		log.Info("trigger script changed")
	case prefabs.ChangeLevel:
		log.Info("level changed, restarting")
		g.restart()
	}
}

// copyPose puts the player pose on the clipboard in player-file form.
func (g *Game) copyPose() {
	p := g.world.Player
	pose := fmt.Sprintf("%.2f %.2f %.4f\n", p.X, p.Y, p.Angle)
	if !g.clipboard {
		logger.Log.WithField("pose", pose).Info("player pose")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(pose))
	logger.Log.Debug("player pose copied")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func skyKey(n int) string {
	return fmt.Sprintf("sky_%d", n)
}
