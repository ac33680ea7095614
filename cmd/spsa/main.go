package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/assets"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

const (
	viewSize = 512
	scale    = 4
)

// clip is one animation strip of a sheet: the frames played in order.
type clip struct {
	name   string
	frames []image.Point
	loop   bool
}

// clips lists the strips an enemy sheet holds for one orientation.
func clips(l component.SpriteLayout, orientation int) []clip {
	stand := clip{name: "stand", frames: []image.Point{{X: orientation, Y: 0}}, loop: true}
	walk := clip{name: "walk", loop: true}
	for i := 0; i < l.WalkFrames; i++ {
		walk.frames = append(walk.frames, image.Point{X: orientation, Y: 1 + i})
	}
	row := func(name string, r, n int, loop bool) clip {
		c := clip{name: name, loop: loop}
		for i := 0; i < n; i++ {
			c.frames = append(c.frames, image.Point{X: i, Y: r})
		}
		return c
	}
	return []clip{
		stand,
		walk,
		row("shoot", l.ShootRow, l.ShootFrames, true),
		row("pain", l.PainRow, l.PainFrames, true),
		row("death", l.DeathRow, l.DeathFrames, false),
	}
}

type previewer struct {
	names []string
	table component.ArchetypeTable
	sheet *ebiten.Image

	enemy       int
	orientation int
	clip        int
	frame       int
	tick        int
}

func newPreviewer(table component.ArchetypeTable, start string) (*previewer, error) {
	p := &previewer{table: table}
	for name := range table {
		p.names = append(p.names, name)
	}
	if len(p.names) == 0 {
		return nil, fmt.Errorf("spsa: no enemies in %s", prefabs.EnemiesFile)
	}
	sort.Strings(p.names)
	for i, n := range p.names {
		if n == start {
			p.enemy = i
		}
	}
	p.load()
	return p, nil
}

func (p *previewer) arch() *component.Archetype {
	return p.table[p.names[p.enemy]]
}

func (p *previewer) load() {
	a := p.arch()
	p.sheet = ebiten.NewImageFromImage(assets.Sheet(a.Texture, a.Sprite))
	p.frame, p.tick = 0, 0
	logger.Log.WithFields(logrus.Fields{
		"enemy":  a.Name,
		"sheet":  p.sheet.Bounds().Size(),
		"frameW": a.Sprite.FrameW,
		"frameH": a.Sprite.FrameH,
	}).Info("sheet loaded")
}

func (p *previewer) current() clip {
	cs := clips(p.arch().Sprite, p.orientation)
	return cs[p.clip%len(cs)]
}

func (p *previewer) Update() error {
	l := p.arch().Sprite
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		p.enemy = (p.enemy + 1) % len(p.names)
		p.orientation = 0
		p.load()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		p.clip = (p.clip + 1) % 5
		p.frame, p.tick = 0, 0
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		p.clip = (p.clip + 4) % 5
		p.frame, p.tick = 0, 0
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		p.orientation = (p.orientation + 1) % max(l.Orientations, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		p.orientation = (p.orientation + max(l.Orientations, 1) - 1) % max(l.Orientations, 1)
	}

	c := p.current()
	ticks := max(l.FrameTicks, 1)
	if c.name == "walk" {
		ticks = max(l.WalkCadence, 1)
	}
	p.tick++
	if p.tick < ticks || len(c.frames) == 0 {
		return nil
	}
	p.tick = 0
	switch {
	case p.frame+1 < len(c.frames):
		p.frame++
	case c.loop:
		p.frame = 0
	}
	return nil
}

func (p *previewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x38, G: 0x38, B: 0x38, A: 0xff})
	a := p.arch()
	c := p.current()
	if len(c.frames) > 0 {
		fw, fh := a.Sprite.FrameW, a.Sprite.FrameH
		f := c.frames[min(p.frame, len(c.frames)-1)]
		src := image.Rect(f.X*fw, f.Y*fh, (f.X+1)*fw, (f.Y+1)*fh)
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(viewSize-fw*scale)/2, float64(viewSize-fh*scale)/2)
		screen.DrawImage(p.sheet.SubImage(src).(*ebiten.Image), op)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s (%s)  clip: %s  frame %d/%d  orientation %d\nTAB enemy  UP/DOWN clip  LEFT/RIGHT orientation",
		a.Name, a.Kind, c.name, p.frame+1, len(c.frames), p.orientation))
}

func (p *previewer) Layout(int, int) (int, int) {
	return viewSize, viewSize
}

func main() {
	enemy := flag.String("enemy", "guard", "enemy texture to show first")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	logger.Init(*debug)
	table, err := prefabs.LoadArchetypes()
	if err != nil {
		logger.Log.WithError(err).Fatal("load enemies")
	}
	p, err := newPreviewer(table, *enemy)
	if err != nil {
		logger.Log.WithError(err).Fatal("start previewer")
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Sprite sheet preview")
	if err := ebiten.RunGame(p); err != nil {
		logger.Log.WithError(err).Fatal("run")
	}
}
