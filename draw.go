package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs/component"
)

const (
	mapCell    = 6
	mapMargin  = 8
	hudPadding = 4
)

var (
	mapWall   = color.RGBA{R: 160, G: 160, B: 160, A: 220}
	mapDoor   = color.RGBA{R: 200, G: 140, B: 40, A: 220}
	mapObject = color.RGBA{R: 60, G: 160, B: 220, A: 200}
	mapActor  = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	mapChase  = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	mapPlayer = color.RGBA{R: 80, G: 230, B: 80, A: 255}
	mapPath   = color.RGBA{R: 255, G: 255, B: 255, A: 120}
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.world == nil {
		return
	}
	g.drawBackground(screen)
	g.sink.Begin(screen)
	g.assembler.Assemble(g.world, g.sink)
	g.drawWeapon(screen)
	g.drawHUD(screen)
	if g.showMap {
		g.drawAutomap(screen)
	}
	g.drawTransition(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// drawBackground fills the flat ceiling and floor, or pans the sky texture
// across the upper half with the player's heading.
func (g *Game) drawBackground(screen *ebiten.Image) {
	bg := g.level.Background
	w, h := float32(g.width), float32(g.height)
	vector.FillRect(screen, 0, 0, w, h/2, bg.Ceiling, false)
	vector.FillRect(screen, 0, h/2, w, h/2, bg.Floor, false)

	sky := g.registry.Get(skyKey(bg.Sky))
	if bg.Sky <= 0 || sky == nil {
		return
	}
	sw, sh := sky.Bounds().Dx(), sky.Bounds().Dy()
	// One full turn scrolls the sky across four screen widths.
	span := float64(g.width) * 4
	scale := span / float64(sw)
	off := common.NormalizeAngle(g.world.Player.Angle) / (2 * math.Pi) * span
	for x := -off; x < float64(g.width); x += span {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, float64(g.height)/2/float64(sh))
		op.GeoM.Translate(x, 0)
		screen.DrawImage(sky, op)
	}
}

func (g *Game) drawWeapon(screen *ebiten.Image) {
	p := g.world.Player
	if !p.Alive() || p.Weapon < 0 || p.Weapon >= len(g.world.Weapons) {
		return
	}
	img := g.registry.Get(g.world.Weapons[p.Weapon].Texture)
	if img == nil {
		return
	}
	b := img.Bounds()
	scale := float64(g.height) / 2 / float64(b.Dy())
	bob := 0.0
	if p.Moving {
		bob = math.Sin(float64(g.world.Tick)*0.3) * 4
	}
	if p.FireCooldown > 0 {
		bob -= 6
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(g.width)/2-float64(b.Dx())*scale/2, float64(g.height)-float64(b.Dy())*scale+8+bob)
	screen.DrawImage(img, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.world.Player
	st := g.world.Stats
	name := ""
	if p.Weapon >= 0 && p.Weapon < len(g.world.Weapons) {
		name = g.world.Weapons[p.Weapon].Name
	}
	hud := fmt.Sprintf("HP %d  AMMO %d  %s  KILLS %d/%d  TREASURE %d/%d",
		p.HP, p.Ammo, name, st.Kills, st.TotalEnemies, st.Treasure, st.TotalTreasure)
	ebitenutil.DebugPrintAt(screen, hud, hudPadding, g.height-16-hudPadding)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  TPS %.0f  FPS %.0f  (%.2f, %.2f) %.2f",
			g.levelName, ebiten.ActualTPS(), ebiten.ActualFPS(), p.X, p.Y, p.Angle), hudPadding, hudPadding)
	}
}

// drawAutomap shows the live grid, open doors, actors and their planned
// paths in the top right corner.
func (g *Game) drawAutomap(screen *ebiten.Image) {
	w := g.world
	ox := float32(g.width - w.Grid.Width*mapCell - mapMargin)
	oy := float32(mapMargin)
	cell := func(c component.Cell) (float32, float32) {
		return ox + float32(c.X*mapCell), oy + float32(c.Y*mapCell)
	}

	vector.FillRect(screen, ox, oy, float32(w.Grid.Width*mapCell), float32(w.Grid.Height*mapCell), color.RGBA{A: 140}, false)
	w.Static.Each(func(c component.Cell, v int) {
		desc, ok := w.Tiles.Lookup(w.Grid.At(c))
		if !ok {
			if d, isDoor := w.Doors.Get(c); isDoor && d.Open > 0 {
				x, y := cell(c)
				vector.StrokeRect(screen, x+0.5, y+0.5, mapCell-1, mapCell-1, 1, mapDoor, false)
			}
			return
		}
		x, y := cell(c)
		switch desc.Category {
		case component.CategoryWall, component.CategoryThinWall:
			vector.FillRect(screen, x, y, mapCell, mapCell, mapWall, false)
		case component.CategoryDoor:
			vector.FillRect(screen, x, y, mapCell, mapCell, mapDoor, false)
		case component.CategoryObject:
			vector.FillRect(screen, x+2, y+2, mapCell-4, mapCell-4, mapObject, false)
		}
	})

	half := float32(mapCell) / 2
	for _, a := range w.Actors {
		if !a.Alive() {
			continue
		}
		prev := component.CellAt(a.X, a.Y)
		for _, step := range a.Path {
			x0, y0 := cell(prev)
			x1, y1 := cell(step)
			vector.StrokeLine(screen, x0+half, y0+half, x1+half, y1+half, 1, mapPath, false)
			prev = step
		}
		clr := mapActor
		if a.Chasing {
			clr = mapChase
		}
		ax, ay := ox+float32(a.X*mapCell), oy+float32(a.Y*mapCell)
		vector.FillRect(screen, ax-2, ay-2, 4, 4, clr, false)
	}

	p := w.Player
	px, py := ox+float32(p.X*mapCell), oy+float32(p.Y*mapCell)
	vector.FillRect(screen, px-2, py-2, 4, 4, mapPlayer, false)
	vector.StrokeLine(screen, px, py, px+float32(math.Cos(p.Angle)*mapCell*1.5), py+float32(math.Sin(p.Angle)*mapCell*1.5), 1, mapPlayer, false)
}

func (g *Game) drawTransition(screen *ebiten.Image) {
	t := g.transition.Current()
	if !t.Running {
		return
	}
	prog := float32(g.transition.Progress())
	w, h := float32(g.width), float32(g.height)
	switch t.Kind {
	case component.TransitionWipe:
		vector.FillRect(screen, 0, 0, w*prog, h, color.Black, false)
	case component.TransitionDeath:
		// The camera turns first; the red fade covers the second half.
		if t.Fired() {
			vector.FillRect(screen, 0, 0, w, h, color.RGBA{R: uint8(160 * prog), A: uint8(255 * prog)}, false)
		} else {
			vector.FillRect(screen, 0, 0, w, h, color.RGBA{R: uint8(120 * prog), A: uint8(120 * prog)}, false)
		}
	default:
		vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: uint8(255 * prog)}, false)
	}
}
