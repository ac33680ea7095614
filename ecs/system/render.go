package system

import (
	"image"
	"math"
	"sort"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

const nearPlane = 0.05

// DrawKind tells the sink what a command paints.
type DrawKind int

const (
	DrawWall DrawKind = iota
	DrawSprite
)

// Rect is a destination rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// DrawCommand blits Src of Texture into Dst.
type DrawCommand struct {
	Kind    DrawKind
	Texture string
	Src     image.Rectangle
	Dst     Rect
	// Depth is the perpendicular distance from the camera plane.
	Depth float64
}

// Sink receives draw commands in painting order. It never reports back.
type Sink interface {
	Draw(cmd DrawCommand)
}

// ViewConfig describes the screen and textures the assembler targets.
type ViewConfig struct {
	Width  int
	Height int
	FOV    float64
	// Projection scales wall heights; 1 gives square walls at the default FOV.
	Projection float64
	TexW       int
	TexH       int
}

// Frame summarises an assembled frame.
type Frame struct {
	Commands int
	// ZBuffer holds each column's wall depth.
	ZBuffer   []float64
	Sightings *Sightings
}

// FrameAssembler casts one ray per screen column, sizes wall slices by
// inverse perpendicular distance, adds actors and visible objects as
// billboards and paints everything far to near.
type FrameAssembler struct {
	cfg    ViewConfig
	caster *Caster
	plane  float64
	k      float64
	cmds   []DrawCommand
}

func NewFrameAssembler(cfg ViewConfig, caster *Caster) *FrameAssembler {
	if cfg.Width <= 0 {
		cfg.Width = common.BaseWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = common.BaseHeight
	}
	if cfg.FOV <= 0 {
		cfg.FOV = math.Pi / 3
	}
	if cfg.Projection <= 0 {
		cfg.Projection = 1
	}
	if cfg.TexW <= 0 {
		cfg.TexW = caster.TextureWidth
	}
	if cfg.TexH <= 0 {
		cfg.TexH = cfg.TexW
	}
	plane := float64(cfg.Width) / 2 / math.Tan(cfg.FOV/2)
	return &FrameAssembler{
		cfg:    cfg,
		caster: caster,
		plane:  plane,
		k:      plane * cfg.Projection,
	}
}

// WallHeight is the on-screen height of a wall at perpendicular distance d.
func (f *FrameAssembler) WallHeight(d float64) float64 {
	return f.k / math.Max(d, nearPlane)
}

// Assemble renders w from the player's eye into sink.
func (f *FrameAssembler) Assemble(w *ecs.World, sink Sink) Frame {
	p := w.Player
	if p == nil || sink == nil {
		return Frame{}
	}
	f.cmds = f.cmds[:0]
	seen := NewSightings()
	zbuf := make([]float64, f.cfg.Width)

	for x := 0; x < f.cfg.Width; x++ {
		offset := math.Atan((float64(x) + 0.5 - float64(f.cfg.Width)/2) / f.plane)
		hit := f.caster.Cast(p.Angle+offset, p.X, p.Y, seen)
		perp := hit.Dist(p.X, p.Y) * math.Cos(offset)
		zbuf[x] = perp
		if hit.Value == 0 {
			continue
		}
		desc, _ := w.Tiles.Lookup(hit.Value)
		f.cmds = append(f.cmds, f.wallSlice(x, perp, hit.Column, desc.Texture))
	}

	for _, d := range seen.Doors {
		w.Doors.Ensure(d.Cell, d.Value)
	}
	for _, a := range w.Actors {
		if a.Archetype == nil {
			continue
		}
		col, row := FrameFor(a, p)
		sp := a.Archetype.Sprite
		src := image.Rect(col*sp.FrameW, row*sp.FrameH, (col+1)*sp.FrameW, (row+1)*sp.FrameH)
		f.billboard(p, a.X, a.Y, a.Archetype.Texture, src)
	}
	for _, c := range seen.Objects {
		desc, ok := w.Tile(c)
		if !ok {
			continue
		}
		cx, cy := c.Center()
		f.billboard(p, cx, cy, desc.Texture, image.Rect(0, 0, f.cfg.TexW, f.cfg.TexH))
	}

	sort.SliceStable(f.cmds, func(i, j int) bool {
		return f.cmds[i].Depth > f.cmds[j].Depth
	})
	for _, cmd := range f.cmds {
		sink.Draw(cmd)
	}
	return Frame{Commands: len(f.cmds), ZBuffer: zbuf, Sightings: seen}
}

// wallSlice builds a one-pixel-wide wall column. When the slice is taller
// than the screen the source is cropped symmetrically so only the visible
// texels are scaled.
func (f *FrameAssembler) wallSlice(x int, perp float64, column int, texture string) DrawCommand {
	h := f.WallHeight(perp)
	screenH := float64(f.cfg.Height)
	src := image.Rect(column, 0, column+1, f.cfg.TexH)
	dst := Rect{X: float64(x), Y: (screenH - h) / 2, W: 1, H: h}
	if h > screenH {
		visible := float64(f.cfg.TexH) * screenH / h
		top := int(math.Floor((float64(f.cfg.TexH) - visible) / 2))
		src = image.Rect(column, top, column+1, f.cfg.TexH-top)
		dst = Rect{X: float64(x), Y: 0, W: 1, H: screenH}
	}
	return DrawCommand{Kind: DrawWall, Texture: texture, Src: src, Dst: dst, Depth: perp}
}

func (f *FrameAssembler) billboard(p *component.Player, x, y float64, texture string, src image.Rectangle) {
	dx, dy := x-p.X, y-p.Y
	diff := common.AngleDiff(p.Angle, math.Atan2(dy, dx))
	if math.Abs(diff) >= math.Pi/2 {
		return
	}
	perp := math.Hypot(dx, dy) * math.Cos(diff)
	if perp < nearPlane {
		return
	}
	size := f.WallHeight(perp)
	sx := float64(f.cfg.Width)/2 + math.Tan(diff)*f.plane
	if sx+size/2 < 0 || sx-size/2 > float64(f.cfg.Width) {
		return
	}
	f.cmds = append(f.cmds, DrawCommand{
		Kind:    DrawSprite,
		Texture: texture,
		Src:     src,
		Dst:     Rect{X: sx - size/2, Y: (float64(f.cfg.Height) - size) / 2, W: size, H: size},
		Depth:   perp,
	})
}
