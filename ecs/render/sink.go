package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/raycaster/ecs/system"
)

// ScreenSink paints draw commands onto an ebiten image. Distant commands
// are darkened towards black past FogStart.
type ScreenSink struct {
	reg      *Registry
	dst      *ebiten.Image
	FogStart float64
	FogEnd   float64
	Missing  int
}

func NewScreenSink(reg *Registry) *ScreenSink {
	return &ScreenSink{reg: reg, FogStart: 6, FogEnd: 24}
}

// Begin targets dst for the next frame.
func (s *ScreenSink) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.Missing = 0
}

func (s *ScreenSink) Draw(cmd system.DrawCommand) {
	if s.dst == nil || cmd.Dst.W <= 0 || cmd.Dst.H <= 0 || cmd.Src.Empty() {
		return
	}
	tex := s.reg.Get(cmd.Texture)
	if tex == nil {
		s.Missing++
		return
	}
	src := cmd.Src.Intersect(tex.Bounds())
	if src.Empty() {
		return
	}
	sub := tex.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cmd.Dst.W/float64(src.Dx()), cmd.Dst.H/float64(src.Dy()))
	op.GeoM.Translate(cmd.Dst.X, cmd.Dst.Y)
	if f := s.light(cmd.Depth); f < 1 {
		op.ColorScale.Scale(float32(f), float32(f), float32(f), 1)
	}
	if cmd.Kind == system.DrawWall {
		op.Filter = ebiten.FilterNearest
	}
	s.dst.DrawImage(sub, op)
}

func (s *ScreenSink) light(depth float64) float64 {
	if depth <= s.FogStart || s.FogEnd <= s.FogStart {
		return 1
	}
	t := (depth - s.FogStart) / (s.FogEnd - s.FogStart)
	return math.Max(0.25, 1-t)
}

var _ system.Sink = (*ScreenSink)(nil)
