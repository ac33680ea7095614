package assets

import (
	"encoding/binary"
	"hash/fnv"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/milk9111/raycaster/ecs/component"
)

// SampleRate is the rate of every generated clip.
const SampleRate = 44100

// Placeholder art stands in for missing PNGs so the game is playable from
// the binary alone. Colours derive from the texture name so distinct
// textures stay distinguishable.

func nameColor(name string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	v := h.Sum32()
	return color.RGBA{R: uint8(60 + v%150), G: uint8(60 + (v>>8)%150), B: uint8(60 + (v>>16)%150), A: 0xff}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, float64(c.R)*f)),
		G: uint8(math.Min(255, float64(c.G)*f)),
		B: uint8(math.Min(255, float64(c.B)*f)),
		A: c.A,
	}
}

// WallTexture returns a 2w x h texture: the lit face on the left half and
// the darker face used for vertical-side hits on the right.
func WallTexture(name string, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2*w, h))
	base := nameColor(name)
	brickH := max(h/8, 1)
	brickW := max(w/4, 1)
	for y := 0; y < h; y++ {
		row := y / brickH
		for x := 0; x < w; x++ {
			off := 0
			if row%2 == 1 {
				off = brickW / 2
			}
			c := base
			if y%brickH == 0 || (x+off)%brickW == 0 {
				c = shade(base, 0.55)
			}
			img.SetRGBA(x, y, c)
			img.SetRGBA(x+w, y, shade(c, 0.7))
		}
	}
	return img
}

// DoorTexture is a WallTexture-shaped sliding door with a handle.
func DoorTexture(name string, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2*w, h))
	base := nameColor(name)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := base
			if x%max(w/8, 1) == 0 {
				c = shade(base, 0.8)
			}
			if x > w*3/4 && x < w*3/4+w/16 && y > h*7/16 && y < h*9/16 {
				c = color.RGBA{R: 30, G: 30, B: 30, A: 0xff}
			}
			img.SetRGBA(x, y, c)
			img.SetRGBA(x+w, y, shade(c, 0.7))
		}
	}
	return img
}

// SpriteTexture is a w x h billboard: a filled disc on transparency.
func SpriteTexture(name string, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	drawDisc(img, float64(w)/2, float64(h)*0.75, float64(min(w, h))/5, nameColor(name))
	return img
}

// SpriteSheet lays out placeholder enemy frames the way layout describes:
// standing and walking rows per orientation, then shoot, pain and death rows.
func SpriteSheet(name string, layout component.SpriteLayout) *image.RGBA {
	fw, fh := max(layout.FrameW, 1), max(layout.FrameH, 1)
	rows := max(layout.DeathRow, layout.PainRow, layout.ShootRow, layout.WalkFrames) + 1
	cols := max(layout.Orientations, layout.ShootFrames, layout.PainFrames, layout.DeathFrames, 1)
	img := image.NewRGBA(image.Rect(0, 0, cols*fw, rows*fh))
	body := nameColor(name)

	frame := func(col, row int, bob, sink float64, tint color.RGBA, faceAngle float64, flash bool) {
		ox, oy := float64(col*fw), float64(row*fh)
		cx := ox + float64(fw)/2
		cy := oy + float64(fh)*0.55 + bob + sink
		r := float64(fw) / 5
		drawDisc(img, cx, cy, r, tint)
		drawDisc(img, cx, cy-r*1.3, r*0.6, shade(tint, 1.2))
		if !math.IsNaN(faceAngle) {
			fx := cx + math.Sin(faceAngle)*r*0.4
			drawDisc(img, fx, cy-r*1.3, r*0.15, color.RGBA{A: 0xff})
		}
		if flash {
			drawDisc(img, cx+r, cy-r*0.2, r*0.35, color.RGBA{R: 255, G: 220, B: 60, A: 0xff})
		}
	}

	for o := 0; o < max(layout.Orientations, 1); o++ {
		face := math.NaN()
		if layout.Orientations > 1 {
			face = float64(o) * 2 * math.Pi / float64(layout.Orientations)
			if math.Cos(face) < 0 {
				face = math.NaN()
			}
		}
		frame(o, 0, 0, 0, body, face, false)
		for wf := 0; wf < layout.WalkFrames; wf++ {
			frame(o, 1+wf, math.Sin(float64(wf)*math.Pi/2)*float64(fh)/32, 0, body, face, false)
		}
	}
	for i := 0; i < layout.ShootFrames; i++ {
		fire := false
		for _, f := range layout.FireFrames {
			fire = fire || f == i
		}
		frame(i, layout.ShootRow, 0, 0, body, 0, fire)
	}
	for i := 0; i < layout.PainFrames; i++ {
		frame(i, layout.PainRow, 0, 0, color.RGBA{R: 220, G: 60, B: 60, A: 0xff}, 0, false)
	}
	for i := 0; i < layout.DeathFrames; i++ {
		sink := float64(i+1) * float64(fh) / float64(2*max(layout.DeathFrames, 1))
		frame(i, layout.DeathRow, 0, sink, shade(body, 0.6), math.NaN(), false)
	}
	return img
}

func drawDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	b := img.Bounds()
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if !image.Pt(x, y).In(b) {
				continue
			}
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// Tone returns a 16-bit stereo little-endian sine clip with a linear fade out.
func Tone(freq, seconds, volume float64) []byte {
	return synth(seconds, volume, func(i int) float64 {
		return math.Sin(2 * math.Pi * freq * float64(i) / SampleRate)
	})
}

// Noise returns a 16-bit stereo little-endian white noise clip.
func Noise(seconds, volume float64, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed+1))
	return synth(seconds, volume, func(int) float64 {
		return r.Float64()*2 - 1
	})
}

func synth(seconds, volume float64, sample func(i int) float64) []byte {
	n := int(seconds * SampleRate)
	if n <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(volume, 1))
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := int16(sample(i) * env * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
