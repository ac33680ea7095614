package assets

import (
	"testing"

	"github.com/milk9111/raycaster/ecs/component"
)

func TestPlaceholderTextureSizes(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		wantW int
		wantH int
	}{
		{"missing_wall", KindWall, 64, 32},
		{"missing_door", KindDoor, 64, 32},
		{"missing_sprite", KindSprite, 32, 32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Texture(tc.name, tc.kind, 32, 32).Bounds()
			if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Fatalf("bounds = %v, want %dx%d", b, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestWallTextureDarkHalf(t *testing.T) {
	img := WallTexture("brick", 16, 16)
	lit := img.RGBAAt(1, 1)
	dark := img.RGBAAt(17, 1)
	if int(dark.R)+int(dark.G)+int(dark.B) >= int(lit.R)+int(lit.G)+int(lit.B) {
		t.Fatalf("right half should be darker: lit %v dark %v", lit, dark)
	}
	if WallTexture("brick", 16, 16).RGBAAt(1, 1) != lit {
		t.Fatalf("textures should be deterministic per name")
	}
}

func TestSpriteSheetFitsLayout(t *testing.T) {
	layout := component.SpriteLayout{
		FrameW: 16, FrameH: 16, Orientations: 8, WalkFrames: 4,
		ShootRow: 5, ShootFrames: 3, FireFrames: []int{1},
		PainRow: 6, PainFrames: 1, DeathRow: 7, DeathFrames: 4,
	}
	b := Sheet("nosuch_enemy", layout).Bounds()
	if b.Dx() != 8*16 || b.Dy() != 8*16 {
		t.Fatalf("sheet bounds = %v, want 128x128", b)
	}
}

func TestEmbeddedImage(t *testing.T) {
	img, err := LoadImage("assets/sky_1.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Bounds().Empty() {
		t.Fatalf("sky image is empty")
	}
	if _, err := LoadImage("nosuch.png"); err == nil {
		t.Fatalf("expected an error for a missing image")
	}
}

func TestSynthLengths(t *testing.T) {
	cases := []struct {
		name    string
		clip    []byte
		samples int
	}{
		{"tone", Tone(440, 0.1, 0.5), 4410},
		{"noise", Noise(0.05, 0.5, 3), 2205},
		{"empty", Tone(440, 0, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.clip) != tc.samples*4 {
				t.Fatalf("len = %d, want %d", len(tc.clip), tc.samples*4)
			}
		})
	}
}
