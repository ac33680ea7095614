package levels

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/raycaster/ecs/component"
)

func testTiles() component.TileTable {
	return component.TileTable{
		1:  {Category: component.CategoryWall, Texture: "brick"},
		10: {Category: component.CategoryDoor, Subtype: component.SubtypeDynamicDoor, Texture: "door"},
		20: {Category: component.CategoryEnemy, Texture: "guard"},
		-1: {Category: component.CategoryObject, Subtype: component.SubtypeDecor, Texture: "lamp"},
	}
}

func TestParseGrid(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    [][]int
		wantErr error
	}{
		{"simple", "1,1,1\n1,0,1\n1,1,1\n", [][]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}}, nil},
		{"spaces_and_negatives", "1, 1, 1\n1, -1, 1\n1, 1, 1", [][]int{{1, 1, 1}, {1, -1, 1}, {1, 1, 1}}, nil},
		{"row_length", "1,1,1\n1,0\n1,1,1\n", nil, ErrRowLength},
		{"empty", "", nil, ErrEmptyGrid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseGrid(strings.NewReader(c.in))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %d rows, got %d", len(c.want), len(got))
			}
			for y := range c.want {
				for x := range c.want[y] {
					if got[y][x] != c.want[y][x] {
						t.Fatalf("cell (%d,%d) = %d, want %d", x, y, got[y][x], c.want[y][x])
					}
				}
			}
		})
	}

	if _, err := ParseGrid(strings.NewReader("1,x,1\n")); err == nil {
		t.Fatalf("expected error for non-integer token")
	}
}

func TestParsePlayer(t *testing.T) {
	sp, err := ParsePlayer(strings.NewReader("2.5, 3.5, 1.57\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.X != 2.5 || sp.Y != 3.5 || sp.Angle != 1.57 {
		t.Fatalf("unexpected spawn %+v", sp)
	}
	if _, err := ParsePlayer(strings.NewReader("2.5 3.5")); !errors.Is(err, ErrNoSpawn) {
		t.Fatalf("expected ErrNoSpawn for short file, got %v", err)
	}
}

func TestParseBackground(t *testing.T) {
	bg, err := ParseBackground(strings.NewReader("#102030\nmaroon\n2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bg.Ceiling.R != 0x10 || bg.Ceiling.G != 0x20 || bg.Ceiling.B != 0x30 || bg.Ceiling.A != 0xff {
		t.Fatalf("unexpected ceiling %+v", bg.Ceiling)
	}
	if bg.Floor.R != 0x80 || bg.Floor.G != 0 || bg.Floor.B != 0 {
		t.Fatalf("unexpected floor %+v", bg.Floor)
	}
	if bg.Sky != 2 {
		t.Fatalf("expected sky 2, got %d", bg.Sky)
	}

	bg, err = ParseBackground(strings.NewReader("black\nwhite\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bg.Sky != -1 {
		t.Fatalf("missing sky should be -1, got %d", bg.Sky)
	}

	if _, err := ParseBackground(strings.NewReader("notacolour\nwhite\n")); err == nil {
		t.Fatalf("expected error for unknown colour")
	}
}

func TestValidate(t *testing.T) {
	closed := [][]int{
		{1, 1, 1, 1},
		{1, 0, 20, 1},
		{1, -1, 10, 1},
		{1, 1, 1, 1},
	}
	cases := []struct {
		name    string
		rows    [][]int
		spawn   Spawn
		wantErr error
	}{
		{"ok", closed, Spawn{X: 1.5, Y: 1.5}, nil},
		{"spawn_on_object", closed, Spawn{X: 1.5, Y: 2.5}, nil},
		{"unknown_tile", [][]int{{1, 1, 1}, {1, 7, 1}, {1, 1, 1}}, Spawn{X: 1.5, Y: 1.5}, ErrUnknownTile},
		{"open_border", [][]int{{1, 0, 1}, {1, 0, 1}, {1, 1, 1}}, Spawn{X: 1.5, Y: 1.5}, ErrOpenBorder},
		{"enemy_border", [][]int{{1, 20, 1}, {1, 0, 1}, {1, 1, 1}}, Spawn{X: 1.5, Y: 1.5}, ErrOpenBorder},
		{"door_border", [][]int{{1, 1, 1}, {1, 0, 10}, {1, 1, 1}}, Spawn{X: 1.5, Y: 1.5}, ErrOpenBorder},
		{"spawn_in_wall", closed, Spawn{X: 0.5, Y: 0.5}, ErrNoSpawn},
		{"spawn_outside", closed, Spawn{X: 9, Y: 9}, ErrNoSpawn},
		{"ragged", [][]int{{1, 1, 1}, {1, 0}, {1, 1, 1}}, Spawn{X: 1.5, Y: 1.5}, ErrRowLength},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(&Level{Name: c.name, Rows: c.rows, Spawn: c.spawn}, testTiles())
			if c.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"room/grid.csv":       {Data: []byte("1,1,1\n1,0,1\n1,1,1\n")},
		"room/player.txt":     {Data: []byte("1.5 1.5 0\n")},
		"nospawn/grid.csv":    {Data: []byte("1,1,1\n1,0,1\n1,1,1\n")},
		"nobg/grid.csv":       {Data: []byte("1,1,1\n1,0,1\n1,1,1\n")},
		"nobg/player.txt":     {Data: []byte("1.5 1.5 0\n")},
		"room/background.txt": {Data: []byte("black\n#404040\n")},
	}

	lvl, err := LoadFS(fsys, "room")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lvl.Width() != 3 || lvl.Height() != 3 {
		t.Fatalf("unexpected size %dx%d", lvl.Width(), lvl.Height())
	}
	if lvl.Background.Floor.R != 0x40 {
		t.Fatalf("background not parsed: %+v", lvl.Background)
	}

	if _, err := LoadFS(fsys, "nospawn"); !errors.Is(err, ErrNoSpawn) {
		t.Fatalf("expected ErrNoSpawn, got %v", err)
	}

	lvl, err = LoadFS(fsys, "nobg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lvl.Background != DefaultBackground() {
		t.Fatalf("expected default background, got %+v", lvl.Background)
	}

	if _, err := LoadFS(fsys, "missing"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func TestEmbeddedLevelsParse(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("expected embedded levels")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadFS(LevelsFS, name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if lvl.Width() < 3 || lvl.Height() < 3 {
				t.Fatalf("level too small: %dx%d", lvl.Width(), lvl.Height())
			}
		})
	}
}
