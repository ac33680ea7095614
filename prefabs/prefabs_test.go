package prefabs

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/raycaster/ecs/component"
)

func TestEmbeddedTablesLoad(t *testing.T) {
	tables, err := LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if len(tables.Tiles) == 0 || len(tables.Archetypes) == 0 || len(tables.Weapons) == 0 {
		t.Fatalf("expected non-empty tables: %d tiles, %d enemies, %d weapons",
			len(tables.Tiles), len(tables.Archetypes), len(tables.Weapons))
	}
	for v, d := range tables.Tiles {
		if d.Category != component.CategoryEnemy {
			continue
		}
		if _, ok := tables.Archetypes[d.Texture]; !ok {
			t.Fatalf("enemy tile %d references unknown archetype %q", v, d.Texture)
		}
	}

	game, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if game.TPS != 30 {
		t.Fatalf("expected 30 TPS, got %d", game.TPS)
	}
	for _, w := range game.Player.Weapons {
		if w < 0 || w >= len(tables.Weapons) {
			t.Fatalf("starting weapon %d out of range", w)
		}
	}
}

func TestTileTableBuild(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"ok", "tiles:\n  - {value: 1, category: wall, texture: a}\n  - {value: -1, category: object, subtype: ammo, texture: b, amount: 4}\n", ""},
		{"duplicate", "tiles:\n  - {value: 1, category: wall}\n  - {value: 1, category: door}\n", "duplicate"},
		{"positive_object", "tiles:\n  - {value: 3, category: object}\n", "must be negative"},
		{"negative_wall", "tiles:\n  - {value: -3, category: wall}\n", "must be positive"},
		{"zero", "tiles:\n  - {value: 0, category: wall}\n", "reserved"},
		{"bad_category", "tiles:\n  - {value: 2, category: lava}\n", "unknown category"},
		{"unknown_field", "tiles:\n  - {value: 2, category: wall, colour: red}\n", "unmarshal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := DecodeSpec[TileTableSpec]("tiles.yaml", []byte(c.yaml))
			if err == nil {
				_, err = spec.Build()
			}
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestArchetypeBuild(t *testing.T) {
	src := `
enemies:
  - name: grunt
    texture: grunt
    hp: 10
    fov: 90
    sprite: {frame_w: 32, frame_h: 32, orientations: 8, fire_frames: [1]}
  - name: big
    texture: big
    kind: boss
    hp: 100
`
	spec, err := DecodeSpec[ArchetypeTableSpec]("enemies.yaml", []byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	table, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	grunt := table["grunt"]
	if grunt == nil || grunt.Kind != component.KindNormal {
		t.Fatalf("unexpected grunt %+v", grunt)
	}
	if math.Abs(grunt.FOV-math.Pi/2) > 1e-9 {
		t.Fatalf("fov should convert to radians, got %f", grunt.FOV)
	}
	if grunt.Sprite.FrameW != 32 || len(grunt.Sprite.FireFrames) != 1 {
		t.Fatalf("sprite layout not copied: %+v", grunt.Sprite)
	}
	if table["big"].Kind != component.KindBoss {
		t.Fatalf("expected boss kind")
	}

	bad := ArchetypeTableSpec{Enemies: []ArchetypeSpec{{Name: "x", Texture: "x", HP: 1, Kind: "dragon"}}}
	if _, err := bad.Build(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestGameSpecNextLevel(t *testing.T) {
	g := &GameSpec{Levels: []string{"a", "b", "c"}}
	cases := []struct {
		in, want string
	}{
		{"a", "b"},
		{"b", "c"},
		{"c", ""},
		{"zzz", ""},
	}
	for _, c := range cases {
		if got := g.NextLevel(c.in); got != c.want {
			t.Fatalf("NextLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"e1m1", "scripts/e1m1.tengo", "prefabs/scripts/e1m1"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if !strings.Contains(string(data), "next") {
			t.Fatalf("unexpected script content for %q", name)
		}
	}
	if _, err := LoadScript("no_such_level"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Change{
		"prefabs/enemies.yaml":       ChangeTables,
		"prefabs/scripts/e1m1.tengo": ChangeScript,
		"levels/e1m1/grid.csv":       ChangeLevel,
		"assets/guard.png":           ChangeNone,
	}
	for path, want := range cases {
		if got := Classify(path); got != want {
			t.Fatalf("Classify(%q) = %d, want %d", path, got, want)
		}
	}
}
