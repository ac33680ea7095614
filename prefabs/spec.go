package prefabs

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/raycaster/ecs/component"
)

const (
	TilesFile   = "tiles.yaml"
	EnemiesFile = "enemies.yaml"
	WeaponsFile = "weapons.yaml"
	GameFile    = "game.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

// DecodeSpec unmarshals data, rejecting unknown keys.
func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type TileSpec struct {
	Value    int    `yaml:"value"`
	Category string `yaml:"category"`
	Subtype  string `yaml:"subtype"`
	Texture  string `yaml:"texture"`
	Amount   int    `yaml:"amount"`
}

type TileTableSpec struct {
	Tiles []TileSpec `yaml:"tiles"`
}

// Build converts the spec into a validated tile table.
func (s TileTableSpec) Build() (component.TileTable, error) {
	table := make(component.TileTable, len(s.Tiles))
	for _, t := range s.Tiles {
		if _, dup := table[t.Value]; dup {
			return nil, fmt.Errorf("prefabs: %s: duplicate tile value %d", TilesFile, t.Value)
		}
		table[t.Value] = component.TileDescriptor{
			Category: component.TileCategory(t.Category),
			Subtype:  t.Subtype,
			Texture:  t.Texture,
			Amount:   t.Amount,
		}
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", TilesFile, err)
	}
	return table, nil
}

func LoadTileTable() (component.TileTable, error) {
	spec, err := LoadSpec[TileTableSpec](TilesFile)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

type SpriteLayoutSpec struct {
	FrameW       int   `yaml:"frame_w"`
	FrameH       int   `yaml:"frame_h"`
	Orientations int   `yaml:"orientations"`
	WalkFrames   int   `yaml:"walk_frames"`
	WalkCadence  int   `yaml:"walk_cadence"`
	FrameTicks   int   `yaml:"frame_ticks"`
	ShootRow     int   `yaml:"shoot_row"`
	ShootFrames  int   `yaml:"shoot_frames"`
	FireFrames   []int `yaml:"fire_frames"`
	PainRow      int   `yaml:"pain_row"`
	PainFrames   int   `yaml:"pain_frames"`
	DeathRow     int   `yaml:"death_row"`
	DeathFrames  int   `yaml:"death_frames"`
}

type ArchetypeSpec struct {
	Name             string           `yaml:"name"`
	Texture          string           `yaml:"texture"`
	Kind             string           `yaml:"kind"`
	HP               int              `yaml:"hp"`
	Speed            float64          `yaml:"speed"`
	ShootingRange    float64          `yaml:"shooting_range"`
	Accuracy         float64          `yaml:"accuracy"`
	DamageMultiplier float64          `yaml:"damage_multiplier"`
	PainChance       float64          `yaml:"pain_chance"`
	Memory           int              `yaml:"memory"`
	Patience         int              `yaml:"patience"`
	FOV              float64          `yaml:"fov"`
	AlertRadius      float64          `yaml:"alert_radius"`
	ShotCooldown     int              `yaml:"shot_cooldown"`
	Drop             int              `yaml:"drop"`
	Sprite           SpriteLayoutSpec `yaml:"sprite"`
}

type ArchetypeTableSpec struct {
	Enemies []ArchetypeSpec `yaml:"enemies"`
}

// Build converts the spec into an archetype table keyed by texture.
func (s ArchetypeTableSpec) Build() (component.ArchetypeTable, error) {
	table := make(component.ArchetypeTable, len(s.Enemies))
	for _, e := range s.Enemies {
		if e.Texture == "" {
			return nil, fmt.Errorf("prefabs: %s: enemy %q has no texture", EnemiesFile, e.Name)
		}
		if _, dup := table[e.Texture]; dup {
			return nil, fmt.Errorf("prefabs: %s: duplicate enemy texture %q", EnemiesFile, e.Texture)
		}
		if e.HP <= 0 {
			return nil, fmt.Errorf("prefabs: %s: enemy %q needs positive hp", EnemiesFile, e.Name)
		}
		kind := component.KindNormal
		switch strings.ToLower(e.Kind) {
		case "", "normal":
		case "boss":
			kind = component.KindBoss
		default:
			return nil, fmt.Errorf("prefabs: %s: enemy %q: unknown kind %q", EnemiesFile, e.Name, e.Kind)
		}
		table[e.Texture] = &component.Archetype{
			Name:             e.Name,
			Texture:          e.Texture,
			Kind:             kind,
			HP:               e.HP,
			Speed:            e.Speed,
			ShootingRange:    e.ShootingRange,
			Accuracy:         e.Accuracy,
			DamageMultiplier: e.DamageMultiplier,
			PainChance:       e.PainChance,
			Memory:           e.Memory,
			Patience:         e.Patience,
			FOV:              e.FOV * math.Pi / 180,
			AlertRadius:      e.AlertRadius,
			ShotCooldown:     e.ShotCooldown,
			Drop:             e.Drop,
			Sprite:           component.SpriteLayout(e.Sprite),
		}
	}
	return table, nil
}

func LoadArchetypes() (component.ArchetypeTable, error) {
	spec, err := LoadSpec[ArchetypeTableSpec](EnemiesFile)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

type WeaponSpec struct {
	Name        string  `yaml:"name"`
	Texture     string  `yaml:"texture"`
	MinDamage   int     `yaml:"min_damage"`
	MaxDamage   int     `yaml:"max_damage"`
	Range       float64 `yaml:"range"`
	Cooldown    int     `yaml:"cooldown"`
	Automatic   bool    `yaml:"automatic"`
	AmmoPerShot int     `yaml:"ammo_per_shot"`
	Melee       bool    `yaml:"melee"`
	Sound       string  `yaml:"sound"`
}

type WeaponTableSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

func (s WeaponTableSpec) Build() ([]component.Weapon, error) {
	if len(s.Weapons) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no weapons", WeaponsFile)
	}
	out := make([]component.Weapon, 0, len(s.Weapons))
	for _, w := range s.Weapons {
		if w.MaxDamage < w.MinDamage {
			return nil, fmt.Errorf("prefabs: %s: weapon %q: max_damage below min_damage", WeaponsFile, w.Name)
		}
		out = append(out, component.Weapon(w))
	}
	return out, nil
}

func LoadWeapons() ([]component.Weapon, error) {
	spec, err := LoadSpec[WeaponTableSpec](WeaponsFile)
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

type ScreenSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TextureSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type DoorSpec struct {
	Speed     float64 `yaml:"speed"`
	OpenTicks int     `yaml:"open_ticks"`
}

type PlayerSpec struct {
	Speed     float64 `yaml:"speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
	HalfSize  float64 `yaml:"half_size"`
	Reach     float64 `yaml:"reach"`
	HP        int     `yaml:"hp"`
	Ammo      int     `yaml:"ammo"`
	MaxAmmo   int     `yaml:"max_ammo"`
	Weapons   []int   `yaml:"weapons"`
}

type SoundSpec struct {
	File     string  `yaml:"file"`
	Freq     float64 `yaml:"freq"`
	Duration float64 `yaml:"duration"`
	Noise    bool    `yaml:"noise"`
	Volume   float64 `yaml:"volume"`
}

// GameSpec is the global tuning table.
type GameSpec struct {
	Screen     ScreenSpec           `yaml:"screen"`
	TPS        int                  `yaml:"tps"`
	FOV        float64              `yaml:"fov"`
	Projection float64              `yaml:"projection"`
	Texture    TextureSpec          `yaml:"texture"`
	Door       DoorSpec             `yaml:"door"`
	Player     PlayerSpec           `yaml:"player"`
	Transition int                  `yaml:"transition_frames"`
	Levels     []string             `yaml:"levels"`
	Sounds     map[string]SoundSpec `yaml:"sounds"`
}

// FOVRadians returns the horizontal field of view in radians.
func (g *GameSpec) FOVRadians() float64 {
	return g.FOV * math.Pi / 180
}

// NextLevel returns the level after name in the campaign order, or "" at
// the end.
func (g *GameSpec) NextLevel(name string) string {
	for i, l := range g.Levels {
		if l == name && i+1 < len(g.Levels) {
			return g.Levels[i+1]
		}
	}
	return ""
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	if len(spec.Levels) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no levels listed", GameFile)
	}
	if spec.TPS <= 0 {
		spec.TPS = 30
	}
	return &spec, nil
}

// Tables bundles the data tables a level is built from.
type Tables struct {
	Tiles      component.TileTable
	Archetypes component.ArchetypeTable
	Weapons    []component.Weapon
}

// LoadTables loads the tile, enemy and weapon tables.
func LoadTables() (*Tables, error) {
	tiles, err := LoadTileTable()
	if err != nil {
		return nil, err
	}
	arch, err := LoadArchetypes()
	if err != nil {
		return nil, err
	}
	weapons, err := LoadWeapons()
	if err != nil {
		return nil, err
	}
	return &Tables{Tiles: tiles, Archetypes: arch, Weapons: weapons}, nil
}
