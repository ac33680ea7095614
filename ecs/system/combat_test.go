package system

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

func TestHurt(t *testing.T) {
	cases := []struct {
		name     string
		hp, dmg  int
		wantHP   int
		wantDead bool
	}{
		{"graze", 25, 5, 20, false},
		{"exact", 25, 25, 0, true},
		{"overkill", 25, 90, 0, true},
		{"zero", 25, 0, 25, false},
		{"negative_is_ignored", 25, -10, 25, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &component.Actor{HP: tc.hp}
			if dead := Hurt(a, tc.dmg); dead != tc.wantDead {
				t.Fatalf("Hurt dead = %v, want %v", dead, tc.wantDead)
			}
			if a.HP != tc.wantHP {
				t.Fatalf("hp = %d, want %d", a.HP, tc.wantHP)
			}
		})
	}
}

func TestDamageActorKills(t *testing.T) {
	arch := testArchetype()
	arch.Drop = tAmmo
	w := newTestWorld(room(7, 5), 1.5, 2.5, 0)
	a := addActor(w, 4.5, 2.5, math.Pi, arch)

	DamageActor(w, a, 100)
	if a.State != component.StateDead || a.Alive() {
		t.Fatalf("expected dead actor, got %s hp=%d", a.State, a.HP)
	}
	if w.Stats.Kills != 1 {
		t.Fatalf("kills = %d, want 1", w.Stats.Kills)
	}
	if got := w.Grid.At(a.Cell()); got != tAmmo {
		t.Fatalf("drop tile = %d, want %d", got, tAmmo)
	}

	died := false
	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventActorDied && ev.Data == a.ID {
			died = true
		}
	}
	if !died {
		t.Fatalf("expected an actor-died event")
	}

	DamageActor(w, a, 100)
	if w.Stats.Kills != 1 {
		t.Fatalf("a dead actor must not be killed twice")
	}
}

func TestDropDoesNotOverwriteObjects(t *testing.T) {
	arch := testArchetype()
	arch.Drop = tAmmo
	rows := room(7, 5)
	rows[2][4] = tTreasure
	w := newTestWorld(rows, 1.5, 2.5, 0)
	a := addActor(w, 4.5, 2.5, math.Pi, arch)

	DamageActor(w, a, 100)
	if got := w.Grid.At(a.Cell()); got != tTreasure {
		t.Fatalf("drop replaced the object under the actor, cell = %d", got)
	}
}

func TestNoDropInOpenDoorway(t *testing.T) {
	arch := testArchetype()
	arch.Drop = tAmmo
	w := newTestWorld(twoRooms(), 1.5, 1.5, 0)
	ds := NewDoorSystem(DoorConfig{Speed: 1, OpenTicks: 90})
	ds.Trigger(w, doorCell)
	ds.Update(w)
	if w.Grid.At(doorCell) != 0 {
		t.Fatalf("door should be open")
	}
	a := addActor(w, 3.5, 2.5, 0, arch)

	DamageActor(w, a, 100)
	if a.State != component.StateDead {
		t.Fatalf("expected dead, got %s", a.State)
	}
	if got := w.Grid.At(doorCell); got != 0 {
		t.Fatalf("drop written into the doorway, cell = %d", got)
	}
}

func TestDamageActorPainAndAlert(t *testing.T) {
	arch := testArchetype()
	arch.PainChance = 1
	w := newTestWorld(sealed(), 9.5, 2.5, math.Pi)
	a := addActor(w, 2.5, 2.5, 0, arch)

	DamageActor(w, a, 5)
	if a.HP != 20 {
		t.Fatalf("hp = %d, want 20", a.HP)
	}
	if a.State != component.StateHit {
		t.Fatalf("expected pain state, got %s", a.State)
	}
	if !a.Chasing || a.Target != w.Player.Cell() {
		t.Fatalf("damage should put the actor on the player's trail")
	}
	if !hasSound(soundNames(w), component.SoundPain) {
		t.Fatalf("expected a pain sound")
	}
}

func TestHitChanceIsClamped(t *testing.T) {
	cases := []struct {
		name     string
		accuracy float64
		dist     float64
		moving   bool
		want     float64
	}{
		{"point_blank", 0.9, 0, false, 0.9},
		{"perfect_aim_capped", 2, 0, false, maxHitChance},
		{"far_floor", 0.5, 100, false, minHitChance},
		{"moving_penalty", 0.9, 0, true, 0.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HitChance(tc.accuracy, tc.dist, tc.moving); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("HitChance = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestRollDamageBands(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, b := range enemyDamageBands {
		dist := 50.0
		if !math.IsInf(b.MaxDist, 1) {
			dist = b.MaxDist - 0.01
		}
		for i := 0; i < 200; i++ {
			got := RollDamage(r, dist, 1)
			if got < b.Min || got > b.Max {
				t.Fatalf("dist %.2f: damage %d outside [%d, %d]", dist, got, b.Min, b.Max)
			}
		}
	}
	for i := 0; i < 50; i++ {
		if got := RollDamage(r, 50, 2); got < 2 || got > 12 {
			t.Fatalf("doubled far damage %d outside [2, 12]", got)
		}
	}
}

func TestHurtPlayerDeath(t *testing.T) {
	w := newTestWorld(room(5, 5), 2.5, 2.5, 0)
	w.Player.HP = 10

	HurtPlayer(w, 4, 3)
	if w.Player.HP != 6 || w.Player.Killer != -1 {
		t.Fatalf("non-lethal hit: hp=%d killer=%d", w.Player.HP, w.Player.Killer)
	}
	w.Events().Drain()

	HurtPlayer(w, 50, 3)
	if w.Player.HP != 0 || w.Player.Killer != 3 {
		t.Fatalf("lethal hit: hp=%d killer=%d", w.Player.HP, w.Player.Killer)
	}
	var died []ecs.Event
	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventPlayerDied {
			died = append(died, ev)
		}
	}
	if len(died) != 1 || died[0].Data != 3 {
		t.Fatalf("expected one player-died event from actor 3, got %+v", died)
	}

	HurtPlayer(w, 5, 4)
	if w.Player.Killer != 3 {
		t.Fatalf("hits on a dead player must be ignored")
	}
}
