package system

import (
	"math"
	"testing"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

func newWeapons(w *ecs.World) *WeaponSystem {
	return NewWeaponSystem(NewCaster(w, texW), NewPathfinder(w))
}

func TestHitscanDamagesActorAhead(t *testing.T) {
	w := newTestWorld(room(10, 5), 1.5, 2.5, 0)
	a := addActor(w, 5.5, 2.5, math.Pi, testArchetype())
	ws := newWeapons(w)

	if !ws.Fire(w) {
		t.Fatalf("pistol with ammo should fire")
	}
	if a.HP != 16 {
		t.Fatalf("hp = %d, want 16 after range falloff", a.HP)
	}
	if w.Player.Ammo != 9 {
		t.Fatalf("ammo = %d, want 9", w.Player.Ammo)
	}
	if w.Player.FireCooldown != testWeapons()[1].Cooldown {
		t.Fatalf("cooldown = %d", w.Player.FireCooldown)
	}
	if !hasSound(soundNames(w), "shot") {
		t.Fatalf("expected the weapon sound")
	}
	if ws.Fire(w) {
		t.Fatalf("weapon should not fire during cooldown")
	}
}

func TestHitscanStopsAtWalls(t *testing.T) {
	w := newTestWorld(sealed(), 1.5, 2.5, 0)
	a := addActor(w, 8.5, 2.5, math.Pi, testArchetype())
	ws := newWeapons(w)

	if target, _ := ws.Target(w, 0); target != nil {
		t.Fatalf("actor behind a wall should not be targeted")
	}
	ws.Fire(w)
	if a.HP != a.Archetype.HP {
		t.Fatalf("actor behind a wall took damage")
	}
}

func TestHitscanPicksNearest(t *testing.T) {
	w := newTestWorld(room(12, 5), 1.5, 2.5, 0)
	far := addActor(w, 8.5, 2.5, math.Pi, testArchetype())
	near := addActor(w, 4.5, 2.5, math.Pi, testArchetype())
	off := addActor(w, 3.5, 1.5, math.Pi, testArchetype())
	ws := newWeapons(w)

	target, dist := ws.Target(w, 0)
	if target != near {
		t.Fatalf("expected the nearest actor on the ray, got %+v (far=%v off=%v)", target, target == far, target == off)
	}
	if math.Abs(dist-3) > 1e-9 {
		t.Fatalf("distance along ray = %f, want 3", dist)
	}
}

func TestGunfireAlertsRoom(t *testing.T) {
	w := newTestWorld(sealed(), 1.5, 1.5, math.Pi)
	same := addActor(w, 4.5, 3.5, math.Pi, testArchetype())
	other := addActor(w, 9.5, 2.5, math.Pi, testArchetype())
	ws := newWeapons(w)

	ws.Fire(w)
	if !same.Chasing || same.Target != w.Player.Cell() {
		t.Fatalf("actor in the player's room should be alerted")
	}
	if other.Chasing {
		t.Fatalf("actor in a sealed room should not hear the shot")
	}
}

func TestKnifeReach(t *testing.T) {
	cases := []struct {
		name   string
		x      float64
		wantHP int
	}{
		{"in_reach", 2.5, 18},
		{"out_of_reach", 4.5, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(room(10, 5), 1.5, 2.5, 0)
			w.Player.Weapon = 0
			w.Player.Ammo = 0
			a := addActor(w, tc.x, 2.5, math.Pi, testArchetype())
			ws := newWeapons(w)

			if !ws.Fire(w) {
				t.Fatalf("the knife needs no ammo")
			}
			if a.HP != tc.wantHP {
				t.Fatalf("hp = %d, want %d", a.HP, tc.wantHP)
			}
			if tc.wantHP == a.Archetype.HP && a.Chasing {
				t.Fatalf("a missed swing should stay silent")
			}
		})
	}
}

func TestOutOfAmmo(t *testing.T) {
	w := newTestWorld(room(10, 5), 1.5, 2.5, 0)
	w.Player.Ammo = 0
	a := addActor(w, 4.5, 2.5, math.Pi, testArchetype())
	ws := newWeapons(w)

	if ws.Fire(w) {
		t.Fatalf("empty pistol should not fire")
	}
	if a.HP != a.Archetype.HP {
		t.Fatalf("dry fire dealt damage")
	}
	if !hasSound(soundNames(w), component.SoundNoAmmo) {
		t.Fatalf("expected the dry-fire click")
	}
}

func TestAutomaticHoldFire(t *testing.T) {
	w := newTestWorld(room(10, 5), 1.5, 2.5, 0)
	w.Weapons[1].Automatic = true
	w.Weapons[1].Cooldown = 2
	ws := newWeapons(w)
	w.Input.FireHeld = true

	for i := 0; i < 6; i++ {
		ws.Update(w)
	}
	if w.Player.Ammo != 7 {
		t.Fatalf("ammo = %d, want 7 after holding for 6 ticks", w.Player.Ammo)
	}
}
