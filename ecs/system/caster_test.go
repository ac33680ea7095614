package system

import (
	"math"
	"testing"

	"github.com/milk9111/raycaster/ecs/component"
)

func TestCastEastWallOfSmallRoom(t *testing.T) {
	w := newTestWorld(room(5, 5), 2.5, 2.5, 0)
	c := NewCaster(w, texW)

	hit := c.Cast(0, 2.5, 2.5, nil)
	if hit.Value != tWall {
		t.Fatalf("expected wall value %d, got %d", tWall, hit.Value)
	}
	if d := hit.Dist(2.5, 2.5); math.Abs(d-1.5) > 1e-4 {
		t.Fatalf("expected distance 1.5, got %f", d)
	}
	if hit.Cell != (component.Cell{X: 4, Y: 2}) || !hit.Vertical {
		t.Fatalf("unexpected hit %+v", hit)
	}
	if hit.Column < texW {
		t.Fatalf("vertical side hit should bias the column by a texture width, got %d", hit.Column)
	}

	south := c.Cast(math.Pi/2, 2.5, 2.5, nil)
	if south.Vertical || south.Column >= texW {
		t.Fatalf("horizontal side hit should not be biased: %+v", south)
	}
}

func TestCastAlwaysTerminatesOnSolid(t *testing.T) {
	rows := room(9, 7)
	rows[2][3] = tWall
	rows[4][5] = tDecor
	w := newTestWorld(rows, 1.5, 1.5, 0)
	c := NewCaster(w, texW)

	origins := [][2]float64{{1.5, 1.5}, {4.25, 3.75}, {7.9, 5.1}, {2.01, 4.99}}
	for _, o := range origins {
		for i := 0; i < 720; i++ {
			angle := float64(i) * math.Pi / 360
			hit := c.Cast(angle, o[0], o[1], nil)
			if hit.Value <= 0 {
				t.Fatalf("cast from %v at %.4f returned %d", o, angle, hit.Value)
			}
		}
	}
}

func TestCastThroughDoorGap(t *testing.T) {
	w := newTestWorld(twoRooms(), 1.5, 2.5, 0)
	c := NewCaster(w, texW)
	d := w.Doors.Ensure(component.Cell{X: 3, Y: 2}, tDoor)
	d.Open = 0.5

	cases := []struct {
		name      string
		y         float64
		wantValue int
		wantCell  component.Cell
		wantCol   int
	}{
		{"inside_gap", 2.25, tWall, component.Cell{X: 6, Y: 2}, -1},
		{"door_leaf", 2.75, tDoor, component.Cell{X: 3, Y: 2}, texW + 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen := NewSightings()
			hit := c.Cast(0, 1.5, tc.y, seen)
			if hit.Value != tc.wantValue || hit.Cell != tc.wantCell {
				t.Fatalf("got value %d at %v, want %d at %v", hit.Value, hit.Cell, tc.wantValue, tc.wantCell)
			}
			if tc.wantCol >= 0 && hit.Column != tc.wantCol {
				t.Fatalf("column = %d, want %d", hit.Column, tc.wantCol)
			}
			if len(seen.Doors) != 1 || seen.Doors[0].Cell != (component.Cell{X: 3, Y: 2}) || seen.Doors[0].Value != tDoor {
				t.Fatalf("expected one door encounter, got %+v", seen.Doors)
			}
		})
	}
}

func TestCastReportsClosedDoorWithoutMutating(t *testing.T) {
	w := newTestWorld(twoRooms(), 1.5, 2.5, 0)
	c := NewCaster(w, texW)

	seen := NewSightings()
	hit := c.Cast(0, 1.5, 2.5, seen)
	if hit.Category != component.CategoryDoor {
		t.Fatalf("expected a door hit, got %+v", hit)
	}
	if len(seen.Doors) != 1 {
		t.Fatalf("expected a door encounter, got %+v", seen.Doors)
	}
	if w.Doors.Len() != 0 {
		t.Fatalf("caster must not insert doors itself")
	}
}

func TestCastRegistersObjectsOnce(t *testing.T) {
	rows := room(7, 5)
	rows[2][3] = tAmmo
	w := newTestWorld(rows, 1.5, 2.5, 0)
	c := NewCaster(w, texW)

	seen := NewSightings()
	for _, y := range []float64{2.2, 2.5, 2.8} {
		hit := c.Cast(0, 1.5, y, seen)
		if hit.Value != tWall {
			t.Fatalf("objects must not occlude, hit %+v", hit)
		}
	}
	if len(seen.Objects) != 1 || seen.Objects[0] != (component.Cell{X: 3, Y: 2}) {
		t.Fatalf("expected one deduplicated object, got %v", seen.Objects)
	}

	hx, hy := c.SimpleCast(0, 1.5, 2.5)
	if math.Abs(hx-6) > 1e-6 || math.Abs(hy-2.5) > 1e-4 {
		t.Fatalf("SimpleCast hit (%f, %f), want east wall", hx, hy)
	}
}

func TestCanSee(t *testing.T) {
	rows := room(9, 5)
	rows[1][4] = tWall
	rows[2][4] = tWall
	w := newTestWorld(rows, 1.5, 1.5, 0)
	c := NewCaster(w, texW)

	cases := []struct {
		name           string
		fx, fy, tx, ty float64
		cone           *ViewCone
		want           bool
	}{
		{"same_point", 2.5, 2.5, 2.5, 2.5, nil, true},
		{"same_point_outside_cone", 2.5, 2.5, 2.5, 2.5, &ViewCone{Angle: math.Pi, FOV: 0.1}, true},
		{"open_floor", 1.5, 3.5, 7.5, 3.5, nil, true},
		{"behind_wall", 1.5, 1.5, 7.5, 1.5, nil, false},
		{"inside_cone", 1.5, 3.5, 7.5, 3.5, &ViewCone{Angle: 0, FOV: math.Pi / 2}, true},
		{"outside_cone", 1.5, 3.5, 7.5, 3.5, &ViewCone{Angle: math.Pi, FOV: math.Pi / 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.CanSee(tc.fx, tc.fy, tc.tx, tc.ty, tc.cone); got != tc.want {
				t.Fatalf("CanSee = %v, want %v", got, tc.want)
			}
		})
	}
}
