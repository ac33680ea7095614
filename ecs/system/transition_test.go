package system

import (
	"math"
	"testing"

	"github.com/milk9111/raycaster/ecs/component"
)

func TestTransitionMidpointFiresOnce(t *testing.T) {
	ts := NewTransitionSystem()
	fired := 0
	firedAt := -1
	ts.Start(component.TransitionWipe, 10, func() {
		fired++
		firedAt = ts.Current().Frame
	})

	frames := 0
	for ts.Running() && frames < 100 {
		ts.Update(nil)
		frames++
	}
	if fired != 1 {
		t.Fatalf("midpoint fired %d times", fired)
	}
	if firedAt != 5 {
		t.Fatalf("midpoint fired at frame %d, want 5", firedAt)
	}
	if frames != 10 {
		t.Fatalf("transition ran %d frames, want 10", frames)
	}
}

func TestTransitionProgress(t *testing.T) {
	ts := NewTransitionSystem()
	if ts.Progress() != 0 {
		t.Fatalf("idle progress should be 0")
	}
	ts.Start(component.TransitionFade, 8, nil)

	want := []float64{0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25}
	for i, w := range want {
		ts.Update(nil)
		if got := ts.Progress(); math.Abs(got-w) > 1e-9 {
			t.Fatalf("frame %d: progress %f, want %f", i+1, got, w)
		}
	}
	ts.Update(nil)
	if ts.Running() || ts.Progress() != 0 {
		t.Fatalf("transition should be over")
	}
}

func TestTransitionRestartReplaces(t *testing.T) {
	ts := NewTransitionSystem()
	first := false
	ts.Start(component.TransitionFade, 4, func() { first = true })
	ts.Update(nil)
	ts.Start(component.TransitionWipe, 4, nil)
	for ts.Running() {
		ts.Update(nil)
	}
	if first {
		t.Fatalf("a replaced transition must not fire its midpoint")
	}
}

func TestDeathTurnFacesKiller(t *testing.T) {
	w := newTestWorld(room(8, 8), 2.5, 2.5, 0)
	ts := NewTransitionSystem()
	ts.StartDeath(w.Player, 2.5, 6.5, 20, nil)

	for i := 0; i < 10; i++ {
		ts.Update(w)
	}
	if math.Abs(w.Player.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("angle at midpoint = %f, want pi/2", w.Player.Angle)
	}
	for ts.Running() {
		ts.Update(w)
	}
	if math.Abs(w.Player.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("camera should hold on the killer, got %f", w.Player.Angle)
	}
}
