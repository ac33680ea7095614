package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/raycaster/ecs/component"
)

const stickDeadzone = 0.2

var weaponKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// readInput polls keyboard and the first gamepad into one tick of intent.
func readInput() component.Input {
	in := component.NoInput()

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn--
	}

	in.FireHeld = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Fire = inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Interact = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	for i, k := range weaponKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.SelectWeapon = i
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(ly) > stickDeadzone {
			in.Forward = -ly
		}
		if math.Abs(lx) > stickDeadzone {
			in.Strafe = lx
		}
		if math.Abs(rx) > stickDeadzone {
			in.Turn = rx
		}
		in.FireHeld = in.FireHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.Fire = in.Fire || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.Interact = in.Interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	in.Forward = math.Max(-1, math.Min(in.Forward, 1))
	in.Strafe = math.Max(-1, math.Min(in.Strafe, 1))
	in.Turn = math.Max(-1, math.Min(in.Turn, 1))
	return in
}
