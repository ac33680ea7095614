package common

import "math"

const (
	BaseWidth  = 640
	BaseHeight = 400

	// axisEpsilon keeps ray angles off exact multiples of 90 degrees so the
	// caster never divides by a zero slope.
	axisEpsilon = 1e-6
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// NormalizeAngle wraps a into [0, 2*pi).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed smallest difference b-a in (-pi, pi].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b - a)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// NudgeAngle normalizes a and moves it off any exact multiple of pi/2.
func NudgeAngle(a float64) float64 {
	a = NormalizeAngle(a)
	quarter := math.Pi / 2
	r := math.Mod(a, quarter)
	if r < axisEpsilon {
		a += axisEpsilon - r
	} else if quarter-r < axisEpsilon {
		a -= axisEpsilon - (quarter - r)
	}
	return a
}

func DistSq(x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	return dx*dx + dy*dy
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
