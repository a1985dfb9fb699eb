package anim

import "math"

// Easing maps linear time progress in [0,1] to animation progress.
type Easing func(x float64) float64

// Linear is the identity easing.
func Linear(x float64) float64 { return x }

// StandardEase is cubic-bezier(0.165, 0.84, 0.44, 1), a quartic ease-out.
var StandardEase = Bezier(0.165, 0.84, 0.44, 1)

// Bezier returns the CSS style cubic-bezier easing with control points
// (x1,y1) and (x2,y2). The end points are fixed at (0,0) and (1,1).
func Bezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx

	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		const epsilon = 1e-6

		// Newton's method converges quickly for most curves.
		t := x
		for range 8 {
			d := sampleX(t) - x
			if math.Abs(d) < epsilon {
				return t
			}
			s := slopeX(t)
			if math.Abs(s) < epsilon {
				break
			}
			t -= d / s
		}

		// Fall back to bisection.
		lo, hi := 0.0, 1.0
		t = x
		for range 50 {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solve(x))
	}
}
