// Package pbp fuses HTML events, API events, and shift changes into the
// ordered play-by-play stream, then threads game state through it: scores,
// strength states, on-ice skaters, and spatial danger classification.
package pbp

import "math"

// point is a rink coordinate; x runs along the length of the ice with the
// goal lines at ±89.
type point struct{ x, y float64 }

// The scoring areas around each net. High danger is the low slot; danger
// is the decagon enclosing the slot out to the faceoff dots. The two
// shapes are mirror-symmetric about center ice.
var (
	highDanger1 = []point{{69, -9}, {89, -9}, {89, 9}, {69, 9}}
	highDanger2 = []point{{-69, -9}, {-89, -9}, {-89, 9}, {-69, 9}}

	danger1 = []point{
		{89, 9}, {89, -9}, {69, -22}, {54, -22}, {54, -9},
		{44, -9}, {44, 9}, {54, 9}, {54, 22}, {69, 22},
	}
	danger2 = []point{
		{-89, 9}, {-89, -9}, {-69, -22}, {-54, -22}, {-54, -9},
		{-44, -9}, {-44, 9}, {-54, 9}, {-54, 22}, {-69, 22},
	}
)

// contains reports whether p lies strictly inside the polygon, by ray
// casting toward +x.
func contains(polygon []point, p point) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.y > p.y) != (b.y > p.y) {
			xCross := (b.x-a.x)*(p.y-a.y)/(b.y-a.y) + a.x
			if p.x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// classifyDanger returns the (danger, high_danger) flags for a shot
// location. A high-danger shot is not also danger.
func classifyDanger(x, y float64) (danger, highDanger int) {
	p := point{x, y}

	if contains(danger1, p) || contains(danger2, p) {
		danger = 1
	}
	if contains(highDanger1, p) || contains(highDanger2, p) {
		highDanger = 1
		danger = 0
	}
	return danger, highDanger
}

// shotGeometry computes distance and absolute angle to the nearer goal.
// With mirror set — the long-distance feed artifact where a shot is logged
// from the wrong end of the ice — distance measures to the far goal, and
// the angle keeps the legacy |x+89| denominator so mirrored events stay
// comparable with the historical record.
func shotGeometry(x, y float64, mirror bool) (distance, angle float64) {
	dx := 89 - math.Abs(x)
	angleDx := dx
	if mirror {
		dx = math.Abs(x) + 89
		angleDx = math.Abs(x + 89)
	}

	distance = math.Sqrt(dx*dx + y*y)

	if angleDx == 0 {
		if y == 0 {
			return distance, 0
		}
		return distance, 90
	}
	angle = math.Abs(math.Atan(y/angleDx)) * 180 / math.Pi
	return distance, angle
}
