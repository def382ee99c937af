package gamemath

import "math"

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speedX, friction float64) float64 {
	if speedX > friction {
		return speedX - friction
	}
	if speedX < -friction {
		return speedX + friction
	}
	return 0
}

// FloorDiv divides and rounds toward negative infinity, so positions left of
// or below an origin map to negative cells.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
