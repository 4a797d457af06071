package freefall

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// zHat is the vertical unit vector, positive upward.
var zHat = r3.Vec{X: 0, Y: 0, Z: 1}

// divide returns v/k component-wise (not v·(1/k), which may differ in the last bit).
func divide(v r3.Vec, k float64) r3.Vec {
	return r3.Vec{X: v.X / k, Y: v.Y / k, Z: v.Z / k}
}

// finite returns whether none of the provided values is NaN or infinite.
func finite(vals ...float64) bool {
	return !floats.HasNaN(vals) && !math.IsInf(floats.Max(vals), 1) && !math.IsInf(floats.Min(vals), -1)
}
