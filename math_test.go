package freefall

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDivide(t *testing.T) {
	v := divide(r3.Vec{X: 1, Y: -2, Z: 0.75}, 3)
	if v.X != 1/3. || v.Y != -2/3. || v.Z != 0.25 {
		t.Fatalf("invalid division %+v", v)
	}
}

func TestFinite(t *testing.T) {
	if !finite(1, -2, 0) {
		t.Fatal("finite values reported as not finite")
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if finite(0, bad, 1) {
			t.Fatalf("%f reported as finite", bad)
		}
	}
}
