package freefall

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestDensityPositive(t *testing.T) {
	for _, z := range []float64{0, 5000, 11000, 25000, 30000, 38969} {
		if rho := Density(z); rho <= 0 {
			t.Fatalf("non positive density at %.0f m: %f", z, rho)
		}
	}
}

func TestDensityReference(t *testing.T) {
	testValues := []struct {
		z, rho float64
	}{
		{0, 1.2266160864358853},
		{5000, 0.7368831434448192},
		{11000, 0.36551221448025967},
		{25000, 0.04058098865383487},
		{30000, 0.017476294969070136},
	}
	for _, test := range testValues {
		if rho := Density(test.z); !scalar.EqualWithinRel(rho, test.rho, 1e-12) {
			t.Fatalf("invalid density at %.0f m: %.16f != %.16f", test.z, rho, test.rho)
		}
	}
}

func TestDensitySeams(t *testing.T) {
	for _, seam := range []float64{Tropopause, UpperStratosphereBase} {
		if diff := math.Abs(Density(seam-0.1) - Density(seam+0.1)); diff >= 0.01 {
			t.Fatalf("density discontinuity at %.0f m: %f", seam, diff)
		}
	}
}

func TestLayerBoundaries(t *testing.T) {
	testValues := []struct {
		z     float64
		layer Layer
	}{
		{-100, Troposphere},
		{0, Troposphere},
		{10999.999, Troposphere},
		{Tropopause, LowerStratosphere},
		{18000, LowerStratosphere},
		{UpperStratosphereBase, LowerStratosphere},
		{25000.001, UpperStratosphere},
		{InitialAltitude, UpperStratosphere},
	}
	for _, test := range testValues {
		if layer := LayerAt(test.z); layer != test.layer {
			t.Fatalf("%.3f m: got %s expected %s", test.z, layer, test.layer)
		}
		if atm := AtmosphereAt(test.z); atm.Layer != test.layer {
			t.Fatalf("%.3f m: atmosphere in %s expected %s", test.z, atm.Layer, test.layer)
		}
	}
	// The isothermal band keeps its temperature up to and including both boundaries.
	if AtmosphereAt(Tropopause).T != -56.46 || AtmosphereAt(UpperStratosphereBase).T != -56.46 {
		t.Fatal("boundaries do not use the lower stratosphere law")
	}
}

func TestDensityIdempotent(t *testing.T) {
	for z := -500.0; z <= 40000; z += 123.4 {
		if a, b := Density(z), Density(z); math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("density not bit identical at %f: %v != %v", z, a, b)
		}
	}
}

func TestSpeedOfSound(t *testing.T) {
	if a := AtmosphereAt(0).SpeedOfSound(); !scalar.EqualWithinAbs(a, 340.3, 0.5) {
		t.Fatalf("invalid speed of sound at sea level: %f", a)
	}
	atm := AtmosphereAt(18000)
	if !scalar.EqualWithinAbs(atm.Mach(-atm.SpeedOfSound()), 1, 1e-12) {
		t.Fatal("Mach must ignore the sign of the speed")
	}
	if atm.Kelvin() != atm.T+273.1 {
		t.Fatal("invalid absolute temperature")
	}
}

func TestLayerString(t *testing.T) {
	for _, l := range []Layer{Troposphere, LowerStratosphere, UpperStratosphere} {
		if len(l.String()) == 0 {
			t.Fatalf("empty name for layer %d", l)
		}
	}
	assertPanic(t, func() {
		_ = Layer(0).String()
	})
}
