package freefall

import (
	"errors"
	"testing"
)

func TestSkydiverFromString(t *testing.T) {
	for _, name := range []string{"felix", "Felix", "BELLY"} {
		if _, err := SkydiverFromString(name); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
	}
	if _, err := SkydiverFromString("icarus"); err == nil {
		t.Fatal("expected an error for an unknown skydiver")
	}
}

func TestSkydiverValidate(t *testing.T) {
	for _, s := range []Skydiver{{"a", 0, 1, 1}, {"b", 70, -1, 1}, {"c", 70, 1, -1}} {
		if err := s.Validate(); !errors.Is(err, ErrInvalidScenario) {
			t.Fatalf("%s: expected an invalid scenario, got %v", s, err)
		}
	}
	if err := Felix.Validate(); err != nil {
		t.Fatal(err)
	}
	assertPanic(t, func() {
		NewSkydiver("ghost", -1, 1, 1)
	})
	assertPanic(t, func() {
		NewSkydiver("ghost", 70, -0.5, 1)
	})
	assertPanic(t, func() {
		NewSkydiver("ghost", 70, 0.5, -1)
	})
	if s := NewSkydiver("x", 80, 0, 0); s.Mass != 80 {
		t.Fatalf("invalid skydiver %s", s)
	}
}
