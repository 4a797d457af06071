package freefall

import (
	"fmt"
	"strings"
)

const (
	// StandardGravity is the gravitational acceleration (in m/s^2) used by default.
	StandardGravity = 9.81
)

// Skydiver defines the falling body.
type Skydiver struct {
	Name            string
	Mass            float64 // kg
	DragCoefficient float64 // dimensionless
	Area            float64 // cross section in m^2, roughly height times shoulder width
}

// String implements the Stringer interface.
func (s Skydiver) String() string {
	return fmt.Sprintf("%s (m=%.1f kg, D=%.3f, A=%.4f m^2)", s.Name, s.Mass, s.DragCoefficient, s.Area)
}

// Validate returns an error if this skydiver cannot be propagated.
func (s Skydiver) Validate() error {
	if s.Mass <= 0 {
		return fmt.Errorf("%w: skydiver mass must be positive (got %f)", ErrInvalidScenario, s.Mass)
	}
	if s.DragCoefficient < 0 {
		return fmt.Errorf("%w: drag coefficient may not be negative (got %f)", ErrInvalidScenario, s.DragCoefficient)
	}
	if s.Area < 0 {
		return fmt.Errorf("%w: cross section may not be negative (got %f)", ErrInvalidScenario, s.Area)
	}
	return nil
}

// NewSkydiver returns a new skydiver and panics on a non-positive mass, or on a negative
// drag coefficient or cross section.
func NewSkydiver(name string, mass, dragCoeff, area float64) Skydiver {
	s := Skydiver{name, mass, dragCoeff, area}
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

// SkydiverFromString returns the preset skydiver from its name.
func SkydiverFromString(name string) (Skydiver, error) {
	switch strings.ToLower(name) {
	case "felix":
		return Felix, nil
	case "belly":
		return Belly, nil
	default:
		return Skydiver{}, fmt.Errorf("undefined skydiver '%s'", name)
	}
}

/* Definitions */

// Felix is the stratospheric jumper in a pressure suit, falling head first.
var Felix = Skydiver{"Felix", 70, 0.5, 0.8325}

// Belly is the same jumper in a belly-to-earth position.
var Belly = Skydiver{"Belly", 70, 1.0, 0.8325}
