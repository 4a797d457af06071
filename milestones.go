package freefall

import "fmt"

// Event is a notable moment of the jump.
type Event struct {
	T    float64
	Z    float64
	Name string
}

func (e Event) String() string {
	return fmt.Sprintf("%s @ t=%.1fs z=%.1fm", e.Name, e.T, e.Z)
}

// Milestone defines the Milestone interface. Check is called after every step with the
// states before and after that step, and the atmosphere at the new altitude.
type Milestone interface {
	Check(prev, cur State, atm Atmosphere) (Event, bool)
	Cleared() bool // returns whether this milestone will never fire again
	String() string
}

// LayerCrossing fires every time the skydiver changes atmospheric layer.
type LayerCrossing struct{}

// String implements the Milestone interface.
func (m LayerCrossing) String() string {
	return "Layer crossing."
}

// Cleared implements the Milestone interface.
func (m LayerCrossing) Cleared() bool {
	return false
}

// Check implements the Milestone interface.
func (m LayerCrossing) Check(prev, cur State, atm Atmosphere) (Event, bool) {
	from := LayerAt(prev.Pos.Z)
	if from == atm.Layer {
		return Event{}, false
	}
	return Event{cur.T, cur.Pos.Z, fmt.Sprintf("entered %s from %s", atm.Layer, from)}, true
}

// SoundBarrier fires when the Mach number crosses one, in either direction.
type SoundBarrier struct {
	supersonic bool
}

// String implements the Milestone interface.
func (m *SoundBarrier) String() string {
	return "Sound barrier."
}

// Cleared implements the Milestone interface.
func (m *SoundBarrier) Cleared() bool {
	return false
}

// Check implements the Milestone interface.
func (m *SoundBarrier) Check(prev, cur State, atm Atmosphere) (Event, bool) {
	supersonic := atm.Mach(cur.Vel.Z) >= 1
	if supersonic == m.supersonic {
		return Event{}, false
	}
	m.supersonic = supersonic
	name := "went subsonic"
	if supersonic {
		name = "went supersonic"
	}
	return Event{cur.T, cur.Pos.Z, name}, true
}

// AltitudeMark fires once when descending through a given altitude.
type AltitudeMark struct {
	altitude float64
	cleared  bool
}

// NewAltitudeMark returns a new AltitudeMark at the provided altitude in meters.
func NewAltitudeMark(altitude float64) *AltitudeMark {
	return &AltitudeMark{altitude, false}
}

// String implements the Milestone interface.
func (m *AltitudeMark) String() string {
	return fmt.Sprintf("Pass %.1f m.", m.altitude)
}

// Cleared implements the Milestone interface.
func (m *AltitudeMark) Cleared() bool {
	return m.cleared
}

// Check implements the Milestone interface.
func (m *AltitudeMark) Check(prev, cur State, atm Atmosphere) (Event, bool) {
	if m.cleared || cur.Pos.Z > m.altitude {
		return Event{}, false
	}
	m.cleared = true
	return Event{cur.T, cur.Pos.Z, fmt.Sprintf("passed %.0f m", m.altitude)}, true
}
