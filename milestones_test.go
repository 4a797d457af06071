package freefall

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func at(t, z, vz float64) State {
	return State{T: t, Pos: r3.Vec{Z: z}, Vel: r3.Vec{Z: vz}}
}

func TestMilestoneI(t *testing.T) {
	_ = []Milestone{LayerCrossing{}, new(SoundBarrier), NewAltitudeMark(0)}
}

func TestLayerCrossing(t *testing.T) {
	m := LayerCrossing{}
	prev, cur := at(1, 25000.5, -10), at(1.1, 24999.5, -10)
	if _, fired := m.Check(prev, prev, AtmosphereAt(prev.Pos.Z)); fired {
		t.Fatal("fired without crossing")
	}
	evt, fired := m.Check(prev, cur, AtmosphereAt(cur.Pos.Z))
	if !fired {
		t.Fatal("did not fire on crossing")
	}
	if evt.T != 1.1 || evt.Z != 24999.5 || evt.Name != "entered lower stratosphere from upper stratosphere" {
		t.Fatalf("invalid event %s", evt)
	}
	// Landing exactly on the boundary is already in the lower stratosphere.
	if _, fired := m.Check(prev, at(1.1, 25000, -10), AtmosphereAt(25000)); !fired {
		t.Fatal("did not fire on the boundary")
	}
	if m.Cleared() || len(m.String()) == 0 {
		t.Fatal("layer crossing is reusable and named")
	}
}

func TestSoundBarrier(t *testing.T) {
	m := new(SoundBarrier)
	atm := AtmosphereAt(30000)
	a := atm.SpeedOfSound()
	if _, fired := m.Check(at(0, 30000, 0), at(1, 30000, -0.9*a), atm); fired {
		t.Fatal("fired while subsonic")
	}
	evt, fired := m.Check(at(1, 30000, -0.9*a), at(2, 30000, -1.1*a), atm)
	if !fired || evt.Name != "went supersonic" {
		t.Fatalf("did not go supersonic: %v %s", fired, evt)
	}
	if _, fired := m.Check(at(2, 30000, -1.1*a), at(3, 30000, -1.2*a), atm); fired {
		t.Fatal("fired twice")
	}
	evt, fired = m.Check(at(3, 30000, -1.2*a), at(4, 30000, -0.5*a), atm)
	if !fired || evt.Name != "went subsonic" {
		t.Fatalf("did not go subsonic: %v %s", fired, evt)
	}
	if m.Cleared() {
		t.Fatal("sound barrier is reusable")
	}
}

func TestAltitudeMark(t *testing.T) {
	m := NewAltitudeMark(1500)
	if m.Cleared() {
		t.Fatal("Milestone was cleared at creation.")
	}
	if _, fired := m.Check(at(0, 2000, 0), at(1, 1500.1, -10), AtmosphereAt(1500.1)); fired {
		t.Fatal("fired too early")
	}
	evt, fired := m.Check(at(1, 1500.1, -10), at(2, 1490, -10), AtmosphereAt(1490))
	if !fired || evt.Name != "passed 1500 m" || evt.T != 2 {
		t.Fatalf("invalid event %s", evt)
	}
	if !m.Cleared() {
		t.Fatal("Milestone was not cleared")
	}
	if _, fired := m.Check(at(2, 1490, -10), at(3, 1480, -10), AtmosphereAt(1480)); fired {
		t.Fatal("fired twice")
	}
	if len(m.String()) == 0 {
		t.Fatal("Milestone string is empty.")
	}
}
