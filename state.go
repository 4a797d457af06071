package freefall

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// InitialAltitude is the default jump altitude in meters.
	InitialAltitude = 38969.0
	// StepSize is the default time step in seconds.
	StepSize = 0.1
	// MaxTime is the default hard limit on the simulated time in seconds.
	MaxTime = 700.0
)

// State is the simulation state: elapsed time, position and velocity.
// Only the vertical components carry dynamics.
type State struct {
	T   float64
	Pos r3.Vec
	Vel r3.Vec
}

// NewState returns a state at rest at the provided altitude.
func NewState(altitude float64) State {
	return State{Pos: r3.Vec{Z: altitude}}
}

func (s State) String() string {
	return fmt.Sprintf("t=%.1fs z=%.3fm vz=%.3fm/s", s.T, s.Pos.Z, s.Vel.Z)
}

// Sample stores the diagnostics of a single step.
type Sample struct {
	T          float64 // elapsed time (s)
	Z          float64 // altitude (m)
	Vz         float64 // vertical velocity (m/s)
	Potential  float64 // J
	Kinetic    float64 // J
	Mechanical float64 // J, always Potential+Kinetic
	NetForce   float64 // vertical net force (N)
	DragPower  float64 // W
	Density    float64 // air density where the drag was computed (kg/m^3)
	Mach       float64 // Mach number at the new state
}

// Step advances the state by dt with the semi-implicit Euler (Euler-Cromer) method and
// returns the new state along with the diagnostics computed from it.
// The velocity is updated first and the position uses the updated velocity.
func Step(st State, s Skydiver, f Forces, dt float64) (State, Sample) {
	rho := Density(st.Pos.Z)
	next := st
	next.T += dt
	net, drag := f.Net(st, s)
	prev := st.Pos
	next.Vel = r3.Add(st.Vel, r3.Scale(dt, divide(net, s.Mass)))
	next.Pos = r3.Add(st.Pos, r3.Scale(dt, next.Vel))

	pot := s.Mass * f.Gravity * next.Pos.Z
	vz2 := next.Vel.Z * next.Vel.Z
	kin := 0.5 * s.Mass * vz2
	ds := prev.Z - next.Pos.Z
	return next, Sample{
		T:          next.T,
		Z:          next.Pos.Z,
		Vz:         next.Vel.Z,
		Potential:  pot,
		Kinetic:    kin,
		Mechanical: pot + kin,
		NetForce:   net.Z,
		DragPower:  drag.Z * ds / dt,
		Density:    rho,
		Mach:       AtmosphereAt(next.Pos.Z).Mach(next.Vel.Z),
	}
}
