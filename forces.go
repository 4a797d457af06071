package freefall

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Forces defines which forces act on the skydiver during the propagation.
type Forces struct {
	Gravity   float64                          // Gravitational acceleration in m/s^2, along -z
	NoDrag    bool                             // Disables the air drag (vacuum fall)
	Arbitrary func(st State, s Skydiver) r3.Vec // Additional arbitrary force in N
}

// DefaultForces returns standard gravity with air drag.
func DefaultForces() Forces {
	return Forces{Gravity: StandardGravity}
}

// Weight returns the gravitational force acting on the skydiver.
func (f Forces) Weight(s Skydiver) r3.Vec {
	return r3.Scale(-s.Mass*f.Gravity, zHat)
}

// Drag returns the air drag at the provided state.
// NOTE: the drag always points along +z and scales with vz², which only opposes the
// motion while falling. The reference trajectory relies on this exact form.
func (f Forces) Drag(st State, s Skydiver) r3.Vec {
	if f.NoDrag {
		return r3.Vec{}
	}
	vz2 := st.Vel.Z * st.Vel.Z
	return r3.Scale(0.5*s.DragCoefficient*Density(st.Pos.Z)*s.Area*vz2, zHat)
}

// Net returns the sum of all the forces, along with the drag component alone.
func (f Forces) Net(st State, s Skydiver) (net, drag r3.Vec) {
	drag = f.Drag(st, s)
	net = r3.Add(f.Weight(s), drag)
	if f.Arbitrary != nil {
		net = r3.Add(net, f.Arbitrary(st, s))
	}
	return
}
