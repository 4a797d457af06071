package freefall

import "math"

const (
	// Tropopause is the altitude (in m) separating the troposphere from the lower stratosphere.
	Tropopause = 11000.0
	// UpperStratosphereBase is the altitude (in m) above which the upper stratosphere law applies.
	UpperStratosphereBase = 25000.0

	gasConstant   = 0.2869 // kJ/(kg·K), matching the kPa pressure laws
	celsiusOffset = 273.1
	airGamma      = 1.4
	airR          = 287.05 // J/(kg·K)
)

// Layer defines an atmospheric band of the piecewise model.
type Layer uint8

const (
	// Troposphere is below 11 km.
	Troposphere Layer = iota + 1
	// LowerStratosphere is the isothermal band from 11 km to 25 km (both included).
	LowerStratosphere
	// UpperStratosphere is above 25 km.
	UpperStratosphere
)

func (l Layer) String() string {
	switch l {
	case Troposphere:
		return "troposphere"
	case LowerStratosphere:
		return "lower stratosphere"
	case UpperStratosphere:
		return "upper stratosphere"
	}
	panic("cannot stringify unknown atmospheric layer")
}

// LayerAt returns the layer used for the provided altitude.
// Boundary altitudes belong to the lower stratosphere.
func LayerAt(z float64) Layer {
	switch {
	case z > UpperStratosphereBase:
		return UpperStratosphere
	case z <= UpperStratosphereBase && z >= Tropopause:
		return LowerStratosphere
	}
	return Troposphere
}

// Atmosphere is the derived atmospheric state at a given altitude.
// Temperature is in °C, pressure in kPa and density in kg/m^3.
type Atmosphere struct {
	Z     float64
	T     float64
	P     float64
	Rho   float64
	Layer Layer
}

// AtmosphereAt returns the atmospheric state at altitude z (in m) from the NASA Glenn
// piecewise approximation of the standard atmosphere.
// Defined for any z, although results outside [0, 39000] m carry no physical meaning.
func AtmosphereAt(z float64) Atmosphere {
	atm := Atmosphere{Z: z, Layer: LayerAt(z)}
	switch atm.Layer {
	case UpperStratosphere:
		atm.T = -131.21 + 0.00299*z
		atm.P = 2.488 * math.Pow((atm.T+celsiusOffset)/216.6, -11.388)
	case LowerStratosphere:
		atm.T = -56.46
		atm.P = 22.65 * math.Exp(1.73-0.000157*z)
	default:
		atm.T = 15.04 - 0.00649*z
		atm.P = 101.29 * math.Pow((atm.T+celsiusOffset)/288.08, 5.265)
	}
	atm.Rho = atm.P / (gasConstant * (atm.T + celsiusOffset))
	return atm
}

// Density returns the air density (in kg/m^3) at altitude z (in m).
func Density(z float64) float64 {
	return AtmosphereAt(z).Rho
}

// Kelvin returns the absolute temperature.
func (a Atmosphere) Kelvin() float64 {
	return a.T + celsiusOffset
}

// SpeedOfSound returns the speed of sound (in m/s) for this atmospheric state.
func (a Atmosphere) SpeedOfSound() float64 {
	return math.Sqrt(airGamma * airR * a.Kelvin())
}

// Mach returns the Mach number of the provided speed (sign is ignored).
func (a Atmosphere) Mach(speed float64) float64 {
	return math.Abs(speed) / a.SpeedOfSound()
}
