package freefall

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary gathers the notable figures of a jump.
type Summary struct {
	Steps             int     `json:"steps"`
	EndTime           float64 `json:"end_time_s"` // simulated time of the last sample
	FinalAltitude     float64 `json:"final_altitude_m"`
	PeakSpeed         float64 `json:"peak_speed_mps"`
	PeakSpeedTime     float64 `json:"peak_speed_time_s"`
	PeakSpeedAltitude float64 `json:"peak_speed_altitude_m"`
	MaxMach           float64 `json:"max_mach"`
	MaxDragPower      float64 `json:"max_drag_power_w"`
	MeanDescentRate   float64 `json:"mean_descent_rate_mps"`
	EnergyLost        float64 `json:"mechanical_energy_lost_j"` // between the first and last samples
}

func (s Summary) String() string {
	return fmt.Sprintf("%d steps until t=%.1fs, peak %.1f m/s (Mach %.2f) @ %.0f m, mean descent %.1f m/s", s.Steps, s.EndTime, s.PeakSpeed, s.MaxMach, s.PeakSpeedAltitude, s.MeanDescentRate)
}

// Summarize computes the summary of the provided samples, which must be in chronological order.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	n := len(samples)
	speeds := make([]float64, n)
	descent := make([]float64, n)
	machs := make([]float64, n)
	powers := make([]float64, n)
	for i, s := range samples {
		speeds[i] = math.Abs(s.Vz)
		descent[i] = -s.Vz
		machs[i] = s.Mach
		powers[i] = s.DragPower
	}
	first, last := samples[0], samples[n-1]
	peak := floats.MaxIdx(speeds)
	return Summary{
		Steps:             n,
		EndTime:           last.T,
		FinalAltitude:     last.Z,
		PeakSpeed:         speeds[peak],
		PeakSpeedTime:     samples[peak].T,
		PeakSpeedAltitude: samples[peak].Z,
		MaxMach:           floats.Max(machs),
		MaxDragPower:      floats.Max(powers),
		MeanDescentRate:   stat.Mean(descent, nil),
		EnergyLost:        first.Mechanical - last.Mechanical,
	}
}
