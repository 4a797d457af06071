package freefall

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

// ErrInvalidScenario is returned when a scenario cannot be propagated.
var ErrInvalidScenario = errors.New("invalid scenario")

// J2000 is the default exit date of a scenario.
var J2000 = julian.JDToTime(2451545.0)

// Scenario defines everything needed to run a jump.
type Scenario struct {
	Diver      Skydiver
	Forces     Forces
	Altitude   float64 // m
	Step       float64 // s
	MaxTime    float64 // s
	Milestones []Milestone
	Export     ExportConfig
	Pace       float64 // steps per wall-clock second, zero to run as fast as possible
}

// DefaultScenario returns the historical stratospheric jump.
func DefaultScenario() Scenario {
	return Scenario{
		Diver:    Felix,
		Forces:   DefaultForces(),
		Altitude: InitialAltitude,
		Step:     StepSize,
		MaxTime:  MaxTime,
		Export:   ExportConfig{Filename: "felix", Epoch: J2000},
	}
}

// Validate returns an error wrapping ErrInvalidScenario if this scenario cannot be run.
func (s Scenario) Validate() error {
	if err := s.Diver.Validate(); err != nil {
		return err
	}
	if s.Step <= 0 {
		return fmt.Errorf("%w: time step must be positive (got %f)", ErrInvalidScenario, s.Step)
	}
	if s.MaxTime <= 0 {
		return fmt.Errorf("%w: max time must be positive (got %f)", ErrInvalidScenario, s.MaxTime)
	}
	if !finite(s.Altitude, s.Forces.Gravity) {
		return fmt.Errorf("%w: altitude and gravity must be finite", ErrInvalidScenario)
	}
	if s.Pace < 0 {
		return fmt.Errorf("%w: pacing rate may not be negative (got %f)", ErrInvalidScenario, s.Pace)
	}
	return nil
}

// NewJump returns the jump of this scenario, with its milestones.
func (s Scenario) NewJump() *Jump {
	j := NewPreciseJump(s.Diver, s.Forces, NewState(s.Altitude), s.Step, s.MaxTime, s.Export)
	for _, m := range s.Milestones {
		j.AddMilestone(m)
	}
	return j
}

// ReadScenario reads a scenario from the provided viper instance, starting from the
// default scenario for any unset key.
func ReadScenario(v *viper.Viper) (Scenario, error) {
	s := DefaultScenario()

	// Skydiver
	if v.IsSet("skydiver.preset") {
		preset, err := SkydiverFromString(v.GetString("skydiver.preset"))
		if err != nil {
			return s, fmt.Errorf("%w: %s", ErrInvalidScenario, err)
		}
		s.Diver = preset
	}
	if v.IsSet("skydiver.name") {
		s.Diver.Name = v.GetString("skydiver.name")
	}
	if v.IsSet("skydiver.mass") {
		s.Diver.Mass = v.GetFloat64("skydiver.mass")
	}
	if v.IsSet("skydiver.drag") {
		s.Diver.DragCoefficient = v.GetFloat64("skydiver.drag")
	}
	if v.IsSet("skydiver.area") {
		s.Diver.Area = v.GetFloat64("skydiver.area")
	}

	// Jump
	if v.IsSet("jump.altitude") {
		s.Altitude = v.GetFloat64("jump.altitude")
	}
	if v.IsSet("jump.step") {
		s.Step = v.GetFloat64("jump.step")
	}
	if v.IsSet("jump.max_time") {
		s.MaxTime = v.GetFloat64("jump.max_time")
	}
	if v.IsSet("jump.gravity") {
		s.Forces.Gravity = v.GetFloat64("jump.gravity")
	}
	s.Forces.NoDrag = v.GetBool("jump.vacuum")
	if v.IsSet("jump.epoch") {
		s.Export.Epoch = readJDEorTime(v, "jump.epoch")
	}

	// Milestones
	if v.GetBool("milestones.layers") {
		s.Milestones = append(s.Milestones, LayerCrossing{})
	}
	if v.GetBool("milestones.sound_barrier") {
		s.Milestones = append(s.Milestones, new(SoundBarrier))
	}
	for i, alt := range v.GetStringSlice("milestones.altitudes") {
		z, err := strconv.ParseFloat(alt, 64)
		if err != nil {
			return s, fmt.Errorf("%w: milestones.altitudes[%d]: %s", ErrInvalidScenario, i, err)
		}
		s.Milestones = append(s.Milestones, NewAltitudeMark(z))
	}

	// Export
	if v.IsSet("export.filename") {
		s.Export.Filename = v.GetString("export.filename")
	} else {
		s.Export.Filename = s.Diver.Name
	}
	s.Export.OutputDir = v.GetString("export.output_path")
	s.Export.AsCSV = v.GetBool("export.csv")
	s.Export.Trajectory = v.GetBool("export.trajectory")
	s.Export.Plots = v.GetBool("export.plots")
	s.Export.Summary = v.GetBool("export.summary")
	s.Export.Timestamp = v.GetBool("export.timestamp")

	// Pacing
	if v.GetBool("pace.enabled") {
		s.Pace = 100 / s.Step
		if v.IsSet("pace.rate") {
			s.Pace = v.GetFloat64("pace.rate")
		}
	}

	return s, s.Validate()
}

// readJDEorTime reads a date either as a Julian date or as a time.
func readJDEorTime(v *viper.Viper, key string) (dt time.Time) {
	jde := v.GetFloat64(key)
	if jde == 0 {
		dt = v.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}
