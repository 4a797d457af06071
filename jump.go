package freefall

import (
	"fmt"
	"os"
	"sync"

	kitlog "github.com/go-kit/log"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// statusEvery is the simulated duration (in s) between two status log lines.
	statusEvery = 60.0
)

// TerminalReason defines why a jump stopped.
type TerminalReason uint8

const (
	// Running means the jump has not stopped yet.
	Running TerminalReason = iota
	// MaxTimeReached means the simulated time hit its hard limit.
	MaxTimeReached
	// GroundReached means the altitude became negative.
	GroundReached
	// Interrupted means StopPropagation was called.
	Interrupted
)

func (r TerminalReason) String() string {
	switch r {
	case Running:
		return "running"
	case MaxTimeReached:
		return "max time reached"
	case GroundReached:
		return "ground reached"
	case Interrupted:
		return "interrupted"
	}
	panic("cannot stringify unknown terminal reason")
}

// Jump owns the state of a free fall and propagates it.
type Jump struct {
	Diver      Skydiver
	Forces     Forces
	state      State
	step       float64 // time step in seconds
	maxTime    float64 // hard limit in seconds
	poses      []PoseSink
	samples    []SampleSink
	milestones []Milestone
	events     []Event
	export     ExportConfig
	histChan   chan<- Record
	stopChan   chan bool
	wg         sync.WaitGroup
	logger     kitlog.Logger
	reason     TerminalReason
	steps      uint64
	diverged   bool
}

// NewJump is the same as NewPreciseJump with the default step size and time limit.
func NewJump(s Skydiver, f Forces, initial State, conf ExportConfig) *Jump {
	return NewPreciseJump(s, f, initial, StepSize, MaxTime, conf)
}

// NewPreciseJump returns a new Jump with a custom time step and time limit (both in seconds).
func NewPreciseJump(s Skydiver, f Forces, initial State, step, maxTime float64, conf ExportConfig) *Jump {
	if step <= 0 {
		panic("time step must be positive")
	}
	if err := s.Validate(); err != nil {
		panic(err)
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "jump", s.Name)
	j := &Jump{Diver: s, Forces: f, state: initial, step: step, maxTime: maxTime, export: conf, stopChan: make(chan bool, 1), logger: klog}
	if maxTime <= initial.T {
		j.logger.Log("level", "warning", "subsys", "jump", "message", "time limit already reached", "t", initial.T, "max", maxTime)
	}
	return j
}

// SetLogger replaces the logger of this jump.
func (j *Jump) SetLogger(l kitlog.Logger) {
	j.logger = l
}

// AddPoseSink adds a sink which receives the pose after every step.
func (j *Jump) AddPoseSink(p PoseSink) {
	if p == nil {
		panic("pose sink may not be nil")
	}
	j.poses = append(j.poses, p)
}

// AddSampleSink adds a sink which receives the diagnostics after every step.
func (j *Jump) AddSampleSink(s SampleSink) {
	if s == nil {
		panic("sample sink may not be nil")
	}
	j.samples = append(j.samples, s)
}

// AttachRecorder adds the provided recorder as both a pose and a sample sink.
func (j *Jump) AttachRecorder(r *Recorder) {
	j.AddPoseSink(r)
	j.AddSampleSink(r)
}

// AddMilestone adds a milestone to check after every step.
func (j *Jump) AddMilestone(m Milestone) {
	j.milestones = append(j.milestones, m)
}

// State returns a copy of the current state.
func (j *Jump) State() State {
	return j.state
}

// Reason returns why the jump stopped, or Running.
func (j *Jump) Reason() TerminalReason {
	return j.reason
}

// Steps returns the number of steps performed.
func (j *Jump) Steps() uint64 {
	return j.steps
}

// Events returns the events fired by the milestones so far.
func (j *Jump) Events() []Event {
	return j.events
}

// LogStatus logs the current state of the jump.
func (j *Jump) LogStatus() {
	atm := AtmosphereAt(j.state.Pos.Z)
	j.logger.Log("level", "info", "subsys", "jump", "t(s)", fmt.Sprintf("%.1f", j.state.T), "z(m)", fmt.Sprintf("%.1f", j.state.Pos.Z), "vz(m/s)", fmt.Sprintf("%.2f", j.state.Vel.Z), "mach", fmt.Sprintf("%.3f", atm.Mach(j.state.Vel.Z)), "layer", atm.Layer)
}

// Propagate steps the jump until it stops, and returns why it stopped.
// Calling Propagate on a stopped jump returns immediately.
func (j *Jump) Propagate() TerminalReason {
	if j.reason != Running {
		return j.reason
	}
	if !j.export.IsUseless() {
		conf, err := j.export.withOutputDir()
		if err != nil {
			j.logger.Log("level", "error", "subsys", "export", "message", "export disabled", "err", err)
			conf = ExportConfig{}
		}
		j.export = conf
	}
	if !j.export.IsUseless() {
		histChan := make(chan Record, 1000) // a 1k entry buffer
		j.histChan = histChan
		j.wg.Add(1)
		go func() {
			defer j.wg.Done()
			StreamRecords(j.export, histChan, j.logger)
		}()
	}
	j.LogStatus()
	vInit := j.state.Vel.Z
	nextStatus := j.state.T + statusEvery
	for {
		if j.reason = j.stop(); j.reason != Running {
			break
		}
		j.advance()
		if j.state.T >= nextStatus {
			j.LogStatus()
			nextStatus += statusEvery
		}
	}
	if j.histChan != nil {
		close(j.histChan)
		j.histChan = nil
	}
	j.wg.Wait() // Don't return until we're done writing all the files.
	j.logger.Log("level", "notice", "subsys", "jump", "status", "finished", "reason", j.reason, "steps", j.steps, "Δv(m/s)", fmt.Sprintf("%.3f", j.state.Vel.Z-vInit))
	j.LogStatus()
	return j.reason
}

// StopPropagation requests the propagation to stop before the next step.
func (j *Jump) StopPropagation() {
	select {
	case j.stopChan <- true:
	default:
		// A stop is already pending.
	}
}

// stop returns the reason to stop before the next step, or Running.
// A NaN altitude stops the jump as if the ground were reached.
func (j *Jump) stop() TerminalReason {
	select {
	case <-j.stopChan:
		return Interrupted
	default:
	}
	if !(j.state.Pos.Z >= 0) {
		return GroundReached
	}
	if j.state.T >= j.maxTime {
		return MaxTimeReached
	}
	return Running
}

// advance performs one step and notifies the milestones and sinks.
func (j *Jump) advance() {
	prev := j.state
	next, sample := Step(prev, j.Diver, j.Forces, j.step)
	j.state = next
	j.steps++

	if !j.diverged && !finite(next.Pos.Z, next.Vel.Z, sample.NetForce, sample.DragPower) {
		j.diverged = true
		j.logger.Log("level", "critical", "subsys", "jump", "diverged", next, "fnet", sample.NetForce, "power", sample.DragPower)
	}

	atm := AtmosphereAt(next.Pos.Z)
	for _, m := range j.milestones {
		if m.Cleared() {
			continue
		}
		if evt, fired := m.Check(prev, next, atm); fired {
			j.events = append(j.events, evt)
			j.logger.Log("level", "info", "subsys", "jump", "event", evt.Name, "t(s)", fmt.Sprintf("%.1f", evt.T), "z(m)", fmt.Sprintf("%.1f", evt.Z))
		}
	}

	for _, p := range j.poses {
		p.Pose(next.Pos, next.Vel)
	}
	for _, s := range j.samples {
		s.Sample(sample)
	}
	if j.histChan != nil {
		j.histChan <- Record{sample, next.Pos, next.Vel}
	}
}

// Record is what gets streamed to the exporter after each step.
type Record struct {
	Sample
	Pos, Vel r3.Vec
}
