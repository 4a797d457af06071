package freefall

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// PoseSink receives the pose of the moving body once per step.
type PoseSink interface {
	Pose(pos, vel r3.Vec)
}

// SampleSink receives the diagnostics once per step.
type SampleSink interface {
	Sample(s Sample)
}

// Pose is a recorded pose.
type Pose struct {
	Pos, Vel r3.Vec
}

// Recorder is an in-memory PoseSink and SampleSink, mostly useful for headless runs and tests.
type Recorder struct {
	Poses   []Pose
	Samples []Sample
}

// Pose implements the PoseSink interface.
func (r *Recorder) Pose(pos, vel r3.Vec) {
	r.Poses = append(r.Poses, Pose{pos, vel})
}

// Sample implements the SampleSink interface.
func (r *Recorder) Sample(s Sample) {
	r.Samples = append(r.Samples, s)
}

// Series returns the time column and the requested channel of the recorded samples.
func (r *Recorder) Series(channel func(Sample) float64) (ts, ys []float64) {
	ts = make([]float64, len(r.Samples))
	ys = make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		ts[i] = s.T
		ys[i] = channel(s)
	}
	return
}

// Pacer is a PoseSink which blocks so that at most Rate poses are accepted per wall-clock second.
// Call Stop once done.
type Pacer struct {
	ticker *time.Ticker
}

// NewPacer returns a new Pacer. The historical animation ran at 100 times real time, i.e.
// a rate of 100/dt steps per second.
func NewPacer(rate float64) *Pacer {
	if rate <= 0 {
		panic("pacing rate must be positive")
	}
	return &Pacer{time.NewTicker(time.Duration(float64(time.Second) / rate))}
}

// Pose implements the PoseSink interface.
func (p *Pacer) Pose(_, _ r3.Vec) {
	<-p.ticker.C
}

// Stop releases the ticker.
func (p *Pacer) Stop() {
	p.ticker.Stop()
}
