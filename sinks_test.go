package freefall

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRecorderSeries(t *testing.T) {
	rec := new(Recorder)
	rec.Sample(Sample{T: 0.1, Z: 10})
	rec.Sample(Sample{T: 0.2, Z: 9})
	rec.Pose(r3.Vec{Z: 10}, r3.Vec{Z: -1})
	ts, zs := rec.Series(func(s Sample) float64 { return s.Z })
	if len(ts) != 2 || ts[1] != 0.2 || zs[0] != 10 || zs[1] != 9 {
		t.Fatalf("invalid series %v %v", ts, zs)
	}
	if len(rec.Poses) != 1 || rec.Poses[0].Vel.Z != -1 {
		t.Fatal("invalid poses")
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(1000)
	defer p.Stop()
	start := time.Now()
	for i := 0; i < 20; i++ {
		p.Pose(r3.Vec{}, r3.Vec{})
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("pacer did not throttle: %s", elapsed)
	}
	assertPanic(t, func() {
		NewPacer(0)
	})
}
