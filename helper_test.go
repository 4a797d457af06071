package freefall

import (
	"testing"

	kitlog "github.com/go-kit/log"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()
	f()
}

// quietJump returns a default jump which does not log.
func quietJump(s Skydiver, f Forces, initial State, step, maxTime float64, conf ExportConfig) *Jump {
	j := NewPreciseJump(s, f, initial, step, maxTime, conf)
	j.SetLogger(kitlog.NewNopLogger())
	return j
}
