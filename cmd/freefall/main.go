package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Mekanikk-H2021/freefall"
	kitlog "github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// This code reads the scenario, runs the jump and logs its summary.

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario string
	headless bool
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "jump scenario TOML file (defaults to the historical jump)")
	flag.BoolVar(&headless, "headless", false, "ignore the pacing of the scenario")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Populates FREEFALL_CONFIG if a .env file is around.
	_ = godotenv.Load()

	runID := uuid.New().String()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "run", runID)

	sc, err := loadScenario(scenario)
	if err != nil {
		logger.Log("level", "critical", "subsys", "config", "scenario", scenario, "err", err)
		os.Exit(1)
	}
	sc.Export.RunID = runID
	if verbose {
		logger.Log("level", "debug", "subsys", "config", "skydiver", sc.Diver, "altitude", sc.Altitude, "step", sc.Step, "max_time", sc.MaxTime, "milestones", len(sc.Milestones), "pace", sc.Pace)
	}
	os.Exit(exitCode(run(sc, logger)))
}

// run propagates the jump of the scenario until it stops, and logs its events and summary.
func run(sc freefall.Scenario, logger kitlog.Logger) freefall.TerminalReason {
	jump := sc.NewJump()
	jump.SetLogger(kitlog.With(logger, "jump", sc.Diver.Name))
	rec := new(freefall.Recorder)
	jump.AddSampleSink(rec)
	if sc.Pace > 0 && !headless {
		pacer := freefall.NewPacer(sc.Pace)
		defer pacer.Stop()
		jump.AddPoseSink(pacer)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		if _, ok := <-sigChan; ok {
			logger.Log("level", "warning", "subsys", "jump", "message", "interrupt received, stopping")
			jump.StopPropagation()
		}
	}()

	reason := jump.Propagate()
	signal.Stop(sigChan)
	close(sigChan)

	for _, evt := range jump.Events() {
		logger.Log("level", "info", "subsys", "jump", "event", evt)
	}
	logger.Log("level", "notice", "subsys", "jump", "reason", reason, "summary", freefall.Summarize(rec.Samples))
	return reason
}

// exitCode returns the process exit code for the provided terminal reason.
func exitCode(reason freefall.TerminalReason) int {
	if reason == freefall.Interrupted {
		return 2
	}
	return 0
}

// loadScenario reads the provided scenario file, or returns the default one.
func loadScenario(name string) (freefall.Scenario, error) {
	if name == defaultScenario {
		sc := freefall.DefaultScenario()
		sc.Milestones = []freefall.Milestone{freefall.LayerCrossing{}, new(freefall.SoundBarrier)}
		return sc, nil
	}
	v := viper.New()
	v.SetConfigFile(name)
	if !strings.HasSuffix(name, ".toml") {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return freefall.Scenario{}, fmt.Errorf("%s: %w", name, err)
	}
	return freefall.ReadScenario(v)
}
