package freefall

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/soniakeys/meeus/v3/julian"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	dateFormat         = "2006-01-02 15:04:05"
	dateFormatFilename = "2006-01-02T15.04.05"
	samplesHeader      = "t,z,vz,pot,kin,mek,fnet,effekt,rho,mach"
)

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename     string
	OutputDir    string // defaults to the output path of the configuration
	RunID        string // written in the file headers when set
	AsCSV        bool
	Trajectory   bool
	Plots        bool
	Summary      bool
	Timestamp    bool
	Epoch        time.Time             // exit date, used to date the trajectory records
	CSVAppend    func(r Record) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string         // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.Trajectory && !c.Plots && !c.Summary
}

// withOutputDir returns a copy of this config whose output directory is set, falling back
// to the output path of the configuration.
func (c ExportConfig) withOutputDir() (ExportConfig, error) {
	if c.OutputDir != "" {
		return c, nil
	}
	conf, err := Config()
	if err != nil {
		return c, err
	}
	c.OutputDir = conf.OutputDir
	return c, nil
}

// path returns the path of an output file of the provided kind.
func (c ExportConfig) path(kind, ext string, now time.Time) string {
	name := fmt.Sprintf("%s-%s", kind, c.Filename)
	if c.Timestamp {
		name += "-" + now.Format(dateFormatFilename)
	}
	return filepath.Join(c.OutputDir, name+"."+ext)
}

// TrajectoryPoint is one line of an xyzv trajectory file.
type TrajectoryPoint struct {
	JD       float64
	Position r3.Vec
	Velocity r3.Vec
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (p *TrajectoryPoint) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	vals := make([]float64, 7)
	for i, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
		vals[i] = val
	}
	p.JD = vals[0]
	p.Position = r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]}
	p.Velocity = r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]}
	return nil
}

// ToText converts to text for written output.
func (p *TrajectoryPoint) ToText() string {
	return fmt.Sprintf("%.8f %f %f %f %f %f %f", p.JD, p.Position.X, p.Position.Y, p.Position.Z, p.Velocity.X, p.Velocity.Y, p.Velocity.Z)
}

// ParseTrajectory reads the records of an xyzv trajectory, skipping the comments.
func ParseTrajectory(r io.Reader) ([]TrajectoryPoint, error) {
	var points []TrajectoryPoint
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var p TrajectoryPoint
		if err := p.FromText(record); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// exportFile is an output file which may be disabled after an IO error.
type exportFile struct {
	f      *os.File
	w      *bufio.Writer
	kind   string
	logger kitlog.Logger
}

func createExportFile(path, kind string, logger kitlog.Logger) *exportFile {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Log("level", "error", "subsys", "export", "kind", kind, "err", err)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Log("level", "error", "subsys", "export", "kind", kind, "err", err)
		return nil
	}
	return &exportFile{f, bufio.NewWriter(f), kind, logger}
}

// write writes the string and returns false if the file had to be disabled.
func (e *exportFile) write(s string) bool {
	if _, err := e.w.WriteString(s); err != nil {
		e.logger.Log("level", "error", "subsys", "export", "kind", e.kind, "err", err)
		e.close()
		return false
	}
	return true
}

func (e *exportFile) close() {
	if err := e.w.Flush(); err != nil {
		e.logger.Log("level", "error", "subsys", "export", "kind", e.kind, "err", err)
	}
	e.f.Close()
}

func fileHeader(conf ExportConfig, now time.Time) string {
	hdr := fmt.Sprintf("# Creation date (UTC): %s\n", now.UTC().Format(dateFormat))
	if conf.RunID != "" {
		hdr += fmt.Sprintf("# Run: %s\n", conf.RunID)
	}
	return hdr
}

// createSamplesFile creates the CSV file of the samples and writes its header.
func createSamplesFile(conf ExportConfig, now time.Time, logger kitlog.Logger) *exportFile {
	e := createExportFile(conf.path("samples", "csv", now), "csv", logger)
	if e == nil {
		return nil
	}
	hdr := fileHeader(conf, now) + "# Units are SI: s, m, m/s, J, N, W, kg/m^3\n" + samplesHeader
	if conf.CSVAppendHdr != nil {
		// Append the headers for the appended columns.
		hdr += "," + conf.CSVAppendHdr()
	}
	if !e.write(hdr) {
		return nil
	}
	return e
}

// createTrajectoryFile creates the xyzv file of the poses and writes its header.
func createTrajectoryFile(conf ExportConfig, now time.Time, logger kitlog.Logger) *exportFile {
	e := createExportFile(conf.path("trajectory", "xyzv", now), "trajectory", logger)
	if e == nil {
		return nil
	}
	hdr := fileHeader(conf, now) + fmt.Sprintf(`# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a Julian date
#   Position in m
#   Velocity in m/s
#   Exit date (UTC): %s`, conf.Epoch.UTC().Format(dateFormat))
	if !e.write(hdr) {
		return nil
	}
	return e
}

func sampleToCSV(r Record) string {
	return fmt.Sprintf("%.3f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.8f,%.6f", r.T, r.Z, r.Vz, r.Potential, r.Kinetic, r.Mechanical, r.NetForce, r.DragPower, r.Density, r.Mach)
}

// StreamRecords streams the output of the channel to the files enabled in the configuration.
// It returns once the channel is closed and all the files are written.
func StreamRecords(conf ExportConfig, recChan <-chan Record, logger kitlog.Logger) {
	conf, err := conf.withOutputDir()
	if err != nil {
		logger.Log("level", "error", "subsys", "export", "message", "export disabled", "err", err)
		for range recChan {
		}
		return
	}
	now := time.Now()
	var fCSV, fTraj *exportFile
	if conf.AsCSV {
		fCSV = createSamplesFile(conf, now, logger)
	}
	if conf.Trajectory {
		fTraj = createTrajectoryFile(conf, now, logger)
	}
	var rec *Recorder
	if conf.Plots || conf.Summary {
		rec = new(Recorder)
	}
	var last *Record

	for r := range recChan {
		last = &r
		if fCSV != nil {
			asTxt := sampleToCSV(r)
			if conf.CSVAppend != nil {
				asTxt += "," + conf.CSVAppend(r)
			}
			if !fCSV.write("\n" + asTxt) {
				fCSV = nil
			}
		}
		if fTraj != nil {
			dt := conf.Epoch.Add(time.Duration(r.T * float64(time.Second)))
			asTxt := TrajectoryPoint{JD: julian.TimeToJD(dt), Position: r.Pos, Velocity: r.Vel}
			if !fTraj.write("\n" + asTxt.ToText()) {
				fTraj = nil
			}
		}
		if rec != nil {
			rec.Sample(r.Sample)
		}
	}

	// The channel is closed, hence the simulation is over.
	end := "\n# Simulation time end: none\n"
	if last != nil {
		end = fmt.Sprintf("\n# Simulation time end: %.3f s\n", last.T)
	}
	if fCSV != nil && fCSV.write(end) {
		fCSV.close()
	}
	if fTraj != nil && fTraj.write(end) {
		fTraj.close()
	}
	if conf.Plots {
		for _, c := range charts(rec) {
			path := conf.path("chart-"+c.name, "png", now)
			if err := c.save(path); err != nil {
				logger.Log("level", "error", "subsys", "export", "kind", "chart", "chart", c.name, "err", err)
			}
		}
	}
	if conf.Summary {
		if err := writeSummary(conf.path("summary", "json", now), Summarize(rec.Samples)); err != nil {
			logger.Log("level", "error", "subsys", "export", "kind", "summary", "err", err)
		}
	}
	logger.Log("level", "info", "subsys", "export", "status", "done", "dir", filepath.Dir(conf.path("x", "x", now)), "files", strings.Join(conf.kinds(), ","))
}

// kinds returns the enabled outputs.
func (c ExportConfig) kinds() []string {
	var kinds []string
	if c.AsCSV {
		kinds = append(kinds, "csv")
	}
	if c.Trajectory {
		kinds = append(kinds, "trajectory")
	}
	if c.Plots {
		kinds = append(kinds, "charts")
	}
	if c.Summary {
		kinds = append(kinds, "summary")
	}
	return kinds
}

func writeSummary(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	marsh, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal summary: %w", err)
	}
	if err := os.WriteFile(path, marsh, 0o644); err != nil {
		return fmt.Errorf("cannot write summary: %w", err)
	}
	return nil
}
