package freefall

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	black = color.RGBA{A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}
)

// curve is a single line of a chart.
type curve struct {
	label string
	color color.Color
	pts   plotter.XYs
}

// chart is one PNG chart with one or more curves against time.
type chart struct {
	name, title, ylabel string
	curves              []*curve
}

// xys zips the time column with the requested channel of the recorded samples.
func xys(rec *Recorder, channel func(Sample) float64) plotter.XYs {
	ts, ys := rec.Series(channel)
	pts := make(plotter.XYs, len(ts))
	for i := range ts {
		pts[i].X, pts[i].Y = ts[i], ys[i]
	}
	return pts
}

// charts returns the five charts of the recorded jump, the energies sharing a single chart.
func charts(rec *Recorder) []chart {
	single := func(channel func(Sample) float64) []*curve {
		return []*curve{{color: black, pts: xys(rec, channel)}}
	}
	return []chart{
		{"position", "Position vs time", "z (m)", single(func(s Sample) float64 { return s.Z })},
		{"velocity", "Velocity vs time", "vz (m/s)", single(func(s Sample) float64 { return s.Vz })},
		{"energy", "Energy vs time", "E (J)", []*curve{
			{label: "pot", color: blue, pts: xys(rec, func(s Sample) float64 { return s.Potential })},
			{label: "kin", color: red, pts: xys(rec, func(s Sample) float64 { return s.Kinetic })},
			{label: "mek", color: green, pts: xys(rec, func(s Sample) float64 { return s.Mechanical })},
		}},
		{"netforce", "Net force vs time", "Fnet (N)", single(func(s Sample) float64 { return s.NetForce })},
		{"dragpower", "Drag power vs time", "P (W)", single(func(s Sample) float64 { return s.DragPower })},
	}
}

// plot builds the gonum plot of this chart.
func (c chart) plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.title
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = c.ylabel
	p.Add(plotter.NewGrid())
	for _, cv := range c.curves {
		if len(cv.pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(cv.pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = cv.color
		p.Add(line)
		if cv.label != "" {
			p.Legend.Add(cv.label, line)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// save renders this chart as a PNG file.
func (c chart) save(filename string) error {
	p, err := c.plot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	cnv := vgimg.NewWith(vgimg.UseWH(8*vg.Inch, 5*vg.Inch), vgimg.UseDPI(150))
	p.Draw(draw.New(cnv))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: cnv}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
