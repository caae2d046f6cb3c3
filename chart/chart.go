// Package chart renders simulated trajectories, as PNG files through
// gonum/plot, as braille canvases for the terminal, and as CSV for
// spreadsheets.
package chart

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Line is one named series to draw.
type Line struct {
	Name string
	T    []float64
	Y    []float64
}

// SavePNG draws the series into a PNG file, creating parent directories as
// needed. Every line gets a legend entry and a distinct color.
func SavePNG(path, title, xlabel, ylabel string, lines ...Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("chart: nothing to draw")
	}
	for _, ln := range lines {
		if len(ln.T) != len(ln.Y) || len(ln.T) == 0 {
			return fmt.Errorf("chart: series %q has mismatched or empty data", ln.Name)
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = cappedTicker(8, "%.3g")
	p.Y.Tick.Marker = cappedTicker(8, "%.3g")
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	args := make([]interface{}, 0, 2*len(lines))
	for _, ln := range lines {
		args = append(args, ln.Name, points(ln.T, ln.Y))
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return savePNG(p, 8, 6, path)
}

func points(t, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(t))
	for i := range pts {
		pts[i].X = t[i]
		pts[i].Y = y[i]
	}
	return pts
}

// cappedTicker labels at most maxLabels evenly spaced ticks so dense grids
// stay readable.
func cappedTicker(maxLabels int, format string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(format, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(format, v)})
		}
		return ticks
	})
}

func savePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chart: cannot create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(300),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: cannot create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		return fmt.Errorf("chart: cannot write %s: %w", path, err)
	}
	return nil
}
