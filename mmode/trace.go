package mmode

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/echosim/catalog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Valve trace image size.
const (
	traceWidth  = 8 * vg.Inch
	traceHeight = 4 * vg.Inch
)

// ValveTrace samples both valve depths over one cardiac cycle. X is the
// phase, Y the normalized depth. samples below 2 are raised to 2.
func ValveTrace(view catalog.View, samples int) (valve1, valve2 plotter.XYs) {
	samples = max(samples, 2)
	valve1 = make(plotter.XYs, samples)
	valve2 = make(plotter.XYs, samples)
	for i := range samples {
		phase := float64(i) / float64(samples-1)
		d1, d2 := ValveDepths(phase, view)
		valve1[i] = plotter.XY{X: phase, Y: d1}
		valve2[i] = plotter.XY{X: phase, Y: d2}
	}
	return valve1, valve2
}

// NewValveTracePlot builds a line chart of ValveTrace for view.
func NewValveTracePlot(view catalog.View, samples int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s valve motion over one cycle", view)
	p.X.Label.Text = "Phase"
	p.Y.Label.Text = "Depth (normalized)"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	v1, v2 := ValveTrace(view, samples)
	for _, s := range []struct {
		name string
		pts  plotter.XYs
		col  color.Color
	}{
		{"valve 1", v1, color.RGBA{R: 60, G: 140, B: 255, A: 255}},
		{"valve 2", v2, color.RGBA{R: 255, G: 80, B: 60, A: 255}},
	} {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return nil, fmt.Errorf("mmode: %s line: %w", s.name, err)
		}
		line.Color = s.col
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// WriteValveTrace renders the valve trace for view as PNG into w.
func WriteValveTrace(w io.Writer, view catalog.View, samples int) error {
	p, err := NewValveTracePlot(view, samples)
	if err != nil {
		return err
	}
	c := vgimg.New(traceWidth, traceHeight)
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("mmode: write valve trace: %w", err)
	}
	return nil
}

// SaveValveTrace writes the valve trace for view to path. The format
// follows the file extension.
func SaveValveTrace(path string, view catalog.View, samples int) error {
	p, err := NewValveTracePlot(view, samples)
	if err != nil {
		return err
	}
	if err := p.Save(traceWidth, traceHeight, path); err != nil {
		return fmt.Errorf("mmode: save valve trace: %w", err)
	}
	return nil
}
