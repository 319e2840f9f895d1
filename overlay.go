package echosim

import (
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// borderColor carries the 0.7 global alpha of the frame layer.
	borderColor = gg.RGBA2(120.0/255, 140.0/255, 170.0/255, 0.5*0.7)
	tickColor   = gg.RGBA2(0x3a/255.0, 0x45/255.0, 0x60/255.0, 0.3)
	tickLabel   = gg.RGBA2(0x9f/255.0, 0xb0/255.0, 0xd0/255.0, 0.9)
	mLineColor  = gg.RGBA2(200.0/255, 230.0/255, 1, 0.5)
)

var tickPrinter = message.NewPrinter(language.English)

// DepthTicks returns one radius per whole centimetre of depth, measured
// from the apex along the calibrated part of the beam.
func DepthTicks(s Sector, depthCm float64) []float64 {
	n := int(math.Floor(depthCm))
	ticks := make([]float64, 0, n)
	for cm := 1; cm <= n; cm++ {
		ticks = append(ticks, float64(cm)/depthCm*s.Radius*calibratedRadiusFrac)
	}
	return ticks
}

// drawSectorFrame outlines the wedge and draws the depth scale.
func (e *Engine) drawSectorFrame(dc *gg.Context, s Sector, depthCm float64) {
	dc.SetLineWidth(1)
	setPaint(dc, borderColor)
	s.appendWedge(dc)
	e.check("stroke border", dc.Stroke())

	if e.smallFace != nil {
		dc.SetFont(e.smallFace)
	}
	for i, r := range DepthTicks(s, depthCm) {
		a, b := s.Polar(s.Start(), r), s.Polar(s.End(), r)
		setPaint(dc, tickColor)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		e.check("stroke depth tick", dc.Stroke())

		if e.smallFace != nil {
			setPaint(dc, tickLabel)
			e.drawSectorString(dc, s, tickPrinter.Sprintf("%d cm", i+1), b.X+4, b.Y+4)
		}
	}
}

// drawMLine draws the dashed M-mode sampling line from the apex.
func (e *Engine) drawMLine(dc *gg.Context, s Sector, fraction float64) {
	end := s.MLineEnd(fraction)
	dc.SetLineWidth(1)
	dc.SetDash(6, 6)
	setPaint(dc, mLineColor)
	dc.DrawLine(s.Apex.X, s.Apex.Y, end.X, end.Y)
	e.check("stroke m-line", dc.Stroke())
	dc.ClearDash()
}

// withSectorClip runs draw with the clip set to the wedge of s.
func withSectorClip(dc *gg.Context, s Sector, draw func()) {
	dc.Push()
	defer dc.Pop()
	s.appendWedge(dc)
	dc.Clip()
	draw()
}

// drawSectorString draws str with its baseline at (x, y) and erases the
// glyph pixels that fall outside the wedge. DrawString rasterizes straight
// into the pixmap and does not honour the clip stack.
func (e *Engine) drawSectorString(dc *gg.Context, s Sector, str string, x, y float64) {
	w, h := dc.MeasureString(str)
	dc.DrawString(str, x, y)
	clearOutside(e.pm, s,
		int(math.Floor(x))-1, int(math.Floor(y-h))-1,
		int(math.Ceil(x+w))+2, int(math.Ceil(y+h/2))+2)
}

// clearOutside makes every pixel of the box [x0,x1) × [y0,y1) whose centre
// lies outside s fully transparent.
func clearOutside(pm *gg.Pixmap, s Sector, x0, y0, x1, y1 int) {
	w, h := pm.Width(), pm.Height()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w), min(y1, h)
	data := pm.Data()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if s.Contains(float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			i := (y*w + x) * 4
			data[i+0], data[i+1], data[i+2], data[i+3] = 0, 0, 0, 0
		}
	}
}
