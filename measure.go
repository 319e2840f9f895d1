package echosim

import (
	"github.com/gogpu/gg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
)

// Measurement is a completed two-point distance.
type Measurement struct {
	DistanceMm float64
	// PxPerMm is the calibration scale the distance was computed with.
	PxPerMm float64
}

// MeasurementHandler receives completed measurements. A nil argument means
// the previous measurement is no longer valid.
type MeasurementHandler func(m *Measurement)

// Calibrate converts a pixel distance to millimetres for a sector radius and
// depth: pxPerMm = (radius·0.8 / depthCm) / 10. ok is false when radius or
// depth give no usable scale.
func Calibrate(pixelDist, radius, depthCm float64) (m Measurement, ok bool) {
	if !(radius > 0) || !(depthCm > 0) {
		return Measurement{}, false
	}
	pxPerMm := radius * calibratedRadiusFrac / depthCm / 10
	return Measurement{DistanceMm: pixelDist / pxPerMm, PxPerMm: pxPerMm}, true
}

// Calibrator collects two-point measurements in surface pixels.
//
// A third click starts a new pair. Any depth change drops pending points and
// retracts the last measurement, because the scale depends on depth.
// View and angle changes do not clear state.
type Calibrator struct {
	points  []gg.Point
	last    *Measurement
	depthCm float64
	handler MeasurementHandler
	printer *message.Printer
}

// NewCalibrator returns an empty calibrator reporting to h (may be nil).
func NewCalibrator(h MeasurementHandler) *Calibrator {
	return &Calibrator{
		points:  make([]gg.Point, 0, 2),
		handler: h,
		printer: message.NewPrinter(language.English),
	}
}

// SetHandler replaces the measurement handler.
func (c *Calibrator) SetHandler(h MeasurementHandler) {
	c.handler = h
}

// ObserveDepth records the current depth. A change from the previously
// observed depth clears pending points and emits a nil measurement if one
// had been reported. It reports whether state was cleared.
func (c *Calibrator) ObserveDepth(depthCm float64) bool {
	if c.depthCm == depthCm {
		return false
	}
	first := c.depthCm == 0
	c.depthCm = depthCm
	if first {
		return false
	}
	c.points = c.points[:0]
	if c.last != nil {
		c.last = nil
		c.emit(nil)
	}
	return true
}

// Click adds a point. On the second point it computes and reports the
// measurement, which is also returned. Clicks on a sector without a scale
// (zero radius) are dropped.
func (c *Calibrator) Click(p gg.Point, s Sector, depthCm float64) *Measurement {
	if !(s.Radius > 0) {
		return nil
	}
	c.ObserveDepth(depthCm)
	if len(c.points) == 2 {
		c.points = c.points[:0]
	}
	c.points = append(c.points, p)
	if len(c.points) < 2 {
		return nil
	}
	a, b := c.points[0], c.points[1]
	d := floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
	m, ok := Calibrate(d, s.Radius, depthCm)
	if !ok {
		return nil
	}
	c.last = &m
	c.emit(&m)
	return &m
}

// Points returns a copy of the pending points.
func (c *Calibrator) Points() []gg.Point {
	return append([]gg.Point(nil), c.points...)
}

// Last returns the most recent reported measurement.
func (c *Calibrator) Last() (Measurement, bool) {
	if c.last == nil {
		return Measurement{}, false
	}
	return *c.last, true
}

// Reset drops points and the last measurement, emitting nil if needed.
func (c *Calibrator) Reset() {
	c.points = c.points[:0]
	if c.last != nil {
		c.last = nil
		c.emit(nil)
	}
}

// Label formats a distance for the overlay.
func (c *Calibrator) Label(m Measurement) string {
	return c.printer.Sprintf("%.1f mm", m.DistanceMm)
}

func (c *Calibrator) emit(m *Measurement) {
	if c.handler != nil {
		c.handler(m)
	}
}

var measureColor = gg.Hex("#ffd166")

const markerRadius = 4.0

// drawMeasurement renders pending markers, the connecting segment and the
// distance label in surface coordinates.
func (e *Engine) drawMeasurement(dc *gg.Context, s Sector, depthCm float64) {
	pts := e.calib.points
	if len(pts) == 0 {
		return
	}
	setPaint(dc, measureColor)
	if len(pts) == 2 {
		dc.SetLineWidth(2)
		dc.DrawLine(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		e.check("stroke caliper", dc.Stroke())
	}
	for _, p := range pts {
		dc.DrawCircle(p.X, p.Y, markerRadius)
		e.check("fill marker", dc.Fill())
	}
	if len(pts) == 2 && e.face != nil {
		a, b := pts[0], pts[1]
		m, ok := Calibrate(floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2), s.Radius, depthCm)
		if !ok {
			return
		}
		dc.SetFont(e.face)
		e.drawSectorString(dc, s, e.calib.Label(m), (a.X+b.X)/2+6, (a.Y+b.Y)/2-6)
	}
}
