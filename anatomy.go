package echosim

import (
	"errors"

	"github.com/gogpu/gg"
)

// Chamber is an axis-aligned ellipse in heart-model coordinates.
type Chamber struct {
	X, Y   float64
	RX, RY float64
}

// Layout positions the four chambers for one view and phase.
type Layout struct {
	RV, LV, RA, LA Chamber
}

// layoutPreset adjusts the default layout for a view. base is the
// phase-scaled chamber size.
type layoutPreset func(l *Layout, base float64)

// valveRule draws the valve landmarks for a view.
type valveRule func(dc *gg.Context, l Layout) error

type viewPreset struct {
	layout layoutPreset
	valves valveRule
	// atrialLabels is false for views that cut through the ventricles only.
	atrialLabels bool
}

var viewPresets = map[View]viewPreset{
	ViewPLAX: {layout: func(*Layout, float64) {}, valves: plaxValves, atrialLabels: true},
	ViewPSAX: {layout: psaxLayout, valves: psaxValves, atrialLabels: false},
	ViewA4C:  {layout: a4cLayout, valves: a4cValves, atrialLabels: true},
}

func presetFor(v View) viewPreset {
	if p, ok := viewPresets[v]; ok {
		return p
	}
	return viewPresets[ViewPLAX]
}

// chamberBase is the unscaled chamber size at Beat == 1.
const chamberBase = 70.0

// DepthScale is the heart-model zoom for an imaging depth: 1.2 at 6 cm,
// shrinking as depth increases.
func DepthScale(depthCm float64) float64 {
	return 1.2 / (depthCm / 6)
}

// ChamberLayout returns the chamber ellipses for a view at the given phase.
// Unknown views get the PLAX layout.
func ChamberLayout(view View, phase float64) Layout {
	base := chamberBase * Beat(phase)
	l := Layout{
		RV: Chamber{X: -70, Y: 10, RX: base * 0.7, RY: base * 0.5},
		LV: Chamber{X: 20, Y: 0, RX: base * 0.95, RY: base * 0.65},
		RA: Chamber{X: -80, Y: -60, RX: base * 0.55, RY: base * 0.4},
		LA: Chamber{X: 5, Y: -60, RX: base * 0.6, RY: base * 0.42},
	}
	presetFor(view).layout(&l, base)
	return l
}

func psaxLayout(l *Layout, base float64) {
	l.LV = Chamber{X: 0, Y: 0, RX: base * 0.8, RY: base * 0.8}
	l.RV.X = -l.LV.RX * 1.2
	l.RV.Y = 0
	l.RV.RX = base * 0.6
	l.RV.RY = base * 0.5
	l.RA.RY *= 0.4
	l.LA.RY *= 0.4
}

func a4cLayout(l *Layout, _ float64) {
	l.LV.Y += 10
	l.RV.Y += 10
	l.RA.Y -= 10
	l.LA.Y -= 10
	l.LV.X += 10
	l.RV.X -= 20
}

var (
	myocardiumStroke = gg.RGBA2(200.0/255, 210.0/255, 230.0/255, 0.35)
	cavityFill       = gg.RGBA2(1, 1, 1, 0.03)
	valveStroke      = gg.RGBA2(220.0/255, 230.0/255, 1, 0.35)
	labelColor       = gg.Hex("#c9d3ff")
)

// drawAnatomy draws chambers and valves in heart-model coordinates. The
// caller has already applied the model transform.
func (e *Engine) drawAnatomy(dc *gg.Context, view View, l Layout) {
	dc.SetLineWidth(10)
	for _, ch := range []Chamber{l.LV, l.RV, l.LA, l.RA} {
		dc.DrawEllipse(ch.X, ch.Y, ch.RX, ch.RY)
		setPaint(dc, myocardiumStroke)
		e.check("stroke chamber", dc.StrokePreserve())
		setPaint(dc, cavityFill)
		e.check("fill chamber", dc.Fill())
	}

	dc.SetLineWidth(3)
	setPaint(dc, valveStroke)
	e.check("stroke valves", presetFor(view).valves(dc, l))
}

func plaxValves(dc *gg.Context, l Layout) error {
	return errors.Join(
		// mitral
		strokeLine(dc, l.LV.X-l.LV.RX*0.2, l.LV.Y-l.LV.RY*0.6, l.LA.X+l.LA.RX*0.2, l.LA.Y+l.LA.RY*0.6),
		// tricuspid
		strokeLine(dc, l.RV.X+l.RV.RX*0.2, l.RV.Y-l.RV.RY*0.5, l.RA.X+l.RA.RX*0.5, l.RA.Y+l.RA.RY*0.5),
		// aortic
		strokeCircle(dc, l.LV.X+l.LV.RX*0.9, l.LV.Y-l.LV.RY*0.6, 14),
	)
}

func psaxValves(dc *gg.Context, _ Layout) error {
	// aortic centre, pulmonic anterior
	return errors.Join(
		strokeCircle(dc, 0, 0, 18),
		strokeCircle(dc, 40, -18, 16),
	)
}

func a4cValves(dc *gg.Context, l Layout) error {
	// mitral, tricuspid
	return errors.Join(
		strokeLine(dc, l.LV.X, l.LV.Y-l.LV.RY*0.9, l.LA.X, l.LA.Y+l.LA.RY*0.9),
		strokeLine(dc, l.RV.X, l.RV.Y-l.RV.RY*0.9, l.RA.X, l.RA.Y+l.RA.RY*0.9),
	)
}

// chamberLabels returns label anchors in model coordinates.
func chamberLabels(view View, l Layout) []modelLabel {
	labels := []modelLabel{
		{"LV", l.LV.X - 10, l.LV.Y + 5},
		{"RV", l.RV.X - 10, l.RV.Y + 5},
	}
	if presetFor(view).atrialLabels {
		labels = append(labels,
			modelLabel{"LA", l.LA.X - 10, l.LA.Y + 5},
			modelLabel{"RA", l.RA.X - 10, l.RA.Y + 5},
		)
	}
	return labels
}

type modelLabel struct {
	text string
	x, y float64
}

func strokeLine(dc *gg.Context, x1, y1, x2, y2 float64) error {
	dc.DrawLine(x1, y1, x2, y2)
	return dc.Stroke()
}

func strokeCircle(dc *gg.Context, x, y, r float64) error {
	dc.DrawCircle(x, y, r)
	return dc.Stroke()
}

// modelTransform returns the matrix that maps heart-model coordinates onto
// the surface for a sector and depth.
func modelTransform(s Sector, depthCm float64) gg.Matrix {
	o := s.ViewOrigin()
	k := DepthScale(depthCm)
	return gg.Translate(o.X, o.Y).
		Multiply(gg.Rotate(s.ModelRotation())).
		Multiply(gg.Scale(k, k))
}

// modelToSurface maps a model-space point through m.
func modelToSurface(m gg.Matrix, x, y float64) gg.Point {
	return m.TransformPoint(gg.Pt(x, y))
}
