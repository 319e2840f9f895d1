package echosim

import (
	"math"

	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/gg"
)

// Jet colours. Toward the probe is blue, away from it is red.
var (
	jetToward = [3]float64{60, 140, 255}
	jetAway   = [3]float64{255, 80, 60}
)

// jetPathRule generates a jet polyline in heart-model coordinates.
// t is elapsed seconds and drives the wobble.
type jetPathRule struct {
	points int
	at     func(i int, t float64) gg.Point
}

var jetPaths = map[catalog.FlowType]jetPathRule{
	catalog.FlowVSD: {points: 20, at: func(i int, t float64) gg.Point {
		fi := float64(i)
		return gg.Pt(-20+fi*8, -5+math.Sin(fi*0.6+t*4)*4)
	}},
	catalog.FlowPDA: {points: 25, at: func(i int, t float64) gg.Point {
		fi := float64(i)
		return gg.Pt(70+fi*3, -80+math.Sin(fi*0.4+t*6)*6)
	}},
	catalog.FlowRVOTObs: {points: 18, at: func(i int, t float64) gg.Point {
		fi := float64(i)
		return gg.Pt(40+fi*5, -20-fi*1.2+math.Sin(fi*0.5+t*5)*2)
	}},
	catalog.FlowCoarc: {points: 30, at: func(i int, t float64) gg.Point {
		fi := float64(i)
		return gg.Pt(90+fi*2.2, -70+math.Sin(fi*0.5+t*5)*3)
	}},
}

// JetPath returns the polyline for a flow type at elapsed seconds t.
// Unknown types yield nil.
func JetPath(ft catalog.FlowType, t float64) []gg.Point {
	rule, ok := jetPaths[ft]
	if !ok {
		return nil
	}
	pts := make([]gg.Point, rule.points)
	for i := range pts {
		pts[i] = rule.at(i, t)
	}
	return pts
}

// JetSegment is the paint for one segment of a jet.
type JetSegment struct {
	Color gg.RGBA
	Width float64
}

// JetSegmentStyle returns colour and stroke width for segment i of a jet.
// Opacity is 0.2 + 0.5·strength; width is 6·strength·(0.5 + 0.5·sin(6·phase + i)).
func JetSegmentStyle(dir catalog.ColorDirection, strength, phase float64, i int) JetSegment {
	rgb := jetAway
	switch dir {
	case catalog.TowardProbe:
		rgb = jetToward
	case catalog.Bidirectional:
		if i%2 == 0 {
			rgb = jetToward
		}
	}
	return JetSegment{
		Color: gg.RGBA2(rgb[0]/255, rgb[1]/255, rgb[2]/255, 0.2+0.5*strength),
		Width: 6 * strength * (0.5 + 0.5*math.Sin(phase*6+float64(i))),
	}
}

// drawFlows draws every flow of c scoped to view. The model transform is
// already applied. No matching flows is a no-op.
func (e *Engine) drawFlows(dc *gg.Context, c *catalog.Case, view View, phase, t float64) {
	for _, f := range c.FlowsFor(view) {
		pts := JetPath(f.Type, t)
		for i := 0; i+1 < len(pts); i++ {
			st := JetSegmentStyle(f.Direction, f.Strength, phase, i)
			if st.Width <= 0 {
				continue
			}
			setPaint(dc, st.Color)
			dc.SetLineWidth(st.Width)
			dc.DrawLine(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y)
			e.check("stroke jet", dc.Stroke())
		}
	}
}
