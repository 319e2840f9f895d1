package mmode

import (
	"math"

	"github.com/gogpu/echosim/catalog"
)

// echo is a gaussian-like bright band at a normalized depth.
type echo struct {
	center    float64
	sharpness float64
	amplitude float64
}

func (p echo) at(d float64) float64 {
	z := (d - p.center) * p.sharpness
	return p.amplitude * math.Exp(-z*z)
}

// caseEcho is an extra echo some cases add, optionally absent in a view.
type caseEcho struct {
	echo
	hiddenIn catalog.View
}

var caseEchoes = map[string][]caseEcho{
	"tof": {{echo: echo{center: 0.2, sharpness: 45, amplitude: 40}}},
	"vsd": {{echo: echo{center: 0.48, sharpness: 55, amplitude: 30}, hiddenIn: catalog.ViewPSAX}},
}

// ValveDepths returns the normalized depths of the two valve echoes at a
// phase. The second valve follows a different curve in PSAX.
func ValveDepths(phase float64, view catalog.View) (valve1, valve2 float64) {
	w := 2 * math.Pi * phase
	valve1 = 0.35 + 0.05*math.Sin(w)
	if view == catalog.ViewPSAX {
		valve2 = 0.55 + 0.06*math.Cos(w*0.9)
	} else {
		valve2 = 0.65 + 0.07*math.Sin(w*1.1+1.2)
	}
	return valve1, valve2
}

// Brightness is the raw echo intensity, before gain, at normalized depth d
// (0 near field, 1 far field).
func Brightness(d, phase float64, view catalog.View, caseID string) float64 {
	v1, v2 := ValveDepths(phase, view)

	b := 10 + 180*(1-d)*(1-d)*0.3
	b += echo{center: v1, sharpness: 60, amplitude: 70}.at(d)
	b += echo{center: v2, sharpness: 65, amplitude: 60}.at(d)
	for _, ce := range caseEchoes[caseID] {
		if ce.hiddenIn != "" && ce.hiddenIn == view {
			continue
		}
		b += ce.at(d)
	}
	return b
}

// Intensity applies gain to Brightness and clamps to a pixel value.
func Intensity(d, phase float64, view catalog.View, caseID string, gain float64) uint8 {
	v := math.Floor(Brightness(d, phase, view, caseID) * gain)
	return uint8(max(0, min(255, v)))
}
