package echosim

import (
	"math"

	"github.com/gogpu/echosim/catalog"
)

// View is an anatomic imaging plane. See catalog.View.
type View = catalog.View

// Supported views.
const (
	ViewPLAX = catalog.ViewPLAX
	ViewPSAX = catalog.ViewPSAX
	ViewA4C  = catalog.ViewA4C
)

// DefaultHeartRate applies to cases without a heart rate.
const DefaultHeartRate = catalog.DefaultHeartRate

// ViewState limits. Values outside these ranges are clamped, never rejected.
const (
	MinDepthCm = 4.0
	MaxDepthCm = 12.0

	MinGain = 0.5
	MaxGain = 1.4

	MinAngleDeg = -45.0
	MaxAngleDeg = 45.0

	MinMLine = 0.05
	MaxMLine = 0.95
)

// ViewState is the operator-controlled imaging state. The host owns it;
// the engine reads a copy each frame.
type ViewState struct {
	View          View
	DepthCm       float64
	Gain          float64
	AngleDeg      float64
	ColorDoppler  bool
	Frozen        bool
	MeasureMode   bool
	MLineFraction float64
}

// DefaultViewState returns the state a fresh exam starts in.
func DefaultViewState() ViewState {
	return ViewState{
		View:          ViewPLAX,
		DepthCm:       6,
		Gain:          0.9,
		AngleDeg:      0,
		MLineFraction: 0.6,
	}
}

// Clamped returns a copy with every numeric field pulled into range.
// NaN values are replaced by the default for that field.
func (s ViewState) Clamped() ViewState {
	d := DefaultViewState()
	s.DepthCm = clampOr(s.DepthCm, MinDepthCm, MaxDepthCm, d.DepthCm)
	s.Gain = clampOr(s.Gain, MinGain, MaxGain, d.Gain)
	s.AngleDeg = clampOr(s.AngleDeg, MinAngleDeg, MaxAngleDeg, d.AngleDeg)
	s.MLineFraction = clampOr(s.MLineFraction, MinMLine, MaxMLine, d.MLineFraction)
	return s
}

// AngleRad returns the probe angle in radians.
func (s ViewState) AngleRad() float64 {
	return s.AngleDeg * math.Pi / 180
}

func clampOr(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(lo, math.Min(hi, v))
}
