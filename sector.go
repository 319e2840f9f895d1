package echosim

import (
	"math"

	"github.com/gogpu/gg"
)

// Sector geometry constants.
const (
	apexFracX = 0.12
	apexFracY = 0.10

	// SectorOpening is the full angular width of the wedge.
	SectorOpening = math.Pi * 0.85
	// SectorHalfWidth is half of SectorOpening.
	SectorHalfWidth = SectorOpening / 2

	baseOffset = -math.Pi/2 + 0.15

	// calibratedRadiusFrac is the share of the radius that spans the full
	// imaging depth; depth ticks and measurement scale both use it.
	calibratedRadiusFrac = 0.8

	wedgeArcSegments = 96
)

// Sector is the wedge-shaped imaging region for one frame. It is fully
// determined by surface size and probe angle and is never persisted.
type Sector struct {
	Apex      gg.Point
	Radius    float64
	HalfWidth float64
	// Offset is the angle of the wedge bisector in radians.
	Offset float64
}

// NewSector computes the wedge for a surface of the given size and a probe
// angle in degrees. The angle is clamped to the ViewState range.
func NewSector(width, height int, angleDeg float64) Sector {
	w, h := float64(width), float64(height)
	angle := clampOr(angleDeg, MinAngleDeg, MaxAngleDeg, 0) * math.Pi / 180
	return Sector{
		Apex:      gg.Pt(apexFracX*w, apexFracY*h),
		Radius:    math.Min(0.95*w, 1.2*h),
		HalfWidth: SectorHalfWidth,
		Offset:    baseOffset + angle,
	}
}

// Start returns the angle of the leading wedge edge.
func (s Sector) Start() float64 { return s.Offset - s.HalfWidth }

// End returns the angle of the trailing wedge edge.
func (s Sector) End() float64 { return s.Offset + s.HalfWidth }

// Polar returns the surface point at the given angle and distance from the
// apex.
func (s Sector) Polar(angle, r float64) gg.Point {
	return gg.Pt(s.Apex.X+math.Cos(angle)*r, s.Apex.Y+math.Sin(angle)*r)
}

// Contains reports whether (x, y) lies inside the wedge.
func (s Sector) Contains(x, y float64) bool {
	dx, dy := x-s.Apex.X, y-s.Apex.Y
	if dx*dx+dy*dy > s.Radius*s.Radius {
		return false
	}
	if dx == 0 && dy == 0 {
		return true
	}
	a := math.Atan2(dy, dx) - s.Offset
	a = math.Remainder(a, 2*math.Pi)
	return math.Abs(a) <= s.HalfWidth
}

// ViewOrigin returns the anchor of the heart model: a point on a ray 0.22 rad
// past the bisector at 55% of the radius.
func (s Sector) ViewOrigin() gg.Point {
	return s.Polar(s.Offset+0.22, s.Radius*0.55)
}

// ModelRotation is the rotation applied to heart-model coordinates so that
// the model's +y axis points along the bisector.
func (s Sector) ModelRotation() float64 {
	return s.Offset - math.Pi/2
}

// PixelsPerCm is the calibration scale along the beam for a given depth.
func (s Sector) PixelsPerCm(depthCm float64) float64 {
	return s.Radius * calibratedRadiusFrac / depthCm
}

// PixelsPerMm is PixelsPerCm / 10.
func (s Sector) PixelsPerMm(depthCm float64) float64 {
	return s.PixelsPerCm(depthCm) / 10
}

// MLineEnd returns the far end of the M-mode sampling line for a fraction
// of the wedge opening.
func (s Sector) MLineEnd(fraction float64) gg.Point {
	return s.Polar(s.Start()+2*s.HalfWidth*fraction, s.Radius*calibratedRadiusFrac)
}

// appendWedge adds the closed wedge outline to the current path in device
// coordinates. The arc is flattened so the apex edge is drawn correctly.
func (s Sector) appendWedge(dc *gg.Context) {
	dc.MoveTo(s.Apex.X, s.Apex.Y)
	start := s.Start()
	step := 2 * s.HalfWidth / wedgeArcSegments
	for i := 0; i <= wedgeArcSegments; i++ {
		p := s.Polar(start+float64(i)*step, s.Radius)
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}
