package echosim

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestNewSector(t *testing.T) {
	s := NewSector(800, 520, 0)
	assert.InDelta(t, 96, s.Apex.X, 1e-9)
	assert.InDelta(t, 52, s.Apex.Y, 1e-9)
	assert.InDelta(t, 624, s.Radius, 1e-9) // min(760, 624)
	assert.InDelta(t, 0.425*math.Pi, s.HalfWidth, 1e-12)
	assert.InDelta(t, -math.Pi/2+0.15, s.Offset, 1e-12)

	wide := NewSector(400, 1000, 0)
	assert.InDelta(t, 380, wide.Radius, 1e-9)
}

func TestSectorAngleInvariants(t *testing.T) {
	base := NewSector(640, 480, 0)
	for _, deg := range []float64{-45, -20, 0, 13, 45} {
		s := NewSector(640, 480, deg)
		assert.Equal(t, base.Apex, s.Apex, "deg=%v", deg)
		assert.Equal(t, base.HalfWidth, s.HalfWidth, "deg=%v", deg)
		assert.Equal(t, base.Radius, s.Radius, "deg=%v", deg)
		assert.InDelta(t, base.Offset+deg*math.Pi/180, s.Offset, 1e-12, "deg=%v", deg)
	}
}

func TestSectorAngleClamped(t *testing.T) {
	assert.Equal(t, NewSector(640, 480, 45).Offset, NewSector(640, 480, 120).Offset)
	assert.Equal(t, NewSector(640, 480, -45).Offset, NewSector(640, 480, -300).Offset)
}

// rotateAbout rotates p about c by theta.
func rotateAbout(p, c gg.Point, theta float64) gg.Point {
	m := gg.Translate(c.X, c.Y).Multiply(gg.Rotate(theta)).Multiply(gg.Translate(-c.X, -c.Y))
	return m.TransformPoint(p)
}

func TestSectorRotatesRigidlyAboutApex(t *testing.T) {
	const deg = 30.0
	theta := deg * math.Pi / 180
	a := NewSector(800, 520, 0)
	b := NewSector(800, 520, deg)

	want := rotateAbout(a.ViewOrigin(), a.Apex, theta)
	got := b.ViewOrigin()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)

	// Any model point lands where the unrotated image point, rotated about
	// the apex, lands.
	ma, mb := modelTransform(a, 6), modelTransform(b, 6)
	for _, p := range []gg.Point{{X: 0, Y: 0}, {X: 20, Y: -60}, {X: -70, Y: 10}} {
		want := rotateAbout(ma.TransformPoint(p), a.Apex, theta)
		got := mb.TransformPoint(p)
		assert.InDelta(t, want.X, got.X, 1e-9, "p=%v", p)
		assert.InDelta(t, want.Y, got.Y, 1e-9, "p=%v", p)
	}

	wa := rotateAbout(a.MLineEnd(0.4), a.Apex, theta)
	wb := b.MLineEnd(0.4)
	assert.InDelta(t, wa.X, wb.X, 1e-9)
	assert.InDelta(t, wa.Y, wb.Y, 1e-9)
}

func TestSectorContains(t *testing.T) {
	s := NewSector(800, 520, 0)
	assert.True(t, s.Contains(s.Apex.X, s.Apex.Y), "apex")

	mid := s.Polar(s.Offset, s.Radius/2)
	assert.True(t, s.Contains(mid.X, mid.Y), "bisector")

	beyond := s.Polar(s.Offset, s.Radius*1.01)
	assert.False(t, s.Contains(beyond.X, beyond.Y), "past radius")

	outside := s.Polar(s.End()+0.05, s.Radius/2)
	assert.False(t, s.Contains(outside.X, outside.Y), "past trailing edge")
	outside = s.Polar(s.Start()-0.05, s.Radius/2)
	assert.False(t, s.Contains(outside.X, outside.Y), "before leading edge")

	// Top-left corner is behind the probe.
	assert.False(t, s.Contains(0, 0))
}

func TestSectorCalibration(t *testing.T) {
	s := Sector{Radius: 500}
	assert.InDelta(t, 500*0.8/6, s.PixelsPerCm(6), 1e-9)
	assert.InDelta(t, 6.6667, s.PixelsPerMm(6), 1e-4)
}

func TestDepthTicks(t *testing.T) {
	s := Sector{Radius: 500}
	ticks := DepthTicks(s, 6.5)
	if assert.Len(t, ticks, 6) {
		assert.InDelta(t, 400/6.5, ticks[0], 1e-9)
		assert.InDelta(t, 6*400/6.5, ticks[5], 1e-9)
	}
	assert.Len(t, DepthTicks(s, 12), 12)
}
