package echosim

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects handler calls.
type recorder struct {
	calls []*Measurement
}

func (r *recorder) handle(m *Measurement) { r.calls = append(r.calls, m) }

func TestCalibrate(t *testing.T) {
	m, ok := Calibrate(100, 500, 6)
	require.True(t, ok)
	assert.InDelta(t, 6.6667, m.PxPerMm, 1e-4)
	assert.InDelta(t, 15.0, m.DistanceMm, 1e-9)

	for _, tt := range []struct {
		name          string
		radius, depth float64
	}{
		{"zero radius", 0, 6},
		{"zero depth", 500, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Calibrate(100, tt.radius, tt.depth)
			assert.False(t, ok)
		})
	}
}

func TestCalibratorZeroRadiusDropsClicks(t *testing.T) {
	var rec recorder
	c := NewCalibrator(rec.handle)
	s := Sector{}

	assert.Nil(t, c.Click(gg.Pt(10, 10), s, 6))
	assert.Nil(t, c.Click(gg.Pt(10, 60), s, 6))
	assert.Empty(t, c.Points())
	assert.Empty(t, rec.calls)
	_, ok := c.Last()
	assert.False(t, ok)
}

func TestCalibratorRoundTrip(t *testing.T) {
	var rec recorder
	c := NewCalibrator(rec.handle)
	s := Sector{Radius: 500}

	assert.Nil(t, c.Click(gg.Pt(10, 10), s, 6))
	assert.Len(t, c.Points(), 1)
	assert.Empty(t, rec.calls)

	m := c.Click(gg.Pt(70, 90), s, 6) // 3-4-5 triangle, 100 px
	require.NotNil(t, m)
	assert.InDelta(t, 15.0, m.DistanceMm, 1e-9)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, *m, *rec.calls[0])

	last, ok := c.Last()
	assert.True(t, ok)
	assert.Equal(t, *m, last)
	assert.Equal(t, "15.0 mm", c.Label(last))
}

func TestCalibratorThirdClickRestarts(t *testing.T) {
	var rec recorder
	c := NewCalibrator(rec.handle)
	s := Sector{Radius: 500}

	c.Click(gg.Pt(0, 0), s, 6)
	c.Click(gg.Pt(0, 100), s, 6)
	assert.Nil(t, c.Click(gg.Pt(50, 50), s, 6))
	assert.Equal(t, []gg.Point{gg.Pt(50, 50)}, c.Points())

	_, ok := c.Last()
	assert.True(t, ok, "previous measurement stays until replaced")
	assert.Len(t, rec.calls, 1)

	m := c.Click(gg.Pt(50, 150), s, 6)
	require.NotNil(t, m)
	assert.InDelta(t, 15.0, m.DistanceMm, 1e-9)
	assert.Len(t, rec.calls, 2)
}

func TestCalibratorDepthChangeClears(t *testing.T) {
	var rec recorder
	c := NewCalibrator(rec.handle)
	s := Sector{Radius: 500}

	assert.False(t, c.ObserveDepth(6), "first observation only records")
	c.Click(gg.Pt(0, 0), s, 6)
	c.Click(gg.Pt(0, 100), s, 6)
	require.Len(t, rec.calls, 1)

	assert.False(t, c.ObserveDepth(6))
	assert.True(t, c.ObserveDepth(8))
	assert.Empty(t, c.Points())
	_, ok := c.Last()
	assert.False(t, ok)
	require.Len(t, rec.calls, 2)
	assert.Nil(t, rec.calls[1], "clear is reported as nil")

	// Nothing to retract: no second nil.
	assert.True(t, c.ObserveDepth(10))
	assert.Len(t, rec.calls, 2)
}

func TestCalibratorDepthChangeDropsPendingPoint(t *testing.T) {
	c := NewCalibrator(nil)
	s := Sector{Radius: 500}

	c.Click(gg.Pt(0, 0), s, 6)
	m := c.Click(gg.Pt(0, 100), s, 9)
	assert.Nil(t, m, "first point belonged to another depth")
	assert.Equal(t, []gg.Point{gg.Pt(0, 100)}, c.Points())
}

func TestCalibratorReset(t *testing.T) {
	var rec recorder
	c := NewCalibrator(rec.handle)
	s := Sector{Radius: 500}
	c.Click(gg.Pt(0, 0), s, 6)
	c.Click(gg.Pt(0, 100), s, 6)

	c.Reset()
	assert.Empty(t, c.Points())
	require.Len(t, rec.calls, 2)
	assert.Nil(t, rec.calls[1])
}
