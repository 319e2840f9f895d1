package echosim

import (
	"math"
	"testing"

	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestJetPath(t *testing.T) {
	tests := []struct {
		ft    catalog.FlowType
		n     int
		first gg.Point
	}{
		{catalog.FlowVSD, 20, gg.Pt(-20, -5)},
		{catalog.FlowPDA, 25, gg.Pt(70, -80)},
		{catalog.FlowRVOTObs, 18, gg.Pt(40, -20)},
		{catalog.FlowCoarc, 30, gg.Pt(90, -70)},
	}
	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			pts := JetPath(tt.ft, 0)
			if assert.Len(t, pts, tt.n) {
				assert.InDelta(t, tt.first.X, pts[0].X, 1e-9)
				assert.InDelta(t, tt.first.Y, pts[0].Y, 1e-9)
			}
		})
	}
	assert.Nil(t, JetPath("ASD", 0))
}

func TestJetPathWobbles(t *testing.T) {
	a := JetPath(catalog.FlowVSD, 0)
	b := JetPath(catalog.FlowVSD, 0.3)
	assert.Equal(t, a[5].X, b[5].X, "x is fixed")
	assert.NotEqual(t, a[5].Y, b[5].Y, "y wobbles with time")
	assert.InDelta(t, -5+4*math.Sin(5*0.6+0.3*4), b[5].Y, 1e-9)
}

func TestJetSegmentStyle(t *testing.T) {
	toward := JetSegmentStyle(catalog.TowardProbe, 0.6, 0, 0)
	assert.InDelta(t, 60.0/255, toward.Color.R, 1e-9)
	assert.InDelta(t, 1.0, toward.Color.B, 1e-9)
	assert.InDelta(t, 0.5, toward.Color.A, 1e-9)

	away := JetSegmentStyle(catalog.AwayFromProbe, 0.6, 0, 3)
	assert.InDelta(t, 1.0, away.Color.R, 1e-9)
	assert.InDelta(t, 60.0/255, away.Color.B, 1e-9)

	for i := 0; i < 6; i++ {
		st := JetSegmentStyle(catalog.Bidirectional, 0.5, 0, i)
		if i%2 == 0 {
			assert.InDelta(t, 1.0, st.Color.B, 1e-9, "segment %d should be blue", i)
		} else {
			assert.InDelta(t, 1.0, st.Color.R, 1e-9, "segment %d should be red", i)
		}
	}
}

func TestJetSegmentStyleScalesWithStrength(t *testing.T) {
	weak := JetSegmentStyle(catalog.AwayFromProbe, 0.2, 0.1, 2)
	strong := JetSegmentStyle(catalog.AwayFromProbe, 0.8, 0.1, 2)
	assert.Less(t, weak.Color.A, strong.Color.A)
	assert.Less(t, weak.Width, strong.Width)
	assert.InDelta(t, 6*0.8*(0.5+0.5*math.Sin(0.6+2)), strong.Width, 1e-9)

	none := JetSegmentStyle(catalog.AwayFromProbe, 0, 0.1, 2)
	assert.Zero(t, none.Width)
	assert.InDelta(t, 0.2, none.Color.A, 1e-9)
}
