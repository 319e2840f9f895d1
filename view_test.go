package echosim

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDefaultViewState(t *testing.T) {
	want := ViewState{View: ViewPLAX, DepthCm: 6, Gain: 0.9, MLineFraction: 0.6}
	if diff := cmp.Diff(want, DefaultViewState()); diff != "" {
		t.Errorf("DefaultViewState() mismatch (-want +got):\n%s", diff)
	}
}

func TestViewStateClamped(t *testing.T) {
	tests := []struct {
		name string
		in   ViewState
		want ViewState
	}{
		{
			name: "in range untouched",
			in:   ViewState{View: ViewA4C, DepthCm: 8, Gain: 1.1, AngleDeg: -10, MLineFraction: 0.3, Frozen: true},
			want: ViewState{View: ViewA4C, DepthCm: 8, Gain: 1.1, AngleDeg: -10, MLineFraction: 0.3, Frozen: true},
		},
		{
			name: "below range",
			in:   ViewState{View: ViewPSAX, DepthCm: 1, Gain: 0, AngleDeg: -90, MLineFraction: 0},
			want: ViewState{View: ViewPSAX, DepthCm: MinDepthCm, Gain: MinGain, AngleDeg: MinAngleDeg, MLineFraction: MinMLine},
		},
		{
			name: "above range",
			in:   ViewState{View: ViewPLAX, DepthCm: 30, Gain: 3, AngleDeg: 90, MLineFraction: 1},
			want: ViewState{View: ViewPLAX, DepthCm: MaxDepthCm, Gain: MaxGain, AngleDeg: MaxAngleDeg, MLineFraction: MaxMLine},
		},
		{
			name: "NaN falls back to defaults",
			in:   ViewState{View: "bogus", DepthCm: math.NaN(), Gain: math.NaN(), AngleDeg: math.NaN(), MLineFraction: math.NaN()},
			want: ViewState{View: "bogus", DepthCm: 6, Gain: 0.9, AngleDeg: 0, MLineFraction: 0.6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.in.Clamped()); diff != "" {
				t.Errorf("Clamped() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestViewStateAngleRad(t *testing.T) {
	vs := ViewState{AngleDeg: 45}
	assert.InDelta(t, math.Pi/4, vs.AngleRad(), 1e-12)
}
