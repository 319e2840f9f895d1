package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinOrder(t *testing.T) {
	cat := Builtin()
	var ids []string
	for _, c := range cat.Cases() {
		ids = append(ids, c.ID)
	}
	want := []string{"normal", "vsd", "pda", "tof", "coarc"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("case order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "normal", cat.Default().ID)
	assert.Equal(t, 5, cat.Len())
}

func TestBuiltinHeartRates(t *testing.T) {
	cat := Builtin()
	tests := map[string]float64{
		"normal": 130,
		"vsd":    140,
		"pda":    150,
		"tof":    120,
		"coarc":  135,
	}
	for id, want := range tests {
		c, ok := cat.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, want, c.HeartRate(), id)
	}
}

func TestHeartRateDefault(t *testing.T) {
	var nilCase *Case
	assert.Equal(t, DefaultHeartRate, nilCase.HeartRate())
	assert.Equal(t, DefaultHeartRate, (&Case{}).HeartRate())
	assert.Equal(t, 90.0, (&Case{HeartRateBPM: 90}).HeartRate())
}

func TestFlowsFor(t *testing.T) {
	cat := Builtin()
	tof, ok := cat.Lookup("tof")
	require.True(t, ok)

	plax := tof.FlowsFor(ViewPLAX)
	want := []Flow{
		{View: ViewPLAX, Type: FlowRVOTObs, Strength: 0.8, Direction: AwayFromProbe},
		{View: ViewPLAX, Type: FlowVSD, Strength: 0.5, Direction: Bidirectional},
	}
	if diff := cmp.Diff(want, plax); diff != "" {
		t.Errorf("tof PLAX flows mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, tof.FlowsFor(ViewA4C))
	assert.Empty(t, tof.FlowsFor(View("bogus")))

	var nilCase *Case
	assert.Nil(t, nilCase.FlowsFor(ViewPLAX))
}

func TestGetUnknown(t *testing.T) {
	_, err := Builtin().Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCase))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "[]"},
		{"missing id", "- name: x\n"},
		{"duplicate id", "- id: a\n- id: a\n"},
		{"bad type", "- id: a\n  flows: [{view: PLAX, type: ASD, strength: 0.5, colorDirection: towardProbe}]\n"},
		{"bad direction", "- id: a\n  flows: [{view: PLAX, type: VSD, strength: 0.5, colorDirection: sideways}]\n"},
		{"strength out of range", "- id: a\n  flows: [{view: PLAX, type: VSD, strength: 1.5, colorDirection: towardProbe}]\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestViewKnown(t *testing.T) {
	for _, v := range Views() {
		assert.True(t, v.Known(), v)
	}
	assert.False(t, View("").Known())
	assert.False(t, View("plax").Known())
}
