package mmode

import (
	"math"
	"testing"

	"github.com/gogpu/echosim/catalog"
	"github.com/stretchr/testify/assert"
)

func TestValveDepths(t *testing.T) {
	v1, v2 := ValveDepths(0, catalog.ViewPLAX)
	assert.InDelta(t, 0.35, v1, 1e-12)
	assert.InDelta(t, 0.65+0.07*math.Sin(1.2), v2, 1e-12)

	v1, v2 = ValveDepths(0.25, catalog.ViewPSAX)
	assert.InDelta(t, 0.40, v1, 1e-12)
	assert.InDelta(t, 0.55+0.06*math.Cos(math.Pi/2*0.9), v2, 1e-12)
}

func TestBrightnessBaseline(t *testing.T) {
	// Far from both valves only the attenuation ramp remains.
	assert.InDelta(t, 10+180*0.3, Brightness(0, 0, catalog.ViewPLAX, "normal"), 1e-6)
	assert.InDelta(t, 10, Brightness(1, 0, catalog.ViewPLAX, "normal"), 1e-6)
}

func TestBrightnessValvePeaks(t *testing.T) {
	v1, _ := ValveDepths(0.1, catalog.ViewA4C)
	on := Brightness(v1, 0.1, catalog.ViewA4C, "normal")
	off := Brightness(v1+0.1, 0.1, catalog.ViewA4C, "normal")
	assert.Greater(t, on-off, 60.0)
}

func TestBrightnessCaseEchoes(t *testing.T) {
	const phase = 0.0
	base := Brightness(0.2, phase, catalog.ViewPLAX, "normal")
	assert.InDelta(t, 40, Brightness(0.2, phase, catalog.ViewPLAX, "tof")-base, 1e-9)

	base = Brightness(0.48, phase, catalog.ViewPLAX, "normal")
	assert.InDelta(t, 30, Brightness(0.48, phase, catalog.ViewPLAX, "vsd")-base, 1e-9)

	base = Brightness(0.48, phase, catalog.ViewPSAX, "normal")
	assert.Equal(t, base, Brightness(0.48, phase, catalog.ViewPSAX, "vsd"), "vsd echo is absent in PSAX")
}

func TestIntensityClamps(t *testing.T) {
	assert.Equal(t, uint8(0), Intensity(0.5, 0, catalog.ViewPLAX, "normal", -1))
	v1, _ := ValveDepths(0, catalog.ViewPLAX)
	assert.Equal(t, uint8(255), Intensity(v1, 0, catalog.ViewPLAX, "tof", 10))
	assert.Equal(t, uint8(math.Floor(64*0.9)), Intensity(0, 0, catalog.ViewPLAX, "normal", 0.9))
}

func TestECGSample(t *testing.T) {
	assert.InDelta(t, 1.0, ECGSample(0.32), 0.05, "R peak")
	assert.Less(t, ECGSample(0.35), 0.0, "S dip")
	assert.InDelta(t, 0.25, ECGSample(0.60), 0.01, "T wave")
	assert.InDelta(t, 0, ECGSample(0.9), 0.01, "isoelectric")
}
