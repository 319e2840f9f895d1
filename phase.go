package echosim

import (
	"math"
	"time"
)

// Phase maps elapsed time to a position in the cardiac cycle, in [0,1).
//
// A frozen clock always reports 0, not the last live value, so frozen
// frames are reproducible. A non-positive bpm uses DefaultHeartRate.
func Phase(elapsed time.Duration, bpm float64, frozen bool) float64 {
	if frozen {
		return 0
	}
	if !(bpm > 0) {
		bpm = DefaultHeartRate
	}
	secs := elapsed.Seconds()
	if secs < 0 {
		secs = 0
	}
	p := math.Mod(secs*bpm/60, 1)
	if p >= 1 || p < 0 {
		// guards against rounding on huge elapsed values
		p = 0
	}
	return p
}

// Beat is the chamber size factor for a phase: 0.85 + 0.15·sin(2π·phase).
func Beat(phase float64) float64 {
	return 0.85 + 0.15*math.Sin(2*math.Pi*phase)
}

// Clock measures elapsed time since it was started. The zero value is not
// usable; construct with NewClock.
type Clock struct {
	now   func() time.Time
	start time.Time
}

// NewClock returns a clock started at now(). A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, start: now()}
}

// Elapsed returns the time since the clock started, never negative.
func (c *Clock) Elapsed() time.Duration {
	d := c.now().Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}

// Restart resets the start time to now.
func (c *Clock) Restart() {
	c.start = c.now()
}
