package echosim

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/gogpu/echosim"

// frameMetrics records per-tick instruments. Instrument creation errors leave
// the field nil and recording is skipped.
type frameMetrics struct {
	duration     metric.Float64Histogram
	frames       metric.Int64Counter
	skipped      metric.Int64Counter
	measurements metric.Int64Counter
}

func newFrameMetrics(m metric.Meter) *frameMetrics {
	if m == nil {
		m = otel.Meter(meterName)
	}
	fm := &frameMetrics{}
	var err error
	if fm.duration, err = m.Float64Histogram("echosim.frame.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Time spent rendering one sector frame")); err != nil {
		Logger().Warn("echosim: frame duration histogram unavailable", "err", err)
	}
	if fm.frames, err = m.Int64Counter("echosim.frames",
		metric.WithDescription("Sector frames rendered")); err != nil {
		Logger().Warn("echosim: frame counter unavailable", "err", err)
	}
	if fm.skipped, err = m.Int64Counter("echosim.frames.skipped",
		metric.WithDescription("Ticks skipped because no surface was available")); err != nil {
		Logger().Warn("echosim: skipped counter unavailable", "err", err)
	}
	if fm.measurements, err = m.Int64Counter("echosim.measurements",
		metric.WithDescription("Completed two-point measurements")); err != nil {
		Logger().Warn("echosim: measurement counter unavailable", "err", err)
	}
	return fm
}

func (fm *frameMetrics) frame(view View, d time.Duration) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("view", string(view)))
	if fm.duration != nil {
		fm.duration.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
	}
	if fm.frames != nil {
		fm.frames.Add(ctx, 1, attrs)
	}
}

func (fm *frameMetrics) skip() {
	if fm.skipped != nil {
		fm.skipped.Add(context.Background(), 1)
	}
}

func (fm *frameMetrics) measured() {
	if fm.measurements != nil {
		fm.measurements.Add(context.Background(), 1)
	}
}
