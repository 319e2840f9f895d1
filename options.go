package echosim

import (
	"github.com/gogpu/gg/text"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
)

// Option configures an Engine during creation.
//
// Example:
//
//	eng := echosim.NewEngine(800, 520,
//	    echosim.WithMeasurementHandler(func(m *echosim.Measurement) {
//	        if m == nil {
//	            fmt.Println("measurement cleared")
//	            return
//	        }
//	        fmt.Printf("%.1f mm\n", m.DistanceMm)
//	    }))
type Option func(*engineOptions)

type engineOptions struct {
	handler    MeasurementHandler
	labelFace  text.Face
	noLabels   bool
	meter      metric.Meter
	id         uuid.UUID
	labelPoint float64
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		labelPoint: 12,
	}
}

// WithMeasurementHandler registers the callback for completed and cleared
// measurements.
func WithMeasurementHandler(h MeasurementHandler) Option {
	return func(o *engineOptions) {
		o.handler = h
	}
}

// WithLabelFace sets the face used for chamber, depth and caliper labels.
// By default the embedded Go Regular font is used at 12 pt.
func WithLabelFace(face text.Face) Option {
	return func(o *engineOptions) {
		o.labelFace = face
	}
}

// WithoutLabels disables all text. Useful for pixel-exact tests that should
// not depend on glyph rasterization.
func WithoutLabels() Option {
	return func(o *engineOptions) {
		o.noLabels = true
	}
}

// WithMeter sets the OpenTelemetry meter for frame metrics. By default the
// global meter provider is used, which is a no-op until the host installs one.
func WithMeter(m metric.Meter) Option {
	return func(o *engineOptions) {
		o.meter = m
	}
}

// WithEngineID overrides the random engine id attached to log records.
func WithEngineID(id uuid.UUID) Option {
	return func(o *engineOptions) {
		o.id = id
	}
}
