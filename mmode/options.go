package mmode

// Option configures an Engine during creation.
type Option func(*options)

type options struct {
	gridSpacing int
	ecg         bool
	ecgBand     float64
}

func defaultOptions() options {
	return options{ecg: true, ecgBand: 0.18}
}

// WithGridSpacing sets the distance between horizontal grid lines in
// pixels. Zero or less selects max(16, height/8).
func WithGridSpacing(px int) Option {
	return func(o *options) {
		o.gridSpacing = px
	}
}

// WithECG toggles the ECG strip drawn along the bottom of the display.
// It is enabled by default.
func WithECG(enabled bool) Option {
	return func(o *options) {
		o.ecg = enabled
	}
}

// WithECGBand sets the share of the surface height used by the ECG strip,
// clamped to [0.05, 0.5].
func WithECGBand(frac float64) Option {
	return func(o *options) {
		o.ecgBand = max(0.05, min(0.5, frac))
	}
}
