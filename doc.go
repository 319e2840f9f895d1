// Package echosim renders a synthetic pediatric echocardiography image
// stream from parametric rules.
//
// # Overview
//
// An Engine owns one rendering surface. Each tick the host calls Draw with
// the active case, the current ViewState and the time elapsed since the
// exam started. Draw computes the cardiac phase, lays out the imaging
// sector, draws the heart model and optional color flow jets into the
// wedge, adds speckle grain and finally the M-line and caliper overlays.
//
//	eng := echosim.NewEngine(800, 520)
//	c, _ := catalog.Builtin().Get("vsd")
//	vs := echosim.DefaultViewState()
//	vs.ColorDoppler = true
//	eng.Draw(c, vs, 1500*time.Millisecond)
//	_, _ = eng.SaveSnapshot(".", vs.View, c.ID)
//
// The scrolling M-mode display lives in package mmode and runs its own
// tick against the same case and view state.
//
// # Coordinate System
//
// Surface coordinates have the origin at the top-left, x to the right and
// y down, in pixels. The heart model is authored in its own units centred
// on the view origin and mapped onto the surface by a translate, rotate,
// scale transform that follows probe angle and depth.
//
// # Failure Model
//
// The per-tick path never returns errors. Out-of-range view state is
// clamped, unknown views use the PLAX layout and a missing heart rate
// falls back to DefaultHeartRate. A zero-size surface skips the tick.
// Rasterizer errors are logged at warn level.
//
// # Concurrency
//
// An Engine serializes its own methods, so Resize and Click may be called
// from other goroutines than Draw. Separate engines share nothing.
//
// # Logging
//
// Logging is silent by default. Use SetLogger to route diagnostics from
// echosim, its sub-packages and the gg rasterizer to an slog.Logger.
package echosim
