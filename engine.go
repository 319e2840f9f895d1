package echosim

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/echosim/internal/fonts"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/google/uuid"
)

// Common errors returned by Engine operations.
var (
	// ErrNoSurface is returned when an operation needs pixels but the engine
	// currently has no surface (zero size).
	ErrNoSurface = errors.New("echosim: no rendering surface")

	// ErrInvalidDimensions is returned by Resize for negative sizes.
	ErrInvalidDimensions = errors.New("echosim: invalid dimensions")
)

// Frame describes the inputs the last Draw rendered with.
type Frame struct {
	State   ViewState
	CaseID  string
	Sector  Sector
	Phase   float64
	Elapsed time.Duration
}

// Engine renders the 2D sector image. Each Engine owns its surface and
// measurement state, so several engines can run side by side.
//
// Draw, Click and Resize serialize on an internal lock; a resize therefore
// always lands between two ticks.
type Engine struct {
	mu sync.Mutex

	id     uuid.UUID
	width  int
	height int
	pm     *gg.Pixmap
	dc     *gg.Context

	face      text.Face // chamber and caliper labels
	smallFace text.Face // depth ticks

	calib   *Calibrator
	metrics *frameMetrics
	last    Frame
	drawn   bool
}

// NewEngine creates an engine with a width×height surface. A zero size is
// allowed; Draw skips ticks until Resize provides a surface.
func NewEngine(width, height int, opts ...Option) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	e := &Engine{
		id:      o.id,
		calib:   NewCalibrator(nil),
		metrics: newFrameMetrics(o.meter),
	}
	e.calib.SetHandler(func(m *Measurement) {
		if m != nil {
			e.metrics.measured()
		}
		if o.handler != nil {
			o.handler(m)
		}
	})
	e.loadFaces(o)
	e.allocate(max(width, 0), max(height, 0))

	Logger().Info("echosim: engine created", "engine", e.id, "width", e.width, "height", e.height)
	return e
}

func (e *Engine) loadFaces(o engineOptions) {
	switch {
	case o.noLabels:
	case o.labelFace != nil:
		e.face, e.smallFace = o.labelFace, o.labelFace
	default:
		face, err := fonts.Face(o.labelPoint)
		if err != nil {
			Logger().Warn("echosim: labels disabled", "engine", e.id, "err", err)
			return
		}
		small, _ := fonts.Face(o.labelPoint - 1)
		e.face, e.smallFace = face, small
	}
}

func (e *Engine) allocate(width, height int) {
	if e.dc != nil {
		_ = e.dc.Close()
	}
	e.width, e.height = width, height
	if width == 0 || height == 0 {
		e.pm, e.dc = nil, nil
		return
	}
	e.pm = gg.NewPixmap(width, height)
	e.dc = gg.NewContext(width, height, gg.WithPixmap(e.pm))
}

// ID returns the engine id used in log records.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Size returns the surface size.
func (e *Engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Resize reallocates the surface. A zero dimension removes the surface
// until the next Resize. Measurement state is kept.
func (e *Engine) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if width == e.width && height == e.height {
		return nil
	}
	e.allocate(width, height)
	Logger().Debug("echosim: resized", "engine", e.id, "width", width, "height", height)
	return nil
}

// Draw renders one frame of c under vs at elapsed time since start. It
// reports false when the tick was skipped because there is no surface.
// Out-of-range view state is clamped; a nil case renders with no flows at
// the default heart rate.
func (e *Engine) Draw(c *catalog.Case, vs ViewState, elapsed time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dc == nil {
		e.metrics.skip()
		Logger().Debug("echosim: tick skipped, no surface", "engine", e.id)
		return false
	}
	began := time.Now()

	vs = vs.Clamped()
	e.calib.ObserveDepth(vs.DepthCm)

	s := NewSector(e.width, e.height, vs.AngleDeg)
	phase := Phase(elapsed, c.HeartRate(), vs.Frozen)
	t := elapsed.Seconds()

	dc := e.dc
	dc.Identity()
	dc.ClearPath()
	dc.ClearDash()
	dc.Clear()

	// Every layer stays inside the wedge.
	withSectorClip(dc, s, func() {
		e.drawSector(dc, c, vs, s, phase, t)
		e.drawSectorFrame(dc, s, vs.DepthCm)
	})
	ApplySpeckle(e.pm, s, t, vs.Gain)
	withSectorClip(dc, s, func() {
		e.drawMLine(dc, s, vs.MLineFraction)
		e.drawMeasurement(dc, s, vs.DepthCm)
	})

	var id string
	if c != nil {
		id = c.ID
	}
	e.last = Frame{State: vs, CaseID: id, Sector: s, Phase: phase, Elapsed: elapsed}
	e.drawn = true
	e.metrics.frame(vs.View, time.Since(began))
	return true
}

// drawSector fills the wedge and draws the heart model. The caller sets
// the wedge clip.
func (e *Engine) drawSector(dc *gg.Context, c *catalog.Case, vs ViewState, s Sector, phase, t float64) {
	bg := gg.NewRadialGradientBrush(s.Apex.X, s.Apex.Y, 0, s.Radius).
		AddColorStop(0, gg.Hex("#0f111a")).
		AddColorStop(1, gg.Hex("#05060a"))
	dc.SetFillBrush(bg)
	dc.DrawRectangle(0, 0, float64(e.width), float64(e.height))
	e.check("fill background", dc.Fill())

	m := modelTransform(s, vs.DepthCm)
	layout := ChamberLayout(vs.View, phase)

	dc.SetTransform(m)
	e.drawAnatomy(dc, vs.View, layout)
	if vs.ColorDoppler {
		e.drawFlows(dc, c, vs.View, phase, t)
	}
	dc.Identity()

	if e.face != nil {
		dc.SetFont(e.face)
		setPaint(dc, labelColor)
		for _, lb := range chamberLabels(vs.View, layout) {
			p := modelToSurface(m, lb.x, lb.y)
			e.drawSectorString(dc, s, lb.text, p.X, p.Y)
		}
	}
}

// Click registers a pointer click in surface pixels. Clicks are ignored
// unless measurement mode is on. On the second point of a pair the
// measurement is returned and reported to the handler. Without a surface
// there is no scale, so clicks are dropped.
func (e *Engine) Click(x, y float64, vs ViewState) *Measurement {
	if !vs.MeasureMode {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dc == nil {
		Logger().Debug("echosim: click dropped, no surface", "engine", e.id)
		return nil
	}

	vs = vs.Clamped()
	s := NewSector(e.width, e.height, vs.AngleDeg)
	return e.calib.Click(gg.Pt(x, y), s, vs.DepthCm)
}

// Measurement returns the last reported measurement, if still valid.
func (e *Engine) Measurement() (Measurement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calib.Last()
}

// PendingClicks returns the caliper points currently placed.
func (e *Engine) PendingClicks() []gg.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calib.Points()
}

// ResetMeasurement clears caliper points and retracts the last measurement.
func (e *Engine) ResetMeasurement() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calib.Reset()
}

// LastFrame returns what the previous Draw rendered. ok is false before the
// first successful Draw.
func (e *Engine) LastFrame() (f Frame, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.drawn
}

// Image returns a copy of the surface, or nil when there is none.
func (e *Engine) Image() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pm == nil {
		return nil
	}
	return e.pm.ToImage()
}

// Close releases the drawing context. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dc != nil {
		err := e.dc.Close()
		e.dc, e.pm = nil, nil
		e.width, e.height = 0, 0
		return err
	}
	return nil
}

// check logs a rasterizer error without interrupting the tick.
func (e *Engine) check(op string, err error) {
	if err != nil {
		Logger().Warn("echosim: rasterizer error", "engine", e.id, "op", op, "err", err)
	}
}

func setPaint(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
