package mmode

import (
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/gogpu/echosim"
	"github.com/gogpu/echosim/catalog"
	"github.com/gogpu/gg"
)

var (
	gridColor   = gg.RGBA2(80.0/255, 100.0/255, 130.0/255, 0.3)
	ecgColor    = gg.Hex("#5cff9d")
	ecgBackdrop = gg.RGBA2(0, 0, 0, 0.55)
)

// Engine owns the M-mode buffer. Tick, Resize and the read accessors
// serialize on an internal lock, so a resize always lands between ticks.
type Engine struct {
	mu     sync.Mutex
	opts   options
	width  int
	height int

	// buf is opaque grayscale RGBA, row-major.
	buf *gg.Pixmap
	// ecg holds one sample per column, aligned with buf.
	ecg   []float64
	ticks uint64
}

// New returns an engine with a width×height buffer, cleared to black.
// A zero size is allowed; Tick skips until Resize provides a buffer.
func New(width, height int, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{opts: o}
	e.allocate(max(width, 0), max(height, 0))
	return e
}

func (e *Engine) allocate(width, height int) {
	e.width, e.height = width, height
	e.ticks = 0
	if width == 0 || height == 0 {
		e.buf, e.ecg = nil, nil
		return
	}
	e.buf = gg.NewPixmap(width, height)
	e.buf.Clear(gg.Black)
	e.ecg = make([]float64, width)
}

// Resize reallocates the buffer, discarding history. Same-size calls are
// no-ops.
func (e *Engine) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: width=%d, height=%d", echosim.ErrInvalidDimensions, width, height)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if width == e.width && height == e.height {
		return nil
	}
	e.allocate(width, height)
	echosim.Logger().Debug("mmode: resized", "width", width, "height", height)
	return nil
}

// Size returns the buffer size.
func (e *Engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Ticks returns how many columns have been synthesized since the last
// allocation.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Tick scrolls the buffer one column left and synthesizes a new rightmost
// column for c under vs at elapsed time. It reports false when there is no
// buffer. A nil case uses the default heart rate and no case echoes.
func (e *Engine) Tick(c *catalog.Case, vs echosim.ViewState, elapsed time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.buf == nil {
		echosim.Logger().Debug("mmode: tick skipped, no buffer")
		return false
	}

	vs = vs.Clamped()
	phase := echosim.Phase(elapsed, c.HeartRate(), vs.Frozen)
	var id string
	if c != nil {
		id = c.ID
	}

	w, h := e.width, e.height
	data := e.buf.Data()
	stride := w * 4
	for y := 0; y < h; y++ {
		row := data[y*stride : (y+1)*stride]
		copy(row[:stride-4], row[4:])

		v := Intensity(float64(y)/float64(h), phase, vs.View, id, vs.Gain)
		px := row[stride-4:]
		px[0], px[1], px[2], px[3] = v, v, v, 255
	}

	copy(e.ecg, e.ecg[1:])
	e.ecg[w-1] = ECGSample(phase)
	e.ticks++
	return true
}

// Column returns the gray values of column x, top to bottom, or nil when x
// is out of range.
func (e *Engine) Column(x int) []uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil || x < 0 || x >= e.width {
		return nil
	}
	data := e.buf.Data()
	col := make([]uint8, e.height)
	for y := range col {
		col[y] = data[(y*e.width+x)*4]
	}
	return col
}

// ECG returns a copy of the ECG samples aligned with the buffer columns.
func (e *Engine) ECG() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.ecg...)
}

// Image returns a copy of the raw buffer without grid or ECG, or nil when
// there is none.
func (e *Engine) Image() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return nil
	}
	return e.buf.ToImage()
}

// GridSpacing returns the distance between grid lines for the current
// height.
func (e *Engine) GridSpacing() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gridSpacing()
}

func (e *Engine) gridSpacing() float64 {
	if e.opts.gridSpacing > 0 {
		return float64(e.opts.gridSpacing)
	}
	return max(16, float64(e.height)/8)
}

// Render draws the buffer with its grid and ECG strip into dc with the
// top-left corner at (x, y).
func (e *Engine) Render(dc *gg.Context, x, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return echosim.ErrNoSurface
	}

	dc.DrawImage(gg.ImageBufFromImage(e.buf.ToImage()), x, y)

	w, h := float64(e.width), float64(e.height)
	dc.SetLineWidth(1)
	dc.SetRGBA(gridColor.R, gridColor.G, gridColor.B, gridColor.A)
	for gy := 0.0; gy < h; gy += e.gridSpacing() {
		dc.DrawLine(x, y+gy, x+w, y+gy)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("mmode: stroke grid: %w", err)
		}
	}

	if !e.opts.ecg {
		return nil
	}
	return e.renderECG(dc, x, y)
}

func (e *Engine) renderECG(dc *gg.Context, x, y float64) error {
	w, h := float64(e.width), float64(e.height)
	band := h * e.opts.ecgBand
	top := y + h - band
	baseline := top + band*0.7
	amp := band * 0.6

	dc.SetRGBA(ecgBackdrop.R, ecgBackdrop.G, ecgBackdrop.B, ecgBackdrop.A)
	dc.DrawRectangle(x, top, w, band)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("mmode: fill ecg band: %w", err)
	}

	// Columns that never ticked carry no trace.
	first := max(0, e.width-int(min(e.ticks, uint64(e.width))))
	if e.width-first < 2 {
		return nil
	}
	dc.MoveTo(x+float64(first), baseline-e.ecg[first]*amp)
	for i := first + 1; i < e.width; i++ {
		dc.LineTo(x+float64(i), baseline-e.ecg[i]*amp)
	}
	dc.SetRGBA(ecgColor.R, ecgColor.G, ecgColor.B, ecgColor.A)
	dc.SetLineWidth(1.5)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("mmode: stroke ecg: %w", err)
	}
	return nil
}

// RenderImage renders the display into a new image the size of the
// buffer, or nil when there is none.
func (e *Engine) RenderImage() *image.RGBA {
	w, h := e.Size()
	if w == 0 || h == 0 {
		return nil
	}
	pm := gg.NewPixmap(w, h)
	dc := gg.NewContext(w, h, gg.WithPixmap(pm))
	defer dc.Close()
	if err := e.Render(dc, 0, 0); err != nil {
		echosim.Logger().Warn("mmode: render", "err", err)
	}
	return pm.ToImage()
}

// Snapshot encodes the rendered display as PNG into w.
func (e *Engine) Snapshot(w io.Writer) error {
	width, height := e.Size()
	if width == 0 || height == 0 {
		return echosim.ErrNoSurface
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()
	if err := e.Render(dc, 0, 0); err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("mmode: encode snapshot: %w", err)
	}
	return nil
}
