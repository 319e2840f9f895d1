package echosim

import (
	"math"

	"github.com/gogpu/gg"
)

// Speckle constants. The hash is the classic frac(sin(dot)·43758.5453).
const (
	speckleK1 = 127.1
	speckleK2 = 311.7
	speckleK3 = 13.13
	speckleK4 = 43758.5453

	speckleSX    = 0.9
	speckleSY    = 0.8
	speckleST    = 0.8
	specklePow   = 1.8
	speckleCoeff = 0.6

	// speckleStride samples every second row and column.
	speckleStride = 2
)

// SpeckleHash returns a deterministic pseudo-random value in [0,1).
func SpeckleHash(x, y, t float64) float64 {
	n := math.Sin(x*speckleK1+y*speckleK2+t*speckleK3) * speckleK4
	return n - math.Floor(n)
}

// SpeckleValue is the additive intensity (0..255 scale) contributed at
// pixel (x, y) at time t for a gain. Raising the hash to a power above 1
// biases grain toward dark.
func SpeckleValue(x, y int, t, gain float64) float64 {
	h := SpeckleHash(float64(x)*speckleSX, float64(y)*speckleSY, t*speckleST)
	return math.Pow(h, specklePow) * 255 * gain * speckleCoeff
}

// ApplySpeckle adds grain to the pixels of pm inside s. Sampled pixels are
// made opaque; others are untouched.
func ApplySpeckle(pm *gg.Pixmap, s Sector, t, gain float64) {
	w, h := pm.Width(), pm.Height()
	data := pm.Data()

	// Bounding box of the wedge keeps the loop off empty rows.
	x0, y0, x1, y1 := wedgeBounds(s, w, h)
	for y := y0 - y0%speckleStride; y < y1; y += speckleStride {
		for x := x0 - x0%speckleStride; x < x1; x += speckleStride {
			if !s.Contains(float64(x), float64(y)) {
				continue
			}
			v := SpeckleValue(x, y, t, gain)
			i := (y*w + x) * 4
			data[i+0] = addClamp(data[i+0], v)
			data[i+1] = addClamp(data[i+1], v)
			data[i+2] = addClamp(data[i+2], v)
			data[i+3] = 255
		}
	}
}

func addClamp(c uint8, v float64) uint8 {
	s := float64(c) + v
	if s >= 255 {
		return 255
	}
	if s <= 0 {
		return 0
	}
	return uint8(s)
}

// wedgeBounds returns the integer pixel box covering s, clipped to the
// surface. The box is half-open: [x0,x1) × [y0,y1).
func wedgeBounds(s Sector, w, h int) (x0, y0, x1, y1 int) {
	minX, minY := s.Apex.X, s.Apex.Y
	maxX, maxY := minX, minY
	grow := func(p gg.Point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	grow(s.Polar(s.Start(), s.Radius))
	grow(s.Polar(s.End(), s.Radius))
	// axis-aligned extremes that fall inside the opening
	for k := -4; k <= 4; k++ {
		a := float64(k) * math.Pi / 2
		if math.Abs(math.Remainder(a-s.Offset, 2*math.Pi)) <= s.HalfWidth {
			grow(s.Polar(a, s.Radius))
		}
	}
	x0 = max(0, int(math.Floor(minX)))
	y0 = max(0, int(math.Floor(minY)))
	x1 = min(w, int(math.Ceil(maxX))+1)
	y1 = min(h, int(math.Ceil(maxY))+1)
	return x0, y0, x1, y1
}
