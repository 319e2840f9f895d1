// Package mmode implements the scrolling motion-mode display.
//
// An Engine keeps a grayscale buffer the size of its surface. Every Tick
// shifts the buffer one pixel left and synthesizes a new rightmost column
// from the cardiac phase: a near-field attenuation ramp, two valve echoes
// that move with the phase, and extra echoes for some cases. The column
// index therefore grows with time from left to right.
//
// Freezing pins the phase at 0 but the buffer keeps scrolling, so a frozen
// trace shows flat lines rather than a halted image.
//
// The engine never touches the 2D sector surface; it only reads the same
// case and view state the sector engine reads.
//
//	m := mmode.New(800, 220, mmode.WithECG(true))
//	for i := range frames {
//	    m.Tick(c, vs, clock.Elapsed())
//	}
//	img := m.RenderImage()
package mmode
