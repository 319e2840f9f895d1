package mmode

import "math"

// ECGSample returns a stylised ECG amplitude for a cardiac phase: P wave,
// QRS complex and T wave as gaussians. The R peak sits near phase 0.32 and
// reaches about 1.
func ECGSample(phase float64) float64 {
	p := 0.08 * gauss(phase, 0.18, 0.03)
	q := -0.12 * gauss(phase, 0.30, 0.01)
	r := 1.00 * gauss(phase, 0.32, 0.008)
	s := -0.25 * gauss(phase, 0.35, 0.012)
	t := 0.25 * gauss(phase, 0.60, 0.06)
	return p + q + r + s + t
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
