// Package gradcheck implements the central finite-difference gradient
// checker and relative-RMS-deviation comparator shared by every
// gradient-consistency test in mdcore.
package gradcheck

import "math"

// CentralDifference evaluates f at x+eps and x-eps and returns the central
// finite-difference estimate of f's derivative at x.
func CentralDifference(f func(x float32) float32, x, eps float32) float32 {
	return (f(x+eps) - f(x-eps)) / (2 * eps)
}

// NumericalGradient computes the central-difference gradient of f with
// respect to every component of x, perturbing one component at a time.
func NumericalGradient(f func(x []float32) float32, x []float32, eps float32) []float32 {
	grad := make([]float32, len(x))
	work := make([]float32, len(x))
	copy(work, x)
	for i := range x {
		orig := work[i]
		work[i] = orig + eps
		plus := f(work)
		work[i] = orig - eps
		minus := f(work)
		work[i] = orig
		grad[i] = (plus - minus) / (2 * eps)
	}
	return grad
}

// RelativeRMSDeviation computes the RMS of (a[i]-b[i]) divided by the RMS of
// b, the tolerance metric used by mdcore's gradient-consistency property
// test. Returns 0 if both slices are all-zero.
func RelativeRMSDeviation(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("gradcheck: length mismatch")
	}
	var diffSq, refSq float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		diffSq += d * d
		refSq += float64(b[i]) * float64(b[i])
	}
	if refSq == 0 {
		if diffSq == 0 {
			return 0
		}
		return float32(math.Sqrt(diffSq))
	}
	return float32(math.Sqrt(diffSq / refSq))
}
