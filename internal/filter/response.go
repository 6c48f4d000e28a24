package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FilterResponse holds the frequency response of a kernel.
type FilterResponse struct {
	// Frequencies at which response was calculated (cycles/sample, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// Response evaluates the frequency response of normalized kernel weights at
// points+1 frequencies from DC to Nyquist. The weights are
// zero-padded to 2*points and transformed with a real FFT.
func Response(weights []float64, points int) FilterResponse {
	if points <= 0 {
		points = defaultResponsePoints
	}
	n := responseOversample * points
	for n < len(weights) {
		n *= responseOversample
	}

	padded := make([]float64, n)
	copy(padded, weights)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, padded)

	bins := n/responseOversample + 1
	resp := FilterResponse{
		Frequencies: make([]float64, bins),
		Magnitude:   make([]float64, bins),
		Phase:       make([]float64, bins),
	}
	for k := range bins {
		resp.Frequencies[k] = float64(k) / float64(n)
		resp.Magnitude[k] = cmplx.Abs(coeffs[k])
		resp.Phase[k] = cmplx.Phase(coeffs[k])
	}
	return resp
}

// Nyquist returns the magnitude at the highest evaluated frequency.
func (r FilterResponse) Nyquist() float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	return r.Magnitude[len(r.Magnitude)-1]
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
