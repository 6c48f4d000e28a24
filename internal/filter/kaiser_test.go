package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-video-resampler/internal/mathutil"
	"github.com/tphakala/go-video-resampler/internal/testutil"
)

const (
	// Test tolerances
	defaultTolerance   = 1e-10
	magnitudeTolerance = 1e-2
	windowTolerance    = 1e-10

	// Test window parameters
	testHalfWidth2     = 2.0
	testHalfWidth4     = 4.0
	testHalfWidth8     = 8.0
	testAttenuation60  = 60.0
	testAttenuation80  = 80.0
	testAttenuation100 = 100.0

	// Frequency response test parameters
	testNumPoints512  = 512
	testNumPoints1024 = 1024
)

// TestKaiserSinc_WindowSymmetry verifies that the Kaiser window is even.
func TestKaiserSinc_WindowSymmetry(t *testing.T) {
	tests := []struct {
		name        string
		halfWidth   float64
		attenuation float64
	}{
		{"R2_60dB", testHalfWidth2, testAttenuation60},
		{"R4_80dB", testHalfWidth4, testAttenuation80},
		{"R8_100dB", testHalfWidth8, testAttenuation100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKaiserSinc(tt.halfWidth, tt.attenuation)

			samples := make([]float64, 0, 41)
			for i := -20; i <= 20; i++ {
				samples = append(samples, k.Window(float64(i)*tt.halfWidth/20))
			}
			testutil.AssertSymmetric(t, samples, windowTolerance)
			testutil.AssertNoNaNOrInf(t, samples)
		})
	}
}

// TestKaiserSinc_WindowCenterAndEdge verifies w(0) = 1 and zero outside the support.
func TestKaiserSinc_WindowCenterAndEdge(t *testing.T) {
	k := NewKaiserSinc(testHalfWidth4, testAttenuation80)

	assert.InDelta(t, 1.0, k.Window(0), windowTolerance, "center value should be 1.0")
	assert.Zero(t, k.Window(testHalfWidth4), "window must vanish at the radius")
	assert.Zero(t, k.Window(-testHalfWidth4-1), "window must vanish outside the radius")

	prev := k.Window(0)
	for x := 0.25; x < testHalfWidth4; x += 0.25 {
		cur := k.Window(x)
		assert.Less(t, cur, prev, "window should decrease away from the center at x=%v", x)
		prev = cur
	}
}

// TestKaiserSinc_Defaults verifies non-positive arguments select the defaults.
func TestKaiserSinc_Defaults(t *testing.T) {
	k := NewKaiserSinc(0, -1)

	assert.InDelta(t, defaultKaiserRadius, k.Radius(), defaultTolerance)
	assert.InDelta(t, mathutil.KaiserBeta(defaultKaiserAttenuation), k.Beta, defaultTolerance)
	assert.True(t, k.Widen())
	assert.Contains(t, k.Name(), "kaiser")
}

// TestKaiserSinc_ZeroValueWindow verifies a literal KaiserSinc without the
// cached I0(beta) still evaluates correctly.
func TestKaiserSinc_ZeroValueWindow(t *testing.T) {
	designed := NewKaiserSinc(testHalfWidth4, testAttenuation60)
	literal := KaiserSinc{HalfWidth: designed.HalfWidth, Beta: designed.Beta}

	for _, x := range []float64{0, 0.5, 1.3, 3.9} {
		assert.InDelta(t, designed.Window(x), literal.Window(x), windowTolerance, "x=%v", x)
	}
}

// TestKaiserSinc_WeightZeros verifies the windowed sinc keeps the sinc zeros.
func TestKaiserSinc_WeightZeros(t *testing.T) {
	k := NewKaiserSinc(testHalfWidth4, testAttenuation80)

	assert.InDelta(t, 1.0, k.Weight(0), defaultTolerance)
	for _, x := range []float64{-3, -2, -1, 1, 2, 3} {
		assert.InDelta(t, 0.0, k.Weight(x), defaultTolerance, "weight at integer %v", x)
	}
	assert.InDelta(t, k.Weight(0.4), k.Weight(-0.4), defaultTolerance, "weight must be even")
}

// TestResponse verifies DC and Nyquist gain of a [1 2 1]/4 kernel.
func TestResponse(t *testing.T) {
	// Simple 3-tap averaging filter: [0.25, 0.5, 0.25]
	const (
		tap0 = 0.25
		tap1 = 0.5
		tap2 = 0.25
	)
	coeffs := []float64{tap0, tap1, tap2}

	response := Response(coeffs, testNumPoints512)

	bins := testNumPoints512 + 1
	assert.Len(t, response.Frequencies, bins, "frequencies length mismatch")
	assert.Len(t, response.Magnitude, bins, "magnitude length mismatch")
	assert.Len(t, response.Phase, bins, "phase length mismatch")
	assert.InDelta(t, 0.5, response.Frequencies[bins-1], defaultTolerance, "last bin should be Nyquist")

	// DC response (freq=0) should equal sum of coefficients
	expectedDC := tap0 + tap1 + tap2
	assert.InDelta(t, expectedDC, response.Magnitude[0], magnitudeTolerance,
		"DC magnitude mismatch")

	// Alternating sum 0.25 - 0.5 + 0.25 = 0
	assert.LessOrEqual(t, response.Nyquist(), magnitudeTolerance,
		"Nyquist magnitude should be ~0")
}

// TestResponse_TableKernels verifies unity DC gain of every table kernel.
func TestResponse_TableKernels(t *testing.T) {
	table := DefaultTable()
	for _, id := range table.IDs() {
		e, err := table.Lookup(id)
		if !assert.NoError(t, err) {
			continue
		}
		for _, d := range []TapDef{e.Down.Cosited, e.Down.Interstitial, e.Up.Interstitial[0], e.Up.Interstitial[1]} {
			k := NewKernel(d, Downsample, ModeNormal, 0, 0, 1)
			response := Response(k.Normalized(), 0)
			assert.InDelta(t, 1.0, response.Magnitude[0], defaultTolerance, "%v DC gain", id)
		}
	}
}

// TestResponse_LongKernel verifies the transform grows to fit long kernels.
func TestResponse_LongKernel(t *testing.T) {
	coeffs := make([]float64, 40)
	for i := range coeffs {
		coeffs[i] = 1.0 / 40
	}

	response := Response(coeffs, 8)

	assert.Len(t, response.Magnitude, 33)
	assert.InDelta(t, 1.0, response.Magnitude[0], defaultTolerance)
}

// TestMagnitudeDB tests linear to dB conversion.
func TestMagnitudeDB(t *testing.T) {
	const (
		mag1    = 1.0
		mag0_5  = 0.5
		mag0_1  = 0.1
		mag0_01 = 0.01

		db1    = 0.0
		db0_5  = -6.0206
		db0_1  = -20.0
		db0_01 = -40.0

		dbTolerance = 0.01
	)

	tests := []struct {
		name string
		mag  float64
		want float64
	}{
		{"magnitude_1", mag1, db1},
		{"magnitude_0_5", mag0_5, db0_5},
		{"magnitude_0_1", mag0_1, db0_1},
		{"magnitude_0_01", mag0_01, db0_01},
		{"magnitude_zero", 0.0, -200.0}, // Should clip to minimum
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MagnitudeDB(tt.mag)
			assert.InDelta(t, tt.want, got, dbTolerance,
				"MagnitudeDB(%f) = %f dB, want %f dB", tt.mag, got, tt.want)
		})
	}
}

// BenchmarkKaiserSinc benchmarks windowed sinc evaluation.
func BenchmarkKaiserSinc(b *testing.B) {
	k := NewKaiserSinc(testHalfWidth4, testAttenuation80)
	x := 0.0
	for b.Loop() {
		_ = k.Weight(x)
		x = math.Mod(x+0.37, testHalfWidth4)
	}
}

// BenchmarkResponse benchmarks frequency response calculation.
func BenchmarkResponse(b *testing.B) {
	k := NewKaiserSinc(testHalfWidth8, testAttenuation100)
	coeffs := make([]float64, 16)
	for i := range coeffs {
		coeffs[i] = k.Weight(float64(i) - 7.5)
	}

	b.ResetTimer()
	for b.Loop() {
		_ = Response(coeffs, testNumPoints1024)
	}
}
