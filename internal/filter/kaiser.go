package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// KaiserSinc is a sinc function windowed by a Kaiser window of half-width
// HalfWidth. Beta trades main lobe width against sidelobe level.
type KaiserSinc struct {
	HalfWidth float64
	Beta      float64

	i0Beta float64
}

// NewKaiserSinc designs a Kaiser windowed sinc for the given half-width and
// stopband attenuation in dB. Non-positive arguments select the defaults.
func NewKaiserSinc(halfWidth, attenuation float64) KaiserSinc {
	if halfWidth <= 0 {
		halfWidth = defaultKaiserRadius
	}
	if attenuation <= 0 {
		attenuation = defaultKaiserAttenuation
	}
	beta := mathutil.KaiserBeta(attenuation)
	return KaiserSinc{
		HalfWidth: halfWidth,
		Beta:      beta,
		i0Beta:    mathutil.BesselI0(beta),
	}
}

// Window evaluates the Kaiser window at dist:
// w(x) = I₀(β * sqrt(1 - (x/R)²)) / I₀(β) for |x| < R.
func (k KaiserSinc) Window(dist float64) float64 {
	x := dist / k.HalfWidth
	if math.Abs(x) >= 1 {
		return 0
	}
	i0Beta := k.i0Beta
	if i0Beta == 0 {
		i0Beta = mathutil.BesselI0(k.Beta)
	}
	return mathutil.BesselI0(k.Beta*math.Sqrt(1-x*x)) / i0Beta
}

// Weight implements Func.
func (k KaiserSinc) Weight(dist float64) float64 {
	return mathutil.Sinc(dist) * k.Window(dist)
}

// Radius implements Func.
func (k KaiserSinc) Radius() float64 { return k.HalfWidth }

// Widen implements Func.
func (KaiserSinc) Widen() bool { return true }

// Name implements Func.
func (k KaiserSinc) Name() string {
	return fmt.Sprintf("kaiser(R=%g,β=%.3f)", k.HalfWidth, k.Beta)
}
