package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// Func is a continuous distance→weight function used to generate coefficient
// banks for arbitrary ratios.
type Func interface {
	// Weight returns the unnormalized weight of a source sample at signed
	// distance dist (in source samples) from the output position.
	Weight(dist float64) float64

	// Radius is the half-width of the function's support at ratio 1.
	Radius() float64

	// Widen reports whether the support stretches by the decimation factor
	// when downsampling, turning the function into a low-pass filter.
	Widen() bool

	// Name identifies the function.
	Name() string
}

// Nearest selects the closest source sample. Ties at exactly half a sample
// resolve toward the sample at dist == +0.5.
type Nearest struct{}

// Weight implements Func.
func (Nearest) Weight(dist float64) float64 {
	if dist > -nearestHalfWidth && dist <= nearestHalfWidth {
		return 1
	}
	return 0
}

// Radius implements Func.
func (Nearest) Radius() float64 { return nearestHalfWidth }

// Widen implements Func. Nearest neighbour decimates instead of averaging.
func (Nearest) Widen() bool { return false }

// Name implements Func.
func (Nearest) Name() string { return "nearest" }

// Linear is the triangle (tent) function.
type Linear struct{}

// Weight implements Func.
func (Linear) Weight(dist float64) float64 {
	d := math.Abs(dist)
	if d < linearRadius {
		return linearRadius - d
	}
	return 0
}

// Radius implements Func.
func (Linear) Radius() float64 { return linearRadius }

// Widen implements Func.
func (Linear) Widen() bool { return true }

// Name implements Func.
func (Linear) Name() string { return "bilinear" }

// Cubic is the Mitchell-Netravali cubic family. B=0, C=0.5 is Catmull-Rom.
type Cubic struct {
	B, C float64
}

// CatmullRom returns the Catmull-Rom cubic.
func CatmullRom() Cubic {
	return Cubic{B: catmullRomB, C: catmullRomC}
}

// Weight implements Func.
func (c Cubic) Weight(dist float64) float64 {
	x := math.Abs(dist)
	b, cc := c.B, c.C
	switch {
	case x < 1:
		return ((12-9*b-6*cc)*x*x*x + (-18+12*b+6*cc)*x*x + (6 - 2*b)) / cubicDivisor
	case x < cubicRadius:
		return ((-b-6*cc)*x*x*x + (6*b+30*cc)*x*x + (-12*b-48*cc)*x + (8*b + 24*cc)) / cubicDivisor
	default:
		return 0
	}
}

// Radius implements Func.
func (Cubic) Radius() float64 { return cubicRadius }

// Widen implements Func.
func (Cubic) Widen() bool { return true }

// Name implements Func.
func (c Cubic) Name() string {
	if c.B == catmullRomB && c.C == catmullRomC {
		return "catmull-rom"
	}
	return fmt.Sprintf("cubic(B=%g,C=%g)", c.B, c.C)
}

// Lanczos is the sinc function windowed by a wider sinc with Lobes lobes.
type Lanczos struct {
	Lobes int
}

// Weight implements Func.
func (l Lanczos) Weight(dist float64) float64 {
	r := float64(l.Lobes)
	if math.Abs(dist) >= r {
		return 0
	}
	return mathutil.Sinc(dist) * mathutil.Sinc(dist/r)
}

// Radius implements Func.
func (l Lanczos) Radius() float64 { return float64(l.Lobes) }

// Widen implements Func.
func (Lanczos) Widen() bool { return true }

// Name implements Func.
func (l Lanczos) Name() string { return fmt.Sprintf("lanczos%d", l.Lobes) }
