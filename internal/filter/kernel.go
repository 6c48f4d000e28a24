package filter

import (
	"math"

	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// Direction tells whether a kernel reduces or increases the sample count.
type Direction int

const (
	// Downsample kernels produce fewer samples than they read.
	Downsample Direction = iota
	// Upsample kernels produce more samples than they read.
	Upsample
)

// ParamsMode selects the rounding and clipping policy of a kernel.
type ParamsMode int

const (
	// ModeZero applies no offset, no shift and no clipping. The fixed-point
	// result is the raw convolution sum; the float result is scaled by 1/2^shift.
	ModeZero ParamsMode = iota

	// ModeNormal takes offset and shift from the table entry.
	ModeNormal

	// ModeAdditive is used for the second stage of a chained pair of fixed-point
	// filters: the shift is the sum of both stages' shifts and the offset is
	// half of 1<<shift.
	ModeAdditive
)

// String returns the mode name.
func (m ParamsMode) String() string {
	switch m {
	case ModeZero:
		return "zero"
	case ModeNormal:
		return "normal"
	case ModeAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Kernel is one phase of a separable 1D filter.
//
// Weights are kept in table units; Scale normalizes them so that a well-formed
// table entry has unity DC gain. IWeights are the fixed-point counterparts,
// IWeights[i] = round(Weights[i]).
type Kernel struct {
	// Taps is fixed at construction.
	Taps     int
	Weights  []float64
	IWeights []int32

	// Offset and Shift implement fixed-point rounding: (sum + Offset) >> Shift.
	Offset int64
	Shift  int

	// Scale is 1/2^shift of the table entry and applies to the float path.
	Scale float64

	// WeightShift is the shift of the table entry: the weights sum to
	// 1<<WeightShift.
	WeightShift int

	// Clip limits results to [MinValue, MaxValue].
	Clip     bool
	MinValue float64
	MaxValue float64

	// PositionOffset aligns the kernel center with its input sample:
	// (Taps-1)>>1 for downsampling and (Taps+1)>>1 for upsampling kernels.
	PositionOffset int

	Mode      ParamsMode
	Direction Direction
}

// NewKernel builds a kernel from a table entry. prevShift is the shift of the
// preceding stage and only matters for ModeAdditive.
func NewKernel(def TapDef, dir Direction, mode ParamsMode, prevShift int, minValue, maxValue float64) *Kernel {
	taps := len(def.Weights)
	k := &Kernel{
		Taps:      taps,
		Weights:   make([]float64, taps),
		IWeights:  make([]int32, taps),
		Scale:     1.0 / float64(int64(1)<<def.Shift),
		MinValue:  minValue,
		MaxValue:  maxValue,
		Mode:      mode,
		Direction: dir,

		WeightShift: def.Shift,
	}
	for i, w := range def.Weights {
		k.Weights[i] = float64(w)
		k.IWeights[i] = int32(math.Round(k.Weights[i]))
	}

	switch mode {
	case ModeZero:
		k.Offset = 0
		k.Shift = 0
		k.Clip = false
	case ModeNormal:
		k.Offset = int64(def.Offset)
		k.Shift = def.Shift
		k.Clip = dir == Downsample
	case ModeAdditive:
		k.Shift = def.Shift + prevShift
		k.Offset = (int64(1) << k.Shift) >> 1
		k.Clip = dir == Downsample
	}

	if dir == Downsample {
		k.PositionOffset = (taps - 1) >> 1
	} else {
		k.PositionOffset = (taps + 1) >> 1
	}
	return k
}

// Normalized returns the float weights multiplied by Scale.
func (k *Kernel) Normalized() []float64 {
	out := make([]float64, k.Taps)
	for i, w := range k.Weights {
		out[i] = w * k.Scale
	}
	return out
}

// Filter applies the float path to a window of Taps samples.
func (k *Kernel) Filter(window []float64) float64 {
	var sum float64
	for i, w := range k.Weights {
		sum += w * window[i]
	}
	v := sum * k.Scale
	if k.Clip {
		v = mathutil.Clip(v, k.MinValue, k.MaxValue)
	}
	return v
}

// FilterFixed applies the fixed-point path to a window of Taps samples.
func (k *Kernel) FilterFixed(window []int64) int64 {
	var sum int64
	for i, w := range k.IWeights {
		sum += int64(w) * window[i]
	}
	v := (sum + k.Offset) >> k.Shift
	if !k.Clip {
		return v
	}
	if !math.IsInf(k.MinValue, -1) {
		v = max(v, int64(k.MinValue))
	}
	if !math.IsInf(k.MaxValue, 1) {
		v = min(v, int64(k.MaxValue))
	}
	return v
}

// FilterLine convolves src into dst (same length) without resampling.
// Output i is centered on input i; edge samples are replicated.
func (k *Kernel) FilterLine(dst, src []float64) {
	window := make([]float64, k.Taps)
	center := (k.Taps - 1) >> 1
	for i := range dst {
		for t := range k.Taps {
			window[t] = src[mathutil.ClampIndex(i+t-center, len(src))]
		}
		dst[i] = k.Filter(window)
	}
}
