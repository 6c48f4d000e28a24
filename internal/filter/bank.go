package filter

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-video-resampler/internal/mathutil"
	"github.com/tphakala/go-video-resampler/internal/simdops"
)

var ops = simdops.Float64()

// ErrInvalidBank is returned for bank parameters that cannot produce a bank.
var ErrInvalidBank = errors.New("invalid filter bank parameters")

// Bank holds one tap group per output sample: the first source index the
// group reads (before edge clamping), the normalized float coefficients and
// their fixed-point counterparts. Banks are immutable once built.
//
// A downsampling bank limits every output to the span of the window it read,
// so decimating a monotonic line never leaves the range of its input.
//
// Coefficient layout: [pos0_tap0 ... pos0_tapN][pos1_tap0 ...]...
type Bank struct {
	InSize  int
	OutSize int
	Taps    int

	// Factor is InSize/OutSize; above 1 the bank downsamples.
	Factor    float64
	Direction Direction

	// Fixed-point rounding for FixedWeights: (sum + Offset) >> Shift.
	Offset int64
	Shift  int
	Clip   bool

	// WeightShift is log2 of the fixed-point weight sum of a group.
	WeightShift int

	Name string

	starts []int
	coeffs []float64
	fixed  []int32
}

// BankParams controls coefficient generation.
type BankParams struct {
	// Offset is the source position of output sample 0, in source samples.
	// CenterOffset gives center-aligned sampling.
	Offset float64

	// Mode and PrevShift select the fixed-point rounding policy as for Kernel.
	Mode      ParamsMode
	PrevShift int
}

// CenterOffset returns the offset that aligns pixel centers of the input
// and output grids for the given ratio.
func CenterOffset(inSize, outSize int) float64 {
	factor := float64(inSize) / float64(outSize)
	return 0.5*factor - 0.5
}

// NewBank generates coefficients for resampling inSize samples to outSize
// samples with the distance function fn.
//
// For output x the source position is posOrig = Offset + x*factor and its
// fractional part off selects the phase. Each tap t at integer offset
// tapOffset[t] from floor(posOrig) gets weight fn(dist) where
// dist = tapOffset[t] - off when upsampling and off - tapOffset[t] when
// downsampling. Every group is then divided by its sum.
func NewBank(inSize, outSize int, fn Func, p BankParams) (*Bank, error) {
	if inSize <= 0 || outSize <= 0 {
		return nil, fmt.Errorf("%w: sizes %d→%d must be positive", ErrInvalidBank, inSize, outSize)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: no kernel function", ErrInvalidBank)
	}

	factor := float64(inSize) / float64(outSize)
	stretch := 1.0
	if factor > 1 && fn.Widen() {
		stretch = factor
	}
	support := fn.Radius() * stretch
	taps := max(2*int(math.Ceil(support)), 1)
	first := -(taps/2 - 1)

	b := &Bank{
		InSize:    inSize,
		OutSize:   outSize,
		Taps:      taps,
		Factor:    factor,
		Direction: Upsample,
		Name:      fn.Name(),

		WeightShift: FixedBits,
		starts:    make([]int, outSize),
		coeffs:    make([]float64, outSize*taps),
		fixed:     make([]int32, outSize*taps),
	}
	if factor > 1 {
		b.Direction = Downsample
	}
	b.setMode(p.Mode, FixedBits, 1<<(FixedBits-1), p.PrevShift)

	for x := range outSize {
		posOrig := p.Offset + float64(x)*factor
		base := math.Floor(posOrig)
		off := posOrig - base
		b.starts[x] = int(base) + first

		group := b.coeffs[x*taps : (x+1)*taps]
		for t := range taps {
			tapOffset := float64(first + t)
			var dist float64
			if factor <= 1 {
				dist = tapOffset - off
			} else {
				dist = off - tapOffset
			}
			group[t] = fn.Weight(dist / stretch)
		}

		sum := ops.Sum(group)
		if math.Abs(sum) < minCoeffSum {
			// Degenerate support: fall back to the nearest tap.
			for t := range group {
				group[t] = 0
			}
			nearest := mathutil.Clip(int(math.Round(off))-first, 0, taps-1)
			group[nearest] = 1
			sum = 1
		}
		ops.Scale(group, group, 1/sum)

		quantize(b.fixed[x*taps:(x+1)*taps], group)
	}

	return b, nil
}

// quantize rounds normalized weights to FixedBits precision and folds the
// rounding residual into the largest tap so the group sums to 1<<FixedBits.
func quantize(dst []int32, weights []float64) {
	const one = 1 << FixedBits
	var sum int32
	largest := 0
	for i, w := range weights {
		dst[i] = int32(math.Round(w * one))
		sum += dst[i]
		if math.Abs(w) > math.Abs(weights[largest]) {
			largest = i
		}
	}
	dst[largest] += one - sum
}

// NewTableBank builds a 2:1 bank from table kernels.
//
// Downsampling takes a single kernel; output i is centered on source sample
// 2i+align and reads from 2i+align-PositionOffset. Upsampling takes the two
// phase kernels; output y uses phase (y-align) mod 2 with base sample
// floor((y-align)/2) and reads from base-PositionOffset+1.
func NewTableBank(inSize, outSize int, phases []*Kernel, align int) (*Bank, error) {
	if inSize <= 0 || outSize <= 0 {
		return nil, fmt.Errorf("%w: sizes %d→%d must be positive", ErrInvalidBank, inSize, outSize)
	}
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: no kernels", ErrInvalidBank)
	}
	dir := phases[0].Direction
	switch {
	case dir == Downsample && len(phases) != 1:
		return nil, fmt.Errorf("%w: decimation takes one kernel, got %d", ErrInvalidBank, len(phases))
	case dir == Upsample && len(phases) != 2:
		return nil, fmt.Errorf("%w: interpolation takes two phases, got %d", ErrInvalidBank, len(phases))
	}
	taps := 0
	for _, k := range phases {
		if k.Direction != dir || k.Shift != phases[0].Shift || k.Offset != phases[0].Offset ||
			k.WeightShift != phases[0].WeightShift {
			return nil, fmt.Errorf("%w: phase kernels disagree on direction or rounding", ErrInvalidBank)
		}
		taps = max(taps, k.Taps)
	}

	b := &Bank{
		InSize:    inSize,
		OutSize:   outSize,
		Taps:      taps,
		Factor:    float64(inSize) / float64(outSize),
		Direction: dir,
		Offset:    phases[0].Offset,
		Shift:     phases[0].Shift,
		Clip:      phases[0].Clip,
		Name:      "table",

		WeightShift: phases[0].WeightShift,
		starts:    make([]int, outSize),
		coeffs:    make([]float64, outSize*taps),
		fixed:     make([]int32, outSize*taps),
	}

	for pos := range outSize {
		var k *Kernel
		if dir == Downsample {
			k = phases[0]
			b.starts[pos] = 2*pos + align - k.PositionOffset
		} else {
			base := mathutil.FloorDiv(pos-align, 2)
			k = phases[mathutil.FloorMod(pos-align, 2)]
			b.starts[pos] = base - k.PositionOffset + 1
		}
		group := b.coeffs[pos*taps : (pos+1)*taps]
		fixed := b.fixed[pos*taps : (pos+1)*taps]
		for t := range k.Taps {
			group[t] = k.Weights[t] * k.Scale
			fixed[t] = k.IWeights[t]
		}
	}
	return b, nil
}

// setMode applies a rounding policy to generated coefficients.
func (b *Bank) setMode(mode ParamsMode, shift int, offset int64, prevShift int) {
	switch mode {
	case ModeZero:
		b.Offset, b.Shift, b.Clip = 0, 0, false
	case ModeNormal:
		b.Offset, b.Shift = offset, shift
		b.Clip = b.Direction == Downsample
	case ModeAdditive:
		b.Shift = shift + prevShift
		b.Offset = (int64(1) << b.Shift) >> 1
		b.Clip = b.Direction == Downsample
	}
}

// Start returns the first (unclamped) source index read by output pos.
func (b *Bank) Start(pos int) int {
	return b.starts[pos]
}

// Weights returns the normalized coefficients of output pos.
func (b *Bank) Weights(pos int) []float64 {
	return b.coeffs[pos*b.Taps : (pos+1)*b.Taps]
}

// FixedWeights returns the fixed-point coefficients of output pos.
func (b *Bank) FixedWeights(pos int) []int32 {
	return b.fixed[pos*b.Taps : (pos+1)*b.Taps]
}

// Sum returns the sum of the normalized coefficients of output pos.
func (b *Bank) Sum(pos int) float64 {
	return ops.Sum(b.Weights(pos))
}

// Gather copies the window of output pos from line into dst, clamping
// source indices to the line. step is the distance between consecutive
// samples of the line in src.
func (b *Bank) Gather(dst, src []float64, pos, base, step, size int) {
	start := b.starts[pos]
	for t := range b.Taps {
		dst[t] = src[base+mathutil.ClampIndex(start+t, size)*step]
	}
}

// GatherFixed is Gather for fixed-point lines.
func (b *Bank) GatherFixed(dst, src []int64, pos, base, step, size int) {
	start := b.starts[pos]
	for t := range b.Taps {
		dst[t] = src[base+mathutil.ClampIndex(start+t, size)*step]
	}
}

// Apply returns the float output of pos for a gathered window.
func (b *Bank) Apply(pos int, window []float64) float64 {
	v := ops.DotProductUnsafe(b.Weights(pos), window)
	if b.Direction == Downsample {
		v = mathutil.Clip(v, floats.Min(window), floats.Max(window))
	}
	return v
}

// ApplyFixed returns the fixed-point output of pos for a gathered window,
// rounded with the bank's Offset and Shift. Window samples are in units of
// the previous stage; the window span is rescaled to output units before
// limiting, rounding outward.
func (b *Bank) ApplyFixed(pos int, window []int64) int64 {
	var sum int64
	for t, w := range b.FixedWeights(pos) {
		sum += int64(w) * window[t]
	}
	v := (sum + b.Offset) >> b.Shift
	if b.Direction != Downsample {
		return v
	}

	lo, hi := slices.Min(window), slices.Max(window)
	if d := b.WeightShift - b.Shift; d >= 0 {
		lo, hi = lo<<d, hi<<d
	} else {
		lo, hi = lo>>-d, -(-hi >> -d)
	}
	return mathutil.Clip(v, lo, hi)
}

// MemoryUsage returns the approximate memory usage in bytes.
func (b *Bank) MemoryUsage() int64 {
	const (
		bytesPerFloat64 = 8
		bytesPerInt32   = 4
		bytesPerInt     = 8
	)
	return int64(len(b.coeffs))*bytesPerFloat64 +
		int64(len(b.fixed))*bytesPerInt32 +
		int64(len(b.starts))*bytesPerInt
}
