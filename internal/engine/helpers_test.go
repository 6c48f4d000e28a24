package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-video-resampler/internal/frame"
)

const (
	testBitDepth16 = 10
	testSeed       = 42
)

func newTestFrame(t testing.TB, width, height int, format frame.ChromaFormat, typ frame.SampleType) *frame.Frame {
	t.Helper()
	depth := 8
	if typ == frame.Uint16 {
		depth = testBitDepth16
	}
	f, err := frame.New(frame.Spec{Width: width, Height: height, Format: format, Type: typ, BitDepth: depth})
	require.NoError(t, err)
	return f
}

func setSample(f *frame.Frame, c, x, y int, v float64) {
	switch f.Type {
	case frame.Uint8:
		f.Planes8[c].Set(x, y, uint8(v))
	case frame.Uint16:
		f.Planes16[c].Set(x, y, uint16(v))
	case frame.Float32:
		f.PlanesF[c].Set(x, y, float32(v))
	}
}

func sampleAt(f *frame.Frame, c, x, y int) float64 {
	switch f.Type {
	case frame.Uint8:
		return float64(f.Planes8[c].At(x, y))
	case frame.Uint16:
		return float64(f.Planes16[c].At(x, y))
	default:
		return float64(f.PlanesF[c].At(x, y))
	}
}

// fillPattern sets every sample of component c to fn(x, y).
func fillPattern(f *frame.Frame, c int, fn func(x, y int) float64) {
	for y := range f.PlaneHeight(c) {
		for x := range f.PlaneWidth(c) {
			setSample(f, c, x, y, fn(x, y))
		}
	}
}

// fillRandom fills every plane with reproducible values in the legal range.
func fillRandom(f *frame.Frame, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, testSeed))
	for c := range f.Components() {
		lo, hi := f.MinValue(c), f.MaxValue(c)
		fillPattern(f, c, func(_, _ int) float64 {
			if f.IsFloat() {
				return lo + rng.Float64()*(hi-lo)
			}
			return float64(rng.IntN(int(hi-lo)+1)) + lo
		})
	}
}

// planes8 returns the raw samples of component c of an 8-bit frame.
func planes8(f *frame.Frame, c int) []uint8 {
	out := make([]uint8, 0, f.PlaneWidth(c)*f.PlaneHeight(c))
	for y := range f.PlaneHeight(c) {
		out = append(out, f.Planes8[c].Row(y)...)
	}
	return out
}
