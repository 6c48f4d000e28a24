package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/testutil"
)

var allScaleKernels = []ScaleKernel{
	ScaleNearest, ScaleBilinear, ScaleBicubic, ScaleLanczos2, ScaleLanczos3, ScaleKaiser,
}

func newTestScaler(t testing.TB, p ScaleParams) *Scaler {
	t.Helper()
	s, err := NewScaler(p)
	require.NoError(t, err)
	return s
}

func TestNewScaler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params ScaleParams
	}{
		{"unknown_format", ScaleParams{Format: frame.ChromaFormat(5), InWidth: 4, InHeight: 4, OutWidth: 2, OutHeight: 2}},
		{"zero_output", ScaleParams{Format: frame.Format420, InWidth: 4, InHeight: 4, OutWidth: 0, OutHeight: 2}},
		{"negative_input", ScaleParams{Format: frame.Format420, InWidth: -4, InHeight: 4, OutWidth: 2, OutHeight: 2}},
		{"unknown_kernel", ScaleParams{
			Format: frame.Format420, InWidth: 4, InHeight: 4, OutWidth: 2, OutHeight: 2, Kernel: ScaleKernel(42),
		}},
		{"bad_location", ScaleParams{
			Format: frame.Format420, InWidth: 4, InHeight: 4, OutWidth: 2, OutHeight: 2, Location: frame.ChromaLocation(-1),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScaler(tt.params)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestScaler_UnitRatio(t *testing.T) {
	for _, k := range allScaleKernels {
		for _, typ := range []frame.SampleType{frame.Uint8, frame.Uint16, frame.Float32} {
			t.Run(fmt.Sprintf("%v_%v", k, typ), func(t *testing.T) {
				s := newTestScaler(t, ScaleParams{
					Format: frame.Format420, InWidth: 10, InHeight: 6, OutWidth: 10, OutHeight: 6, Kernel: k,
				})
				assert.Nil(t, s.Bank(frame.Y, false))
				assert.Nil(t, s.Bank(frame.U, true))

				in := newTestFrame(t, 10, 6, frame.Format420, typ)
				fillRandom(in, 7)
				out := newTestFrame(t, 10, 6, frame.Format420, typ)
				require.NoError(t, s.Process(out, in))
				for c := range frame.MaxComponents {
					assert.Equal(t, in.Values(c), out.Values(c))
				}
			})
		}
	}
}

func TestScaler_UnitRatioOneAxis(t *testing.T) {
	// Width changes, height does not: only the horizontal bank exists.
	s := newTestScaler(t, ScaleParams{
		Format: frame.Format444, InWidth: 9, InHeight: 5, OutWidth: 12, OutHeight: 5, Kernel: ScaleLanczos3,
	})
	require.NotNil(t, s.Bank(frame.Y, false))
	assert.Nil(t, s.Bank(frame.Y, true))

	in := newTestFrame(t, 9, 5, frame.Format444, frame.Uint8)
	fillPattern(in, frame.Y, func(_, y int) float64 { return float64(20 * y) })
	out := newTestFrame(t, 12, 5, frame.Format444, frame.Uint8)
	require.NoError(t, s.Process(out, in))

	for y := range 5 {
		for x := range 12 {
			assert.InDelta(t, float64(20*y), sampleAt(out, frame.Y, x, y), 1, "(%d,%d)", x, y)
		}
	}
}

func TestScaler_ConstantPreserved(t *testing.T) {
	values := map[frame.SampleType]float64{frame.Uint8: 77, frame.Uint16: 513, frame.Float32: 0.375}
	sizes := []struct{ w, h int }{{11, 5}, {23, 13}, {8, 4}, {16, 3}}

	for _, k := range allScaleKernels {
		for _, size := range sizes {
			for typ, v := range values {
				for _, fixed := range []bool{false, true} {
					name := fmt.Sprintf("%v_%dx%d_%v_fixed=%v", k, size.w, size.h, typ, fixed)
					t.Run(name, func(t *testing.T) {
						s := newTestScaler(t, ScaleParams{
							Format: frame.Format420, InWidth: 16, InHeight: 8,
							OutWidth: size.w, OutHeight: size.h, Kernel: k, FixedPoint: fixed,
						})
						in := newTestFrame(t, 16, 8, frame.Format420, typ)
						out := newTestFrame(t, size.w, size.h, frame.Format420, typ)
						for c := range frame.MaxComponents {
							in.Fill(c, v)
						}
						require.NoError(t, s.Process(out, in))
						for c := range frame.MaxComponents {
							for _, got := range out.Values(c) {
								require.InDelta(t, v, got, 1e-6, "component %d", c)
							}
						}
					})
				}
			}
		}
	}
}

func TestScaler_LinearHalving(t *testing.T) {
	for _, fixed := range []bool{false, true} {
		t.Run(fmt.Sprintf("fixed=%v", fixed), func(t *testing.T) {
			s := newTestScaler(t, ScaleParams{
				Format: frame.Format400, InWidth: 4, InHeight: 1, OutWidth: 2, OutHeight: 1,
				Kernel: ScaleBilinear, FixedPoint: fixed,
			})
			in := newTestFrame(t, 4, 1, frame.Format400, frame.Uint8)
			copy(in.Planes8[frame.Y].Data, []uint8{0, 0, 100, 100})
			out := newTestFrame(t, 2, 1, frame.Format400, frame.Uint8)

			require.NoError(t, s.Process(out, in))
			assert.Equal(t, []uint8{13, 88}, out.Planes8[frame.Y].Data)
		})
	}
}

func TestScaler_NearestUpscale(t *testing.T) {
	s := newTestScaler(t, ScaleParams{
		Format: frame.Format400, InWidth: 3, InHeight: 2, OutWidth: 6, OutHeight: 4, Kernel: ScaleNearest,
	})
	in := newTestFrame(t, 3, 2, frame.Format400, frame.Uint16)
	fillRandom(in, 8)
	out := newTestFrame(t, 6, 4, frame.Format400, frame.Uint16)
	require.NoError(t, s.Process(out, in))

	for y := range 4 {
		for x := range 6 {
			assert.InDelta(t, sampleAt(in, frame.Y, x/2, y/2), sampleAt(out, frame.Y, x, y), 0)
		}
	}
}

func TestScaler_MonotonicClipped(t *testing.T) {
	step := func(x, _ int) float64 {
		if x < 8 {
			return 0
		}
		return 1
	}

	down := newTestScaler(t, ScaleParams{
		Format: frame.Format400, InWidth: 16, InHeight: 2, OutWidth: 7, OutHeight: 2, Kernel: ScaleLanczos3,
	})
	in := newTestFrame(t, 16, 2, frame.Format400, frame.Float32)
	fillPattern(in, frame.Y, step)
	out := newTestFrame(t, 7, 2, frame.Format400, frame.Float32)
	require.NoError(t, down.Process(out, in))
	testutil.AssertAllInRange(t, out.Values(frame.Y), 0, 1)

	up := newTestScaler(t, ScaleParams{
		Format: frame.Format400, InWidth: 8, InHeight: 2, OutWidth: 19, OutHeight: 2, Kernel: ScaleLanczos3,
	})
	in = newTestFrame(t, 8, 2, frame.Format400, frame.Float32)
	fillPattern(in, frame.Y, func(x, y int) float64 { return step(2*x, y) })
	out = newTestFrame(t, 19, 2, frame.Format400, frame.Float32)
	require.NoError(t, up.Process(out, in))
	_, hi := testutil.MinMax(out.Values(frame.Y))
	assert.Greater(t, hi, 1.0, "upscaling keeps Lanczos overshoot in float frames")
}

func TestScaler_FixedMatchesFloat(t *testing.T) {
	for _, k := range []ScaleKernel{ScaleBilinear, ScaleBicubic, ScaleLanczos3, ScaleKaiser} {
		for _, size := range []struct{ w, h int }{{10, 7}, {24, 20}} {
			t.Run(fmt.Sprintf("%v_%dx%d", k, size.w, size.h), func(t *testing.T) {
				build := func(fixed bool) *Scaler {
					return newTestScaler(t, ScaleParams{
						Format: frame.Format420, InWidth: 16, InHeight: 12, OutWidth: size.w, OutHeight: size.h,
						Kernel: k, FixedPoint: fixed,
					})
				}
				in := newTestFrame(t, 16, 12, frame.Format420, frame.Uint8)
				fillRandom(in, 9)
				floatOut := newTestFrame(t, size.w, size.h, frame.Format420, frame.Uint8)
				fixedOut := newTestFrame(t, size.w, size.h, frame.Format420, frame.Uint8)
				require.NoError(t, build(false).Process(floatOut, in))
				require.NoError(t, build(true).Process(fixedOut, in))

				for c := range frame.MaxComponents {
					testutil.AssertWithinLSB(t, planes8(floatOut, c), planes8(fixedOut, c), 1)
				}
			})
		}
	}
}

func TestScaler_ChromaBanks(t *testing.T) {
	s := newTestScaler(t, ScaleParams{
		Format: frame.Format420, InWidth: 16, InHeight: 8, OutWidth: 8, OutHeight: 4, Kernel: ScaleBilinear,
	})

	luma := s.Bank(frame.Y, false)
	require.NotNil(t, luma)
	assert.Equal(t, 16, luma.InSize)
	assert.Equal(t, 8, luma.OutSize)

	chromaH := s.Bank(frame.U, false)
	require.NotNil(t, chromaH)
	assert.Equal(t, 8, chromaH.InSize)
	assert.Equal(t, 4, chromaH.OutSize)

	chromaV := s.Bank(frame.V, true)
	require.NotNil(t, chromaV)
	assert.Equal(t, 4, chromaV.InSize)
	assert.Equal(t, 2, chromaV.OutSize)

	// Luma is center aligned; co-sited chroma output 0 sits a quarter
	// chroma sample right of input 0.
	assert.InDeltaSlice(t, []float64{0.125, 0.375, 0.375, 0.125}, luma.Weights(1), 1e-12)
	assert.InDeltaSlice(t, []float64{0.1875, 0.4375, 0.3125, 0.0625}, chromaH.Weights(1), 1e-12)
	assert.Equal(t, 1, chromaH.Start(1))
}

func TestScaler_CustomFunc(t *testing.T) {
	s := newTestScaler(t, ScaleParams{
		Format: frame.Format444, InWidth: 8, InHeight: 8, OutWidth: 4, OutHeight: 4,
		Kernel: ScaleNearest, Func: filter.Lanczos{Lobes: 4},
	})
	info := s.Info()
	assert.Equal(t, "scale/lanczos4", info.Name)
	assert.Equal(t, 16, info.Taps)
}

func TestScaler_ProcessErrors(t *testing.T) {
	s := newTestScaler(t, ScaleParams{
		Format: frame.Format420, InWidth: 8, InHeight: 4, OutWidth: 4, OutHeight: 2, Kernel: ScaleBicubic,
	})

	tests := []struct {
		name    string
		out, in *frame.Frame
		wantErr error
	}{
		{"format", newTestFrame(t, 4, 2, frame.Format444, frame.Uint8),
			newTestFrame(t, 8, 4, frame.Format444, frame.Uint8), ErrFormatMismatch},
		{"storage", newTestFrame(t, 4, 2, frame.Format420, frame.Float32),
			newTestFrame(t, 8, 4, frame.Format420, frame.Uint8), ErrFormatMismatch},
		{"input_size", newTestFrame(t, 4, 2, frame.Format420, frame.Uint8),
			newTestFrame(t, 6, 4, frame.Format420, frame.Uint8), ErrDimensionMismatch},
		{"output_size", newTestFrame(t, 8, 4, frame.Format420, frame.Uint8),
			newTestFrame(t, 8, 4, frame.Format420, frame.Uint8), ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Process(tt.out, tt.in), tt.wantErr)
		})
	}
}

func TestScaleKernel_String(t *testing.T) {
	names := []string{"nearest", "bilinear", "bicubic", "lanczos2", "lanczos3", "kaiser"}
	for i, k := range allScaleKernels {
		assert.Equal(t, names[i], k.String())
		fn, err := k.Func()
		require.NoError(t, err)
		assert.NotEmpty(t, fn.Name())
	}
	assert.Equal(t, "ScaleKernel(9)", ScaleKernel(9).String())
}

func BenchmarkScaler_1080to720(b *testing.B) {
	s := newTestScaler(b, ScaleParams{
		Format: frame.Format420, InWidth: 1920, InHeight: 1080, OutWidth: 1280, OutHeight: 720, Kernel: ScaleLanczos3,
	})
	in := newTestFrame(b, 1920, 1080, frame.Format420, frame.Uint8)
	out := newTestFrame(b, 1280, 720, frame.Format420, frame.Uint8)

	b.ResetTimer()
	for b.Loop() {
		_ = s.Process(out, in)
	}
}
