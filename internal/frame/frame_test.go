package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"valid_8bit_420", Spec{Width: 16, Height: 8, Format: Format420, Type: Uint8, BitDepth: 8}, false},
		{"valid_10bit_444", Spec{Width: 4, Height: 4, Format: Format444, Type: Uint16, BitDepth: 10}, false},
		{"valid_float_422", Spec{Width: 4, Height: 4, Format: Format422, Type: Float32}, false},
		{"zero_width", Spec{Width: 0, Height: 8, Format: Format420, Type: Uint8, BitDepth: 8}, true},
		{"uint8_wrong_depth", Spec{Width: 4, Height: 4, Format: Format420, Type: Uint8, BitDepth: 10}, true},
		{"uint16_depth_too_high", Spec{Width: 4, Height: 4, Format: Format420, Type: Uint16, BitDepth: 17}, true},
		{"unknown_format", Spec{Width: 4, Height: 4, Format: ChromaFormat(9), Type: Uint8, BitDepth: 8}, true},
		{"unknown_type", Spec{Width: 4, Height: 4, Format: Format420, Type: SampleType(7), BitDepth: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpec)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_PlaneGeometry(t *testing.T) {
	tests := []struct {
		format      ChromaFormat
		width       int
		height      int
		wantChromaW int
		wantChromaH int
		wantPlanes  int
	}{
		{Format444, 8, 6, 8, 6, 3},
		{Format422, 8, 6, 4, 6, 3},
		{Format420, 8, 6, 4, 3, 3},
		{Format420, 7, 5, 4, 3, 3},
		{Format400, 8, 6, 8, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			f, err := New(Spec{Width: tt.width, Height: tt.height, Format: tt.format, Type: Uint16, BitDepth: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlanes, f.Components())
			assert.Equal(t, tt.width, f.PlaneWidth(Y))
			assert.Equal(t, tt.height, f.PlaneHeight(Y))
			if tt.wantPlanes > 1 {
				assert.Equal(t, tt.wantChromaW, f.PlaneWidth(U))
				assert.Equal(t, tt.wantChromaH, f.PlaneHeight(V))
				assert.Len(t, f.Planes16[U].Data, tt.wantChromaW*tt.wantChromaH)
				// Fresh chroma reads as neutral grey.
				assert.Equal(t, uint16(512), f.Planes16[V].At(0, 0))
			}
		})
	}
}

func TestFrame_ValueRange(t *testing.T) {
	f8, err := New(Spec{Width: 2, Height: 2, Format: Format444, Type: Uint8, BitDepth: 8})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f8.MinValue(U), 0)
	assert.InDelta(t, 128.0, f8.MidValue(U), 0)
	assert.InDelta(t, 255.0, f8.MaxValue(Y), 0)

	f12, err := New(Spec{Width: 2, Height: 2, Format: Format444, Type: Uint16, BitDepth: 12})
	require.NoError(t, err)
	assert.InDelta(t, 2048.0, f12.MidValue(Y), 0)
	assert.InDelta(t, 4095.0, f12.MaxValue(V), 0)

	ff, err := New(Spec{Width: 2, Height: 2, Format: Format444, Type: Float32})
	require.NoError(t, err)
	assert.Equal(t, 32, ff.BitDepth)
	assert.True(t, ff.IsFloat())
	assert.InDelta(t, 0.0, ff.MinValue(Y), 0)
	assert.InDelta(t, 1.0, ff.MaxValue(Y), 0)
	assert.InDelta(t, -0.5, ff.MinValue(U), 0)
	assert.InDelta(t, 0.0, ff.MidValue(U), 0)
	assert.InDelta(t, 0.5, ff.MaxValue(V), 0)
}

func TestComponent_TypeMatch(t *testing.T) {
	f, err := New(Spec{Width: 4, Height: 4, Format: Format420, Type: Uint16, BitDepth: 10})
	require.NoError(t, err)

	p := Component[uint16](f, U)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Width)
	p.Set(1, 1, 700)
	assert.Equal(t, uint16(700), f.Planes16[U].At(1, 1))

	assert.Nil(t, Component[uint8](f, U))
	assert.Nil(t, Component[float32](f, U))
}

func TestPlane_RowStride(t *testing.T) {
	p := Plane[uint8]{
		Data:   make([]uint8, 3*8),
		Width:  5,
		Height: 3,
		Stride: 8,
	}
	require.True(t, p.Valid())
	p.Fill(9)
	assert.Len(t, p.Row(2), 5)
	// Padding is untouched.
	assert.Equal(t, uint8(0), p.Data[5])
	assert.Equal(t, uint8(9), p.Data[8])

	short := Plane[uint8]{Data: make([]uint8, 10), Width: 5, Height: 3, Stride: 5}
	assert.False(t, short.Valid())
}

func TestCopyPlaneAndTags(t *testing.T) {
	spec := Spec{Width: 4, Height: 2, Format: Format422, Type: Float32}
	src, err := New(spec)
	require.NoError(t, err)
	dst, err := New(spec)
	require.NoError(t, err)

	src.Fill(Y, 0.25)
	src.FrameNo = 42
	src.Available = false
	CopyPlane(dst, src, Y)
	CopyTags(dst, src)

	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25}, dst.Values(Y))
	assert.Equal(t, 42, dst.FrameNo)
	assert.False(t, dst.Available)
}

func TestChromaLocation_Siting(t *testing.T) {
	assert.Equal(t, Cosited, LocationLeft.Horizontal())
	assert.Equal(t, Interstitial, LocationCenter.Horizontal())

	s, parity := LocationLeft.Vertical()
	assert.Equal(t, Interstitial, s)
	assert.Equal(t, 0, parity)

	s, parity = LocationTopLeft.Vertical()
	assert.Equal(t, Cosited, s)
	assert.Equal(t, 0, parity)

	s, parity = LocationBottom.Vertical()
	assert.Equal(t, Cosited, s)
	assert.Equal(t, 1, parity)

	assert.False(t, ChromaLocation(6).Valid())
}
