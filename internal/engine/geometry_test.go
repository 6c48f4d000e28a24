package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-video-resampler/internal/frame"
)

func TestNewGeometry(t *testing.T) {
	g, err := NewGeometry(1920, 1080, 1280, 720, frame.LocationLeft)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, g.FactorX, 1e-12)
	assert.InDelta(t, 1.5, g.FactorY, 1e-12)
	assert.True(t, g.Scaled())
	assert.True(t, g.Downsamples())

	same, err := NewGeometry(64, 32, 64, 32, frame.LocationCenter)
	require.NoError(t, err)
	assert.False(t, same.Scaled())
	assert.False(t, same.Downsamples())

	up, err := NewGeometry(64, 32, 128, 32, frame.LocationCenter)
	require.NoError(t, err)
	assert.True(t, up.Scaled())
	assert.False(t, up.Downsamples())
}

func TestNewGeometry_Errors(t *testing.T) {
	tests := []struct {
		name                 string
		inW, inH, outW, outH int
		loc                  frame.ChromaLocation
	}{
		{"zero_width", 0, 4, 4, 4, frame.LocationLeft},
		{"negative_output", 4, 4, 4, -1, frame.LocationLeft},
		{"location_low", 4, 4, 4, 4, frame.ChromaLocation(-1)},
		{"location_high", 4, 4, 4, 4, frame.LocationBottom + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometry(tt.inW, tt.inH, tt.outW, tt.outH, tt.loc)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestGeometry_Siting(t *testing.T) {
	tests := []struct {
		loc        frame.ChromaLocation
		horizontal frame.Sited
		vertical   frame.Sited
		align      int
	}{
		{frame.LocationLeft, frame.Cosited, frame.Interstitial, 0},
		{frame.LocationCenter, frame.Interstitial, frame.Interstitial, 0},
		{frame.LocationTopLeft, frame.Cosited, frame.Cosited, 0},
		{frame.LocationTop, frame.Interstitial, frame.Cosited, 0},
		{frame.LocationBottomLeft, frame.Cosited, frame.Cosited, 1},
		{frame.LocationBottom, frame.Interstitial, frame.Cosited, 1},
	}
	for _, tt := range tests {
		g, err := NewGeometry(8, 8, 8, 8, tt.loc)
		require.NoError(t, err)

		h, hAlign := g.horizontalSiting()
		assert.Equal(t, tt.horizontal, h, "location %d", tt.loc)
		assert.Zero(t, hAlign)

		v, vAlign := g.verticalSiting()
		assert.Equal(t, tt.vertical, v, "location %d", tt.loc)
		assert.Equal(t, tt.align, vAlign, "location %d", tt.loc)
	}
}

func TestChromaOffset(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		sited  frame.Sited
		parity int
		want   float64
	}{
		{"unit_cosited", 1, frame.Cosited, 0, 0},
		{"unit_interstitial", 1, frame.Interstitial, 0, 0},
		{"halve_cosited_top", 2, frame.Cosited, 0, 0.25},
		{"halve_interstitial", 2, frame.Interstitial, 0, 0.5},
		{"halve_cosited_bottom", 2, frame.Cosited, 1, 0.75},
		{"double_interstitial", 0.5, frame.Interstitial, 0, -0.25},
		{"double_cosited_top", 0.5, frame.Cosited, 0, -0.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, chromaOffset(tt.factor, tt.sited, tt.parity), 1e-12)
		})
	}
}
