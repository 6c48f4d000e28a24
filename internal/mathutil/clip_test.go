package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 0, Clip(-3, 0, 255))
	assert.Equal(t, 255, Clip(300, 0, 255))
	assert.Equal(t, 128, Clip(128, 0, 255))
	assert.InDelta(t, -0.5, Clip(-0.75, -0.5, 0.5), 0)
	assert.Equal(t, int64(1023), Clip(int64(5000), 0, 1023))
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, size, want int
	}{
		{-5, 10, 0},
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 9},
		{42, 10, 9},
		{3, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampIndex(tt.i, tt.size), "ClampIndex(%d, %d)", tt.i, tt.size)
	}
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 3.0, Round(2.5), 0)
	assert.InDelta(t, 2.0, Round(2.49), 0)
	assert.InDelta(t, -2.0, Round(-2.5), 0)
	assert.InDelta(t, 0.0, Round(-0.5), 0, "ties round up")
	assert.InDelta(t, 0.0, Round(-0.2), 0)
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, div, mod int
	}{
		{7, 2, 3, 1},
		{6, 2, 3, 0},
		{-1, 2, -1, 1},
		{-2, 2, -1, 0},
		{-3, 2, -2, 1},
		{0, 2, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.div, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.mod, FloorMod(tt.a, tt.b), "FloorMod(%d, %d)", tt.a, tt.b)
	}
}
