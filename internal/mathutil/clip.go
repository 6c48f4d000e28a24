package mathutil

import "math"

// Clip limits v to [lo, hi].
func Clip[T int | int32 | int64 | float32 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampIndex limits an index to the valid range [0, size).
// Out-of-range source positions replicate the edge sample.
func ClampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// Round rounds half up (floor(v + 0.5)), the convention used when storing
// filtered values into integer planes.
func Round(v float64) float64 {
	return math.Floor(v + roundingBias)
}

// FloorDiv returns floor(a / b) for b > 0.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// FloorMod returns a - b*FloorDiv(a, b), always in [0, b) for b > 0.
func FloorMod(a, b int) int {
	return a - b*FloorDiv(a, b)
}
