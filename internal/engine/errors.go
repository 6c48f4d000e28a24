package engine

import "errors"

// Errors returned at construction and processing boundaries.
var (
	// ErrUnsupported indicates a format pair, method or adaptive mode the
	// engine cannot build a converter for.
	ErrUnsupported = errors.New("unsupported conversion")

	// ErrFormatMismatch indicates frames whose sample type, bit depth or
	// chroma format differ from what the converter was built for.
	ErrFormatMismatch = errors.New("frame format mismatch")

	// ErrDimensionMismatch indicates frames whose size differs from the
	// converter geometry.
	ErrDimensionMismatch = errors.New("frame dimension mismatch")
)
