package resampler

import (
	"github.com/tphakala/go-video-resampler/internal/frame"
)

// Frame is a planar Y'CbCr picture. See NewFrame.
type Frame = frame.Frame

// FrameSpec describes the layout of a frame.
type FrameSpec = frame.Spec

// ChromaFormat identifies the chroma subsampling of a frame.
type ChromaFormat = frame.ChromaFormat

// Chroma formats.
const (
	Format400 = frame.Format400
	Format420 = frame.Format420
	Format422 = frame.Format422
	Format444 = frame.Format444
)

// ChromaLocation gives the siting of chroma samples relative to luma.
type ChromaLocation = frame.ChromaLocation

// Chroma locations, numbered as H.273 chroma_sample_loc_type.
const (
	LocationLeft       = frame.LocationLeft
	LocationCenter     = frame.LocationCenter
	LocationTopLeft    = frame.LocationTopLeft
	LocationTop        = frame.LocationTop
	LocationBottomLeft = frame.LocationBottomLeft
	LocationBottom     = frame.LocationBottom
)

// SampleType identifies the storage type of a frame's planes.
type SampleType = frame.SampleType

// Sample types.
const (
	Uint8   = frame.Uint8
	Uint16  = frame.Uint16
	Float32 = frame.Float32
)

// Component indices.
const (
	ComponentY = frame.Y
	ComponentU = frame.U
	ComponentV = frame.V
)

// ErrInvalidFrame is returned when a frame cannot be allocated.
var ErrInvalidFrame = frame.ErrInvalidSpec

// NewFrame allocates a frame. Chroma planes start at the neutral value.
func NewFrame(spec FrameSpec) (*Frame, error) {
	return frame.New(spec)
}

// NewFrame8 allocates an 8-bit frame.
func NewFrame8(width, height int, format ChromaFormat) (*Frame, error) {
	return frame.New(frame.Spec{Width: width, Height: height, Format: format, Type: frame.Uint8, BitDepth: bitDepth8})
}

// NewFrame10 allocates a 10-bit frame stored in uint16 planes.
func NewFrame10(width, height int, format ChromaFormat) (*Frame, error) {
	return frame.New(frame.Spec{Width: width, Height: height, Format: format, Type: frame.Uint16, BitDepth: bitDepth10})
}

// NewFrame16 allocates a 16-bit frame.
func NewFrame16(width, height int, format ChromaFormat) (*Frame, error) {
	return frame.New(frame.Spec{Width: width, Height: height, Format: format, Type: frame.Uint16, BitDepth: bitDepth16})
}

// NewFrameFloat allocates a float32 frame: luma in [0, 1], chroma in
// [-0.5, 0.5].
func NewFrameFloat(width, height int, format ChromaFormat) (*Frame, error) {
	return frame.New(frame.Spec{Width: width, Height: height, Format: format, Type: frame.Float32})
}
