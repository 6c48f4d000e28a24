// Package frame provides the multi-plane frame buffer the converters read
// from and write into. Frames own their planes; converters never allocate or
// free them.
package frame

import (
	"errors"
	"fmt"
)

// Component indices.
const (
	Y = iota
	U
	V

	MaxComponents = 3
)

// Bit depth limits for integer frames.
const (
	minBitDepth     = 8
	maxBitDepth8    = 8
	maxBitDepth16   = 16
	floatBitDepth   = 32
	floatLumaMax    = 1.0
	floatLumaMid    = 0.5
	floatChromaHalf = 0.5
)

// ErrInvalidSpec is returned when a frame cannot be built from a Spec.
var ErrInvalidSpec = errors.New("invalid frame specification")

// Spec describes the layout of a frame.
type Spec struct {
	Width    int
	Height   int
	Format   ChromaFormat
	Type     SampleType
	BitDepth int
}

// Validate checks that a frame can be allocated from s.
func (s *Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidSpec, s.Width, s.Height)
	}
	if !s.Format.Valid() {
		return fmt.Errorf("%w: unknown chroma format %d", ErrInvalidSpec, int(s.Format))
	}
	switch s.Type {
	case Uint8:
		if s.BitDepth != maxBitDepth8 {
			return fmt.Errorf("%w: uint8 frames are 8-bit, got %d", ErrInvalidSpec, s.BitDepth)
		}
	case Uint16:
		if s.BitDepth < minBitDepth || s.BitDepth > maxBitDepth16 {
			return fmt.Errorf("%w: uint16 bit depth %d out of range [%d, %d]",
				ErrInvalidSpec, s.BitDepth, minBitDepth, maxBitDepth16)
		}
	case Float32:
	default:
		return fmt.Errorf("%w: unknown sample type %d", ErrInvalidSpec, int(s.Type))
	}
	return nil
}

// Frame is a planar picture with per-component geometry. Only the plane set
// matching Type is populated.
type Frame struct {
	Spec

	// FrameNo and Available are carried through every conversion unchanged.
	FrameNo   int
	Available bool

	Planes8  [MaxComponents]Plane[uint8]
	Planes16 [MaxComponents]Plane[uint16]
	PlanesF  [MaxComponents]Plane[float32]
}

// New allocates a frame. Float frames report a bit depth of 32.
func New(spec Spec) (*Frame, error) {
	if spec.Type == Float32 {
		spec.BitDepth = floatBitDepth
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	f := &Frame{Spec: spec, Available: true}
	for c := range spec.Format.Components() {
		w, h := f.PlaneWidth(c), f.PlaneHeight(c)
		switch spec.Type {
		case Uint8:
			f.Planes8[c] = NewPlane[uint8](w, h)
		case Uint16:
			f.Planes16[c] = NewPlane[uint16](w, h)
		case Float32:
			f.PlanesF[c] = NewPlane[float32](w, h)
		}
	}
	f.fillNeutral()
	return f, nil
}

// fillNeutral sets chroma planes to the mid value so a fresh 4:0:0 upgrade
// or an untouched plane reads as grey rather than green.
func (f *Frame) fillNeutral() {
	for c := 1; c < f.Format.Components(); c++ {
		switch f.Type {
		case Uint8:
			f.Planes8[c].Fill(uint8(f.MidValue(c)))
		case Uint16:
			f.Planes16[c].Fill(uint16(f.MidValue(c)))
		case Float32:
			f.PlanesF[c].Fill(float32(f.MidValue(c)))
		}
	}
}

// Components returns the number of planes in the frame.
func (f *Frame) Components() int {
	return f.Format.Components()
}

// PlaneWidth returns the width of component c.
func (f *Frame) PlaneWidth(c int) int {
	if c == Y {
		return f.Width
	}
	return f.Format.ChromaWidth(f.Width)
}

// PlaneHeight returns the height of component c.
func (f *Frame) PlaneHeight(c int) int {
	if c == Y {
		return f.Height
	}
	return f.Format.ChromaHeight(f.Height)
}

// MinValue returns the smallest legal sample value of component c.
func (f *Frame) MinValue(c int) float64 {
	if f.Type == Float32 {
		if c == Y {
			return 0
		}
		return -floatChromaHalf
	}
	return 0
}

// MidValue returns the neutral sample value of component c.
func (f *Frame) MidValue(c int) float64 {
	if f.Type == Float32 {
		if c == Y {
			return floatLumaMid
		}
		return 0
	}
	return float64(int(1) << (f.BitDepth - 1))
}

// MaxValue returns the largest legal sample value of component c.
func (f *Frame) MaxValue(c int) float64 {
	if f.Type == Float32 {
		if c == Y {
			return floatLumaMax
		}
		return floatChromaHalf
	}
	return float64(int(1)<<f.BitDepth - 1)
}

// IsFloat reports whether the frame stores floating-point samples.
func (f *Frame) IsFloat() bool {
	return f.Type == Float32
}

// SameStorage reports whether two frames share sample type and bit depth.
func (f *Frame) SameStorage(o *Frame) bool {
	return f.Type == o.Type && f.BitDepth == o.BitDepth
}

// Component returns the typed plane c of f. T must match f.Type; a mismatch
// returns nil.
func Component[T Sample](f *Frame, c int) *Plane[T] {
	var zero T
	switch any(zero).(type) {
	case uint8:
		if f.Type != Uint8 {
			return nil
		}
		p, _ := any(&f.Planes8[c]).(*Plane[T])
		return p
	case uint16:
		if f.Type != Uint16 {
			return nil
		}
		p, _ := any(&f.Planes16[c]).(*Plane[T])
		return p
	case float32:
		if f.Type != Float32 {
			return nil
		}
		p, _ := any(&f.PlanesF[c]).(*Plane[T])
		return p
	}
	return nil
}

// CopyPlane copies component c of src into dst. Both frames must share
// storage and the plane geometry.
func CopyPlane(dst, src *Frame, c int) {
	switch src.Type {
	case Uint8:
		dst.Planes8[c].CopyFrom(&src.Planes8[c])
	case Uint16:
		dst.Planes16[c].CopyFrom(&src.Planes16[c])
	case Float32:
		dst.PlanesF[c].CopyFrom(&src.PlanesF[c])
	}
}

// CopyTags copies the frame number and availability flag.
func CopyTags(dst, src *Frame) {
	dst.FrameNo = src.FrameNo
	dst.Available = src.Available
}

// Fill sets every sample of component c to v (converted to the storage type).
func (f *Frame) Fill(c int, v float64) {
	switch f.Type {
	case Uint8:
		f.Planes8[c].Fill(uint8(v))
	case Uint16:
		f.Planes16[c].Fill(uint16(v))
	case Float32:
		f.PlanesF[c].Fill(float32(v))
	}
}

// Values returns component c as float64 values in raster order.
func (f *Frame) Values(c int) []float64 {
	w, h := f.PlaneWidth(c), f.PlaneHeight(c)
	out := make([]float64, 0, w*h)
	for y := range h {
		switch f.Type {
		case Uint8:
			for _, v := range f.Planes8[c].Row(y) {
				out = append(out, float64(v))
			}
		case Uint16:
			for _, v := range f.Planes16[c].Row(y) {
				out = append(out, float64(v))
			}
		case Float32:
			for _, v := range f.PlanesF[c].Row(y) {
				out = append(out, float64(v))
			}
		}
	}
	return out
}
