// Package engine implements the chroma format converters and the frame
// scaler. Converters are built once from a Params value, precompute their
// filter banks and can then process any number of frames.
package engine

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/simdops"
)

// Method selects how chroma samples are interpolated.
type Method int

const (
	// MethodNearest replicates or decimates samples by the integer ratio.
	MethodNearest Method = iota

	// MethodBilinear uses the bilinear entry of the filter table.
	MethodBilinear

	// MethodPolyphase uses the table entry chosen by Params.Filter.
	MethodPolyphase
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodNearest:
		return "nearest"
	case MethodBilinear:
		return "bilinear"
	case MethodPolyphase:
		return "polyphase"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// AdaptiveMode selects a per-sample filter choice for chroma conversion.
type AdaptiveMode int

const (
	// AdaptiveNone uses one filter everywhere.
	AdaptiveNone AdaptiveMode = iota

	// AdaptiveMulti decides per sample and per plane from the local gradient.
	AdaptiveMulti

	// AdaptiveCrEdge decides from the gradient of the Cr (V) plane and
	// applies the same decisions to Cb (U).
	AdaptiveCrEdge

	// AdaptiveCrBounds decides on the Cr plane whether the generic filter
	// overshoots the local source range and applies the decisions to Cb.
	AdaptiveCrBounds
)

// String returns the mode name.
func (a AdaptiveMode) String() string {
	switch a {
	case AdaptiveNone:
		return "none"
	case AdaptiveMulti:
		return "multi"
	case AdaptiveCrEdge:
		return "cr-edge"
	case AdaptiveCrBounds:
		return "cr-bounds"
	default:
		return fmt.Sprintf("AdaptiveMode(%d)", int(a))
	}
}

// Params configures a chroma converter.
type Params struct {
	InputFormat  frame.ChromaFormat
	OutputFormat frame.ChromaFormat

	// Width and Height are the luma size, identical on both sides.
	Width  int
	Height int

	Method   Method
	Filter   filter.FilterID
	Location frame.ChromaLocation

	Adaptive      AdaptiveMode
	UseMinMax     bool
	EdgeThreshold float64

	// Policy replaces the built-in selection predicate of adaptive modes.
	Policy Policy

	// FixedPoint runs integer frames through the int64 path.
	FixedPoint bool

	// Table supplies filter definitions; nil selects filter.DefaultTable().
	Table *filter.Table
}

// Converter processes frames of one fixed layout into another.
type Converter interface {
	// Process writes the conversion of in into out. Both frames must match
	// the converter's formats and sizes and share sample type and bit depth;
	// otherwise nothing is written and an error is returned.
	Process(out, in *frame.Frame) error

	// Info describes the converter.
	Info() Info
}

// Info describes a converter for diagnostics.
type Info struct {
	Name string

	InputFormat  frame.ChromaFormat
	OutputFormat frame.ChromaFormat

	InWidth   int
	InHeight  int
	OutWidth  int
	OutHeight int

	// Taps is the widest filter of any pass.
	Taps int

	// MemoryUsage is the approximate size of coefficient tables and scratch
	// buffers in bytes.
	MemoryUsage int64

	SIMDInfo string
}

// NewConverter builds the converter variant for p.
func NewConverter(p Params) (Converter, error) {
	if !p.InputFormat.Valid() || !p.OutputFormat.Valid() {
		return nil, fmt.Errorf("%w: unknown chroma format %v→%v", ErrUnsupported, p.InputFormat, p.OutputFormat)
	}
	geom, err := NewGeometry(p.Width, p.Height, p.Width, p.Height, p.Location)
	if err != nil {
		return nil, err
	}
	if p.Table == nil {
		p.Table = filter.DefaultTable()
	}

	if p.InputFormat == p.OutputFormat {
		return newPassthrough(p.InputFormat, geom), nil
	}
	if p.InputFormat == frame.Format400 || p.OutputFormat == frame.Format400 {
		return nil, fmt.Errorf("%w: %v→%v", ErrUnsupported, p.InputFormat, p.OutputFormat)
	}

	switch {
	case p.Adaptive != AdaptiveNone:
		if p.Method == MethodNearest {
			return nil, fmt.Errorf("%w: adaptive %v needs a filtering method, got %v",
				ErrUnsupported, p.Adaptive, p.Method)
		}
		return newAdaptive(p, geom)
	case p.Method == MethodNearest:
		return newNearest(p.InputFormat, p.OutputFormat, geom), nil
	case p.Method == MethodBilinear:
		p.Filter = filter.FilterBilinear
		return newPolyphase(p, geom)
	case p.Method == MethodPolyphase:
		return newPolyphase(p, geom)
	default:
		return nil, fmt.Errorf("%w: unknown method %v", ErrUnsupported, p.Method)
	}
}

// layout is the expected frame layout on one side of a conversion.
type layout struct {
	format frame.ChromaFormat
	width  int
	height int
}

// checkFrames validates both frames before anything is written.
func checkFrames(out, in *frame.Frame, want, wantOut layout) error {
	if out == nil || in == nil {
		return fmt.Errorf("%w: nil frame", ErrFormatMismatch)
	}
	if !in.SameStorage(out) {
		return fmt.Errorf("%w: input %v/%d-bit, output %v/%d-bit",
			ErrFormatMismatch, in.Type, in.BitDepth, out.Type, out.BitDepth)
	}
	if in.Format != want.format || out.Format != wantOut.format {
		return fmt.Errorf("%w: frames are %v→%v, converter expects %v→%v",
			ErrFormatMismatch, in.Format, out.Format, want.format, wantOut.format)
	}
	if in.Width != want.width || in.Height != want.height {
		return fmt.Errorf("%w: input is %dx%d, expected %dx%d",
			ErrDimensionMismatch, in.Width, in.Height, want.width, want.height)
	}
	if out.Width != wantOut.width || out.Height != wantOut.height {
		return fmt.Errorf("%w: output is %dx%d, expected %dx%d",
			ErrDimensionMismatch, out.Width, out.Height, wantOut.width, wantOut.height)
	}
	for _, f := range []*frame.Frame{in, out} {
		for c := range f.Components() {
			if !planeValid(f, c) {
				return fmt.Errorf("%w: plane %d of %dx%d frame is too small", ErrDimensionMismatch, c, f.Width, f.Height)
			}
		}
	}
	return nil
}

// planeValid checks that plane c holds the geometry the frame declares.
func planeValid(f *frame.Frame, c int) bool {
	w, h := f.PlaneWidth(c), f.PlaneHeight(c)
	switch f.Type {
	case frame.Uint8:
		p := &f.Planes8[c]
		return p.Width == w && p.Height == h && p.Valid()
	case frame.Uint16:
		p := &f.Planes16[c]
		return p.Width == w && p.Height == h && p.Valid()
	case frame.Float32:
		p := &f.PlanesF[c]
		return p.Width == w && p.Height == h && p.Valid()
	}
	return false
}

// newInfo fills the common fields of Info.
func newInfo(name string, in, out frame.ChromaFormat, g Geometry) Info {
	return Info{
		Name:         name,
		InputFormat:  in,
		OutputFormat: out,
		InWidth:      g.InWidth,
		InHeight:     g.InHeight,
		OutWidth:     g.OutWidth,
		OutHeight:    g.OutHeight,
		SIMDInfo:     simdops.Info(),
	}
}
