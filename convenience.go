package resampler

import (
	"image"

	"github.com/tphakala/go-video-resampler/internal/frame"
)

// Resolution is a luma frame size.
type Resolution struct {
	Width  int
	Height int
}

// Common frame sizes for convenience functions.
var (
	// ResSD is the BT.601 625-line active picture.
	ResSD = Resolution{Width: 720, Height: 576}

	// Res720p is the 720-line HD size.
	Res720p = Resolution{Width: 1280, Height: 720}

	// Res1080p is the 1080-line HD size.
	Res1080p = Resolution{Width: 1920, Height: 1080}

	// Res2160p is the UHD-1 size.
	Res2160p = Resolution{Width: 3840, Height: 2160}
)

// New444to420 creates a 4:4:4 to 4:2:0 converter using filter id.
func New444to420(width, height int, id FilterID) (Converter, error) {
	return newTableConverter(Format444, Format420, width, height, id)
}

// New420to444 creates a 4:2:0 to 4:4:4 converter using filter id.
func New420to444(width, height int, id FilterID) (Converter, error) {
	return newTableConverter(Format420, Format444, width, height, id)
}

// New422to420 creates a 4:2:2 to 4:2:0 converter using filter id.
func New422to420(width, height int, id FilterID) (Converter, error) {
	return newTableConverter(Format422, Format420, width, height, id)
}

// New420to422 creates a 4:2:0 to 4:2:2 converter using filter id.
func New420to422(width, height int, id FilterID) (Converter, error) {
	return newTableConverter(Format420, Format422, width, height, id)
}

func newTableConverter(in, out ChromaFormat, width, height int, id FilterID) (Converter, error) {
	config := DefaultConfig(in, out, width, height)
	config.Filter = id
	return New(config)
}

// NewScaler creates a converter that resizes frames of one chroma format.
func NewScaler(format ChromaFormat, from, to Resolution, kernel ScaleKernel) (Converter, error) {
	config := DefaultConfig(format, format, from.Width, from.Height)
	config.OutputWidth, config.OutputHeight = to.Width, to.Height
	config.ScaleFilter = kernel
	return New(config)
}

// Convert is a convenience function for a one-shot chroma conversion with
// the default filters. It creates a converter, processes in and returns a
// new frame.
func Convert(in *Frame, format ChromaFormat, method Method) (*Frame, error) {
	if in == nil {
		return nil, ErrFormatMismatch
	}
	config := DefaultConfig(in.Format, format, in.Width, in.Height)
	config.Method = method
	return process(config, in)
}

// Resize is a convenience function for a one-shot resize that keeps the
// chroma format.
func Resize(in *Frame, to Resolution, kernel ScaleKernel) (*Frame, error) {
	if in == nil {
		return nil, ErrFormatMismatch
	}
	config := DefaultConfig(in.Format, in.Format, in.Width, in.Height)
	config.OutputWidth, config.OutputHeight = to.Width, to.Height
	config.ScaleFilter = kernel
	return process(config, in)
}

// ConvertImage converts an image.YCbCr to another subsampling ratio with the
// default filters. Only 4:4:4, 4:2:2 and 4:2:0 images are supported.
func ConvertImage(img *image.YCbCr, format ChromaFormat) (*image.YCbCr, error) {
	in, err := frame.FromYCbCr(img)
	if err != nil {
		return nil, err
	}
	out, err := process(DefaultConfig(in.Format, format, in.Width, in.Height), in)
	if err != nil {
		return nil, err
	}
	return out.ToYCbCr()
}

func process(config *Config, in *Frame) (*Frame, error) {
	c, err := New(config)
	if err != nil {
		return nil, err
	}
	out, err := c.NewOutput(in)
	if err != nil {
		return nil, err
	}
	if err := c.Process(out, in); err != nil {
		return nil, err
	}
	return out, nil
}
