package frame

import (
	"fmt"
	"image"
)

// FromYCbCr copies an 8-bit image.YCbCr into a new frame. 4:4:4, 4:2:2 and
// 4:2:0 subsampling are supported.
func FromYCbCr(img *image.YCbCr) (*Frame, error) {
	format, err := formatFromRatio(img.SubsampleRatio)
	if err != nil {
		return nil, err
	}
	b := img.Rect
	f, err := New(Spec{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Format:   format,
		Type:     Uint8,
		BitDepth: maxBitDepth8,
	})
	if err != nil {
		return nil, err
	}

	for y := 0; y < f.Height; y++ {
		off := img.YOffset(b.Min.X, b.Min.Y+y)
		copy(f.Planes8[Y].Row(y), img.Y[off:off+f.Width])
	}
	cw, ch := f.PlaneWidth(U), f.PlaneHeight(U)
	for y := 0; y < ch; y++ {
		// COffset takes luma coordinates.
		off := img.COffset(b.Min.X, b.Min.Y+y<<format.HeightShift())
		copy(f.Planes8[U].Row(y), img.Cb[off:off+cw])
		copy(f.Planes8[V].Row(y), img.Cr[off:off+cw])
	}
	return f, nil
}

// ToYCbCr copies an 8-bit frame into a new image.YCbCr.
func (f *Frame) ToYCbCr() (*image.YCbCr, error) {
	if f.Type != Uint8 {
		return nil, fmt.Errorf("%w: image.YCbCr needs uint8 samples, frame has %v", ErrInvalidSpec, f.Type)
	}
	ratio, err := ratioFromFormat(f.Format)
	if err != nil {
		return nil, err
	}
	img := image.NewYCbCr(image.Rect(0, 0, f.Width, f.Height), ratio)
	for y := 0; y < f.Height; y++ {
		copy(img.Y[y*img.YStride:], f.Planes8[Y].Row(y))
	}
	for y := 0; y < f.PlaneHeight(U); y++ {
		copy(img.Cb[y*img.CStride:], f.Planes8[U].Row(y))
		copy(img.Cr[y*img.CStride:], f.Planes8[V].Row(y))
	}
	return img, nil
}

func formatFromRatio(r image.YCbCrSubsampleRatio) (ChromaFormat, error) {
	switch r {
	case image.YCbCrSubsampleRatio444:
		return Format444, nil
	case image.YCbCrSubsampleRatio422:
		return Format422, nil
	case image.YCbCrSubsampleRatio420:
		return Format420, nil
	default:
		return 0, fmt.Errorf("%w: unsupported subsample ratio %v", ErrInvalidSpec, r)
	}
}

func ratioFromFormat(c ChromaFormat) (image.YCbCrSubsampleRatio, error) {
	switch c {
	case Format444:
		return image.YCbCrSubsampleRatio444, nil
	case Format422:
		return image.YCbCrSubsampleRatio422, nil
	case Format420:
		return image.YCbCrSubsampleRatio420, nil
	default:
		return 0, fmt.Errorf("%w: %v has no image.YCbCr equivalent", ErrInvalidSpec, c)
	}
}
