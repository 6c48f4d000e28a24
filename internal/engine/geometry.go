package engine

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/frame"
)

// Geometry describes the luma size on both sides of a conversion and the
// chroma siting. It is computed once at construction.
type Geometry struct {
	InWidth   int
	InHeight  int
	OutWidth  int
	OutHeight int

	// FactorX and FactorY are input/output size ratios; above 1 the axis
	// downsamples.
	FactorX float64
	FactorY float64

	Location frame.ChromaLocation
}

// NewGeometry validates sizes and computes the per-axis factors.
func NewGeometry(inWidth, inHeight, outWidth, outHeight int, loc frame.ChromaLocation) (Geometry, error) {
	if inWidth <= 0 || inHeight <= 0 || outWidth <= 0 || outHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: sizes %dx%d→%dx%d must be positive",
			ErrUnsupported, inWidth, inHeight, outWidth, outHeight)
	}
	if !loc.Valid() {
		return Geometry{}, fmt.Errorf("%w: unknown chroma location %d", ErrUnsupported, int(loc))
	}
	return Geometry{
		InWidth:   inWidth,
		InHeight:  inHeight,
		OutWidth:  outWidth,
		OutHeight: outHeight,
		FactorX:   float64(inWidth) / float64(outWidth),
		FactorY:   float64(inHeight) / float64(outHeight),
		Location:  loc,
	}, nil
}

// Scaled reports whether the luma size changes.
func (g Geometry) Scaled() bool {
	return g.InWidth != g.OutWidth || g.InHeight != g.OutHeight
}

// Downsamples reports whether either axis reduces the sample count.
func (g Geometry) Downsamples() bool {
	return g.FactorX > 1 || g.FactorY > 1
}

// horizontalSiting returns the horizontal siting and the decimation alignment.
func (g Geometry) horizontalSiting() (frame.Sited, int) {
	return g.Location.Horizontal(), 0
}

// verticalSiting returns the vertical siting and the decimation alignment:
// bottom co-sited chroma is centered on odd luma rows.
func (g Geometry) verticalSiting() (frame.Sited, int) {
	sited, parity := g.Location.Vertical()
	if sited == frame.Cosited && parity == 1 {
		return sited, bottomRowAlign
	}
	return sited, 0
}

// chromaOffset returns the source position of output chroma sample 0 for a
// scaling factor on a subsampled axis. A chroma sample j sits at luma
// position 2j+s, where s is 0, 0.5 or 1 for top/left co-sited, interstitial
// and bottom co-sited chroma.
func chromaOffset(factor float64, sited frame.Sited, parity int) float64 {
	s := 0.5
	if sited == frame.Cosited {
		s = float64(parity)
	}
	return (factor - 1) * (s + 0.5) / subsampleFactor
}
