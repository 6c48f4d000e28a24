package engine

import (
	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// Nearest converts chroma by integer-ratio sample replication and
// decimation. No coefficients are involved, so output samples are always
// copies of input samples.
type Nearest struct {
	in, out frame.ChromaFormat
	geom    Geometry

	// Per-axis direction: +1 decimates, -1 replicates, 0 keeps the size.
	stepX, stepY int

	// Decimation picks source sample 2i+align.
	alignX, alignY int
}

func newNearest(in, out frame.ChromaFormat, geom Geometry) *Nearest {
	_, alignX := geom.horizontalSiting()
	_, alignY := geom.verticalSiting()
	return &Nearest{
		in:     in,
		out:    out,
		geom:   geom,
		stepX:  out.WidthShift() - in.WidthShift(),
		stepY:  out.HeightShift() - in.HeightShift(),
		alignX: alignX,
		alignY: alignY,
	}
}

// Process implements Converter.
func (n *Nearest) Process(out, in *frame.Frame) error {
	if err := checkFrames(out, in,
		layout{n.in, n.geom.InWidth, n.geom.InHeight},
		layout{n.out, n.geom.OutWidth, n.geom.OutHeight}); err != nil {
		return err
	}

	frame.CopyPlane(out, in, frame.Y)
	for c := frame.U; c <= frame.V; c++ {
		switch in.Type {
		case frame.Uint8:
			nearestPlane(&out.Planes8[c], &in.Planes8[c], n)
		case frame.Uint16:
			nearestPlane(&out.Planes16[c], &in.Planes16[c], n)
		case frame.Float32:
			nearestPlane(&out.PlanesF[c], &in.PlanesF[c], n)
		}
	}
	frame.CopyTags(out, in)
	return nil
}

// Info implements Converter.
func (n *Nearest) Info() Info {
	info := newInfo("nearest", n.in, n.out, n.geom)
	info.Taps = 1
	return info
}

func nearestPlane[T frame.Sample](dst, src *frame.Plane[T], n *Nearest) {
	for y := range dst.Height {
		sy := nearestIndex(y, n.stepY, n.alignY, src.Height)
		srcRow := src.Row(sy)
		dstRow := dst.Row(y)
		for x := range dstRow {
			dstRow[x] = srcRow[nearestIndex(x, n.stepX, n.alignX, src.Width)]
		}
	}
}

// nearestIndex maps output index i to its source index on one axis.
func nearestIndex(i, step, align, size int) int {
	switch {
	case step > 0:
		i = subsampleFactor*i + align
	case step < 0:
		i /= subsampleFactor
	}
	return mathutil.ClampIndex(i, size)
}
