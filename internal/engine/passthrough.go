package engine

import "github.com/tphakala/go-video-resampler/internal/frame"

// Passthrough copies every plane unchanged. It serves identical input and
// output formats.
type Passthrough struct {
	format frame.ChromaFormat
	geom   Geometry
}

func newPassthrough(format frame.ChromaFormat, geom Geometry) *Passthrough {
	return &Passthrough{format: format, geom: geom}
}

// Process implements Converter.
func (p *Passthrough) Process(out, in *frame.Frame) error {
	l := layout{format: p.format, width: p.geom.InWidth, height: p.geom.InHeight}
	if err := checkFrames(out, in, l, l); err != nil {
		return err
	}
	for c := range in.Components() {
		frame.CopyPlane(out, in, c)
	}
	frame.CopyTags(out, in)
	return nil
}

// Info implements Converter.
func (p *Passthrough) Info() Info {
	return newInfo("passthrough", p.format, p.format, p.geom)
}
