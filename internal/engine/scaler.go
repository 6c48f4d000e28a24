package engine

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
)

// ScaleKernel selects the distance→weight function of a Scaler.
type ScaleKernel int

const (
	// ScaleNearest picks the closest source sample.
	ScaleNearest ScaleKernel = iota
	// ScaleBilinear uses the tent function.
	ScaleBilinear
	// ScaleBicubic uses the Catmull-Rom cubic.
	ScaleBicubic
	// ScaleLanczos2 uses a 2-lobe Lanczos window.
	ScaleLanczos2
	// ScaleLanczos3 uses a 3-lobe Lanczos window.
	ScaleLanczos3
	// ScaleKaiser uses a Kaiser-windowed sinc.
	ScaleKaiser
)

// String returns the kernel name.
func (k ScaleKernel) String() string {
	switch k {
	case ScaleNearest:
		return "nearest"
	case ScaleBilinear:
		return "bilinear"
	case ScaleBicubic:
		return "bicubic"
	case ScaleLanczos2:
		return "lanczos2"
	case ScaleLanczos3:
		return "lanczos3"
	case ScaleKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("ScaleKernel(%d)", int(k))
	}
}

// Func returns the filter function of k.
func (k ScaleKernel) Func() (filter.Func, error) {
	switch k {
	case ScaleNearest:
		return filter.Nearest{}, nil
	case ScaleBilinear:
		return filter.Linear{}, nil
	case ScaleBicubic:
		return filter.CatmullRom(), nil
	case ScaleLanczos2:
		return filter.Lanczos{Lobes: 2}, nil
	case ScaleLanczos3:
		return filter.Lanczos{Lobes: 3}, nil
	case ScaleKaiser:
		return filter.NewKaiserSinc(0, 0), nil
	default:
		return nil, fmt.Errorf("%w: unknown scale kernel %v", ErrUnsupported, k)
	}
}

// ScaleParams configures a Scaler.
type ScaleParams struct {
	Format frame.ChromaFormat

	InWidth   int
	InHeight  int
	OutWidth  int
	OutHeight int

	Kernel ScaleKernel

	// Func overrides Kernel when set.
	Func filter.Func

	Location   frame.ChromaLocation
	FixedPoint bool
}

// Scaler resizes every plane of a frame at arbitrary ratios. Each plane is
// filtered horizontally into an intermediate of size (outWidth, inHeight),
// then vertically, accumulating in float64 (or int64 with FixedPoint) and
// rounding once at the final store. Axes whose size does not change are
// skipped.
type Scaler struct {
	format frame.ChromaFormat
	geom   Geometry
	fn     filter.Func
	fixed  bool

	plans   [frame.MaxComponents]plan
	scratch *scratch
}

// NewScaler builds the per-plane banks for p.
func NewScaler(p ScaleParams) (*Scaler, error) {
	if !p.Format.Valid() {
		return nil, fmt.Errorf("%w: unknown chroma format %v", ErrUnsupported, p.Format)
	}
	geom, err := NewGeometry(p.InWidth, p.InHeight, p.OutWidth, p.OutHeight, p.Location)
	if err != nil {
		return nil, err
	}
	fn := p.Func
	if fn == nil {
		if fn, err = p.Kernel.Func(); err != nil {
			return nil, err
		}
	}

	s := &Scaler{format: p.Format, geom: geom, fn: fn, fixed: p.FixedPoint}
	taps := 0
	for c := range p.Format.Components() {
		pl, err := s.buildPlan(c)
		if err != nil {
			return nil, err
		}
		s.plans[c] = pl
		taps = max(taps, pl.taps())
	}
	s.scratch = newScratch(taps)
	return s, nil
}

// buildPlan creates the horizontal and vertical banks of component c.
func (s *Scaler) buildPlan(c int) (plan, error) {
	g := s.geom
	type axis struct {
		in, out  int
		subbed   bool
		vertical bool
	}
	h := axis{in: g.InWidth, out: g.OutWidth}
	v := axis{in: g.InHeight, out: g.OutHeight, vertical: true}
	if c != frame.Y {
		h.in, h.out = s.format.ChromaWidth(g.InWidth), s.format.ChromaWidth(g.OutWidth)
		v.in, v.out = s.format.ChromaHeight(g.InHeight), s.format.ChromaHeight(g.OutHeight)
		h.subbed = s.format.WidthShift() > 0
		v.subbed = s.format.HeightShift() > 0
	}

	var axes []axis
	for _, a := range []axis{h, v} {
		if a.in != a.out {
			axes = append(axes, a)
		}
	}

	passes := make([]pass, 0, len(axes))
	for i, a := range axes {
		bp := filter.BankParams{Offset: filter.CenterOffset(a.in, a.out), Mode: filter.ModeNormal}
		if a.subbed {
			factor := float64(a.in) / float64(a.out)
			if a.vertical {
				sited, parity := g.Location.Vertical()
				bp.Offset = chromaOffset(factor, sited, parity)
			} else {
				bp.Offset = chromaOffset(factor, g.Location.Horizontal(), 0)
			}
		}
		if s.fixed && len(axes) > 1 {
			bp.Mode = filter.ModeZero
			if i > 0 {
				bp.Mode = filter.ModeAdditive
				bp.PrevShift = filter.FixedBits
			}
		}
		bank, err := filter.NewBank(a.in, a.out, s.fn, bp)
		if err != nil {
			return plan{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		passes = append(passes, pass{bank: bank, vertical: a.vertical})
	}
	pl := newPlan(passes...)
	pl.clip = g.Downsamples()
	return pl, nil
}

// Process implements Converter.
func (s *Scaler) Process(out, in *frame.Frame) error {
	if err := checkFrames(out, in,
		layout{s.format, s.geom.InWidth, s.geom.InHeight},
		layout{s.format, s.geom.OutWidth, s.geom.OutHeight}); err != nil {
		return err
	}
	for c := range in.Components() {
		processPlane(s.scratch, out, in, c, &s.plans[c], s.fixed)
	}
	frame.CopyTags(out, in)
	return nil
}

// Info implements Converter.
func (s *Scaler) Info() Info {
	info := newInfo("scale/"+s.fn.Name(), s.format, s.format, s.geom)
	for c := range s.format.Components() {
		info.Taps = max(info.Taps, s.plans[c].taps())
		info.MemoryUsage += s.plans[c].memoryUsage()
	}
	info.MemoryUsage += s.scratch.memoryUsage()
	return info
}

// Bank returns the horizontal or vertical bank of component c, or nil when
// that axis keeps its size.
func (s *Scaler) Bank(c int, vertical bool) *filter.Bank {
	for _, ps := range s.plans[c].passes {
		if ps.vertical == vertical {
			return ps.bank
		}
	}
	return nil
}
