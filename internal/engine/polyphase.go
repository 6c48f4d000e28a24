package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
)

// Polyphase converts chroma formats with 2:1 table kernels applied
// separably. Decimation filters rows before columns; interpolation filters
// columns before rows.
type Polyphase struct {
	in, out frame.ChromaFormat
	geom    Geometry
	name    string
	fixed   bool

	plan    plan
	scratch *scratch
}

func newPolyphase(p Params, geom Geometry) (*Polyphase, error) {
	entry, err := p.Table.Lookup(p.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	pl, err := buildTablePlan(entry, p.InputFormat, p.OutputFormat, geom, p.FixedPoint)
	if err != nil {
		return nil, err
	}
	return &Polyphase{
		in:      p.InputFormat,
		out:     p.OutputFormat,
		geom:    geom,
		name:    entry.Name,
		fixed:   p.FixedPoint,
		plan:    pl,
		scratch: newScratch(pl.taps()),
	}, nil
}

// Process implements Converter.
func (c *Polyphase) Process(out, in *frame.Frame) error {
	if err := checkFrames(out, in,
		layout{c.in, c.geom.InWidth, c.geom.InHeight},
		layout{c.out, c.geom.OutWidth, c.geom.OutHeight}); err != nil {
		return err
	}
	frame.CopyPlane(out, in, frame.Y)
	for comp := frame.U; comp <= frame.V; comp++ {
		processPlane(c.scratch, out, in, comp, &c.plan, c.fixed)
	}
	frame.CopyTags(out, in)
	return nil
}

// Info implements Converter.
func (c *Polyphase) Info() Info {
	info := newInfo("polyphase/"+c.name, c.in, c.out, c.geom)
	info.Taps = c.plan.taps()
	info.MemoryUsage = c.plan.memoryUsage() + c.scratch.memoryUsage()
	return info
}

// axisStep describes one axis of a chroma conversion.
type axisStep struct {
	vertical bool
	dir      filter.Direction
	inSize   int
	outSize  int
	sited    frame.Sited
	align    int
}

// chromaSteps lists the axis changes from in to out in processing order.
func chromaSteps(in, out frame.ChromaFormat, g Geometry) []axisStep {
	h := axisStep{
		inSize:  in.ChromaWidth(g.InWidth),
		outSize: out.ChromaWidth(g.OutWidth),
	}
	h.sited, h.align = g.horizontalSiting()
	v := axisStep{
		vertical: true,
		inSize:   in.ChromaHeight(g.InHeight),
		outSize:  out.ChromaHeight(g.OutHeight),
	}
	v.sited, v.align = g.verticalSiting()

	var steps []axisStep
	dx := out.WidthShift() - in.WidthShift()
	dy := out.HeightShift() - in.HeightShift()
	if dx > 0 {
		h.dir = filter.Downsample
		steps = append(steps, h)
	}
	if dy > 0 {
		v.dir = filter.Downsample
		steps = append(steps, v)
	}
	if dy < 0 {
		v.dir = filter.Upsample
		steps = append(steps, v)
	}
	if dx < 0 {
		h.dir = filter.Upsample
		steps = append(steps, h)
	}
	return steps
}

// buildTablePlan turns a table entry into banks for the conversion in→out.
// With fixed point, a chained pair keeps full precision after the first
// pass and rounds once at the end.
func buildTablePlan(entry filter.Entry, in, out frame.ChromaFormat, g Geometry, fixed bool) (plan, error) {
	steps := chromaSteps(in, out, g)
	passes := make([]pass, 0, len(steps))
	prevShift := 0
	for i, st := range steps {
		mode := filter.ModeNormal
		if fixed && len(steps) > 1 {
			mode = filter.ModeZero
			if i > 0 {
				mode = filter.ModeAdditive
			}
		}

		defs, align := tableDefs(entry, st)
		// Plane passes clip at the store using the frame range.
		phases := make([]*filter.Kernel, len(defs))
		for j, d := range defs {
			phases[j] = filter.NewKernel(d, st.dir, mode, prevShift, math.Inf(-1), math.Inf(1))
		}
		bank, err := filter.NewTableBank(st.inSize, st.outSize, phases, align)
		if err != nil {
			return plan{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		passes = append(passes, pass{bank: bank, vertical: st.vertical})
		prevShift += defs[0].Shift
	}
	return newPlan(passes...), nil
}

// tableDefs picks the kernels and window alignment for one axis step.
func tableDefs(entry filter.Entry, st axisStep) ([]filter.TapDef, int) {
	if st.dir == filter.Downsample {
		if st.sited == frame.Cosited {
			return []filter.TapDef{entry.Down.Cosited}, st.align
		}
		return []filter.TapDef{entry.Down.Interstitial}, st.align
	}
	if st.sited == frame.Cosited {
		return entry.Up.Cosited[:], st.align
	}
	return entry.Up.Interstitial[:], interstitialUpAlign
}
