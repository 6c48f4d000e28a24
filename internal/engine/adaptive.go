package engine

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// Adaptive converts chroma with a per-sample choice between the generic
// table filter and the bilinear filter. Both candidates are evaluated for
// every sample and a Policy picks one from the source neighborhood. Cr-driven
// modes decide on the V plane and apply the same choices to U.
//
// Adaptive conversion always runs in float64.
type Adaptive struct {
	in, out frame.ChromaFormat
	geom    Geometry
	mode    AdaptiveMode
	policy  Policy
	replay  bool
	name    string

	plans   [2]plan
	scratch [2]*scratch

	// Output index → source index per axis, for neighborhoods.
	mapX, mapY []int

	source    workPlane
	mixed     workPlane
	decisions []uint8
	window    []float64
	results   []float64
}

func newAdaptive(p Params, geom Geometry) (*Adaptive, error) {
	policy, err := policyFor(p)
	if err != nil {
		return nil, err
	}

	primary := p.Filter
	if p.Method == MethodBilinear {
		primary = filter.FilterBilinear
	}
	a := &Adaptive{
		in:     p.InputFormat,
		out:    p.OutputFormat,
		geom:   geom,
		mode:   p.Adaptive,
		policy: policy,
		replay: p.Adaptive == AdaptiveCrEdge || p.Adaptive == AdaptiveCrBounds,
	}
	for i, id := range []filter.FilterID{primary, filter.FilterBilinear} {
		entry, err := p.Table.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		pl, err := buildTablePlan(entry, p.InputFormat, p.OutputFormat, geom, false)
		if err != nil {
			return nil, err
		}
		a.plans[i] = pl
		a.scratch[i] = newScratch(pl.taps())
		if i == primaryCandidate {
			a.name = entry.Name
		}
	}

	n := newNearest(p.InputFormat, p.OutputFormat, geom)
	inW, outW := p.InputFormat.ChromaWidth(geom.InWidth), p.OutputFormat.ChromaWidth(geom.OutWidth)
	inH, outH := p.InputFormat.ChromaHeight(geom.InHeight), p.OutputFormat.ChromaHeight(geom.OutHeight)
	a.mapX = make([]int, outW)
	for x := range a.mapX {
		a.mapX[x] = nearestIndex(x, n.stepX, n.alignX, inW)
	}
	a.mapY = make([]int, outH)
	for y := range a.mapY {
		a.mapY[y] = nearestIndex(y, n.stepY, n.alignY, inH)
	}

	size := 2*neighborhoodRadius + 1
	a.window = make([]float64, size*size)
	a.results = make([]float64, len(a.plans))
	a.decisions = make([]uint8, outW*outH)
	return a, nil
}

// Process implements Converter.
func (a *Adaptive) Process(out, in *frame.Frame) error {
	if err := checkFrames(out, in,
		layout{a.in, a.geom.InWidth, a.geom.InHeight},
		layout{a.out, a.geom.OutWidth, a.geom.OutHeight}); err != nil {
		return err
	}
	frame.CopyPlane(out, in, frame.Y)
	// V first so replaying modes have decisions ready for U.
	for _, c := range []int{frame.V, frame.U} {
		decide := !a.replay || c == frame.V
		lo, hi := out.MinValue(c), out.MaxValue(c)
		switch in.Type {
		case frame.Uint8:
			adaptivePlane(a, &out.Planes8[c], &in.Planes8[c], decide, lo, hi)
		case frame.Uint16:
			adaptivePlane(a, &out.Planes16[c], &in.Planes16[c], decide, lo, hi)
		case frame.Float32:
			adaptivePlane(a, &out.PlanesF[c], &in.PlanesF[c], decide, lo, hi)
		}
	}
	frame.CopyTags(out, in)
	return nil
}

// Info implements Converter.
func (a *Adaptive) Info() Info {
	info := newInfo(fmt.Sprintf("adaptive-%v/%s/%s", a.mode, a.name, a.policy.Name()), a.in, a.out, a.geom)
	for i := range a.plans {
		info.Taps = max(info.Taps, a.plans[i].taps())
		info.MemoryUsage += a.plans[i].memoryUsage() + a.scratch[i].memoryUsage()
	}
	info.MemoryUsage += int64(cap(a.source.data)+cap(a.mixed.data)) * bytesPerFloat64
	info.MemoryUsage += int64(len(a.decisions))
	return info
}

// Decisions returns the candidate chosen for each output chroma sample of
// the last processed plane that made decisions, in raster order.
func (a *Adaptive) Decisions() []uint8 {
	return a.decisions
}

func adaptivePlane[T frame.Sample](a *Adaptive, dst *frame.Plane[T], src *frame.Plane[T], decide bool, lo, hi float64) {
	loadPlane(&a.source, src)
	var results [2]*workPlane
	for i := range a.plans {
		results[i] = a.plans[i].run(&a.source, a.scratch[i])
	}

	first := results[primaryCandidate]
	a.mixed.resize(first.width, first.height)
	size := 2*neighborhoodRadius + 1
	for y := range first.height {
		for x := range first.width {
			i := y*first.width + x
			if decide {
				a.gather(a.mapX[x], a.mapY[y])
				for k, r := range results {
					a.results[k] = r.data[i]
				}
				choice := a.policy.Select(Neighborhood{
					Window:  a.window,
					Size:    size,
					Results: a.results,
					Range:   hi - lo,
				})
				if choice < 0 || choice >= len(results) {
					choice = primaryCandidate
				}
				a.decisions[i] = uint8(choice)
			}
			a.mixed.data[i] = results[a.decisions[i]].data[i]
		}
	}
	storePlane(dst, &a.mixed, lo, hi, a.plans[primaryCandidate].clip)
}

// gather copies the source neighborhood centered on (sx, sy) into a.window.
func (a *Adaptive) gather(sx, sy int) {
	size := 2*neighborhoodRadius + 1
	for dy := range size {
		y := mathutil.ClampIndex(sy+dy-neighborhoodRadius, a.source.height)
		for dx := range size {
			x := mathutil.ClampIndex(sx+dx-neighborhoodRadius, a.source.width)
			a.window[dy*size+dx] = a.source.data[y*a.source.width+x]
		}
	}
}
