package engine

import (
	"github.com/tphakala/go-video-resampler/internal/filter"
	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/mathutil"
)

// workPlane is a float64 working copy of one plane, tightly packed.
type workPlane struct {
	data   []float64
	width  int
	height int
}

func (w *workPlane) resize(width, height int) {
	n := width * height
	if cap(w.data) < n {
		w.data = make([]float64, n)
	}
	w.data = w.data[:n]
	w.width, w.height = width, height
}

// fixedPlane is the int64 counterpart of workPlane.
type fixedPlane struct {
	data   []int64
	width  int
	height int
}

func (w *fixedPlane) resize(width, height int) {
	n := width * height
	if cap(w.data) < n {
		w.data = make([]int64, n)
	}
	w.data = w.data[:n]
	w.width, w.height = width, height
}

// pass is one axis of a separable plan.
type pass struct {
	bank     *filter.Bank
	vertical bool
}

// plan is the ordered list of passes applied to one plane. Float results
// are clipped to the component range at the final store when clip is set;
// integer stores always saturate.
type plan struct {
	passes []pass
	clip   bool
}

func newPlan(passes ...pass) plan {
	p := plan{passes: passes}
	for _, ps := range passes {
		if ps.bank.Direction == filter.Downsample {
			p.clip = true
		}
	}
	return p
}

// taps returns the widest bank of the plan.
func (p *plan) taps() int {
	n := 0
	for _, ps := range p.passes {
		n = max(n, ps.bank.Taps)
	}
	return n
}

// memoryUsage returns the size of the plan's coefficient tables.
func (p *plan) memoryUsage() int64 {
	var n int64
	for _, ps := range p.passes {
		n += ps.bank.MemoryUsage()
	}
	return n
}

// scratch holds the reusable buffers of one plan. Buffers grow on demand and
// are kept across frames.
type scratch struct {
	load    workPlane
	work    [2]workPlane
	window  []float64
	fload   fixedPlane
	fwork   [2]fixedPlane
	fwindow []int64
}

func newScratch(taps int) *scratch {
	return &scratch{
		window:  make([]float64, taps),
		fwindow: make([]int64, taps),
	}
}

// memoryUsage returns the current size of the buffers in bytes.
func (s *scratch) memoryUsage() int64 {
	n := int64(cap(s.load.data)+cap(s.work[0].data)+cap(s.work[1].data)+cap(s.window)) * bytesPerFloat64
	n += int64(cap(s.fload.data)+cap(s.fwork[0].data)+cap(s.fwork[1].data)+cap(s.fwindow)) * bytesPerInt64
	return n
}

// run applies every pass to src and returns the buffer holding the result.
// With no passes the result is src itself.
func (p *plan) run(src *workPlane, s *scratch) *workPlane {
	cur := src
	for i, ps := range p.passes {
		dst := &s.work[i%2]
		window := s.window[:ps.bank.Taps]
		if ps.vertical {
			filterColumns(dst, cur, ps.bank, window)
		} else {
			filterRows(dst, cur, ps.bank, window)
		}
		cur = dst
	}
	return cur
}

// runFixed is run for the int64 path.
func (p *plan) runFixed(src *fixedPlane, s *scratch) *fixedPlane {
	cur := src
	for i, ps := range p.passes {
		dst := &s.fwork[i%2]
		window := s.fwindow[:ps.bank.Taps]
		if ps.vertical {
			filterColumnsFixed(dst, cur, ps.bank, window)
		} else {
			filterRowsFixed(dst, cur, ps.bank, window)
		}
		cur = dst
	}
	return cur
}

// filterRows runs b along every row of src.
func filterRows(dst, src *workPlane, b *filter.Bank, window []float64) {
	dst.resize(b.OutSize, src.height)
	for y := range src.height {
		base := y * src.width
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x := range row {
			b.Gather(window, src.data, x, base, 1, src.width)
			row[x] = b.Apply(x, window)
		}
	}
}

// filterColumns runs b down every column of src.
func filterColumns(dst, src *workPlane, b *filter.Bank, window []float64) {
	dst.resize(src.width, b.OutSize)
	for y := range b.OutSize {
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x := range row {
			b.Gather(window, src.data, y, x, src.width, src.height)
			row[x] = b.Apply(y, window)
		}
	}
}

func filterRowsFixed(dst, src *fixedPlane, b *filter.Bank, window []int64) {
	dst.resize(b.OutSize, src.height)
	for y := range src.height {
		base := y * src.width
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x := range row {
			b.GatherFixed(window, src.data, x, base, 1, src.width)
			row[x] = b.ApplyFixed(x, window)
		}
	}
}

func filterColumnsFixed(dst, src *fixedPlane, b *filter.Bank, window []int64) {
	dst.resize(src.width, b.OutSize)
	for y := range b.OutSize {
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x := range row {
			b.GatherFixed(window, src.data, y, x, src.width, src.height)
			row[x] = b.ApplyFixed(y, window)
		}
	}
}

// isInteger reports whether T is an integer sample type.
func isInteger[T frame.Sample]() bool {
	var zero T
	_, isFloat := any(zero).(float32)
	return !isFloat
}

func loadPlane[T frame.Sample](dst *workPlane, src *frame.Plane[T]) {
	dst.resize(src.Width, src.Height)
	for y := range src.Height {
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x, v := range src.Row(y) {
			row[x] = float64(v)
		}
	}
}

func loadFixed[T frame.Sample](dst *fixedPlane, src *frame.Plane[T]) {
	dst.resize(src.Width, src.Height)
	for y := range src.Height {
		row := dst.data[y*dst.width : (y+1)*dst.width]
		for x, v := range src.Row(y) {
			row[x] = int64(v)
		}
	}
}

// storePlane writes src into dst. Integer samples are rounded and saturated
// to [lo, hi]; float samples are clipped only when clip is set.
func storePlane[T frame.Sample](dst *frame.Plane[T], src *workPlane, lo, hi float64, clip bool) {
	integer := isInteger[T]()
	for y := range dst.Height {
		in := src.data[y*src.width : (y+1)*src.width]
		row := dst.Row(y)
		for x := range row {
			row[x] = storeValue[T](in[x], lo, hi, clip, integer)
		}
	}
}

func storeValue[T frame.Sample](v, lo, hi float64, clip, integer bool) T {
	if integer {
		return T(mathutil.Clip(mathutil.Round(v), lo, hi))
	}
	if clip {
		v = mathutil.Clip(v, lo, hi)
	}
	return T(v)
}

func storeFixed[T frame.Sample](dst *frame.Plane[T], src *fixedPlane, lo, hi int64) {
	for y := range dst.Height {
		in := src.data[y*src.width : (y+1)*src.width]
		row := dst.Row(y)
		for x := range row {
			row[x] = T(mathutil.Clip(in[x], lo, hi))
		}
	}
}

// runPlane loads src, applies pl and stores the result into dst. The fixed
// path is taken only for integer samples.
func runPlane[T frame.Sample](s *scratch, dst, src *frame.Plane[T], pl *plan, fixed bool, lo, hi float64) {
	if fixed && isInteger[T]() {
		loadFixed(&s.fload, src)
		storeFixed(dst, pl.runFixed(&s.fload, s), int64(lo), int64(hi))
		return
	}
	loadPlane(&s.load, src)
	storePlane(dst, pl.run(&s.load, s), lo, hi, pl.clip)
}

// processPlane runs pl over component c of in and stores into out.
func processPlane(s *scratch, out, in *frame.Frame, c int, pl *plan, fixed bool) {
	lo, hi := out.MinValue(c), out.MaxValue(c)
	switch in.Type {
	case frame.Uint8:
		runPlane(s, &out.Planes8[c], &in.Planes8[c], pl, fixed, lo, hi)
	case frame.Uint16:
		runPlane(s, &out.Planes16[c], &in.Planes16[c], pl, fixed, lo, hi)
	case frame.Float32:
		runPlane(s, &out.PlanesF[c], &in.PlanesF[c], pl, fixed, lo, hi)
	}
}
