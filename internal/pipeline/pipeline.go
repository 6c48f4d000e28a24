// Package pipeline chains frame stages. Each stage converts chroma or
// rescales; the frames between stages are owned by the pipeline, allocated
// on the first Process call from the input's sample type and reused for
// later frames.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-video-resampler/internal/engine"
	"github.com/tphakala/go-video-resampler/internal/frame"
)

// ErrInvalidChain is returned when adjacent stages do not agree on the
// frame layout passed between them.
var ErrInvalidChain = errors.New("invalid pipeline chain")

// Stage is one frame transform of a pipeline.
type Stage interface {
	// Process reads in and writes out. Both frames must match the stage's
	// Info.
	Process(out, in *frame.Frame) error

	// Info describes the stage's input and output layout.
	Info() engine.Info
}

// Pipeline runs its stages in order.
type Pipeline struct {
	stages []Stage

	// inter[i] receives the output of stages[i] and feeds stages[i+1].
	inter []*frame.Frame
}

// New validates that each stage's output layout matches the next stage's
// input layout.
func New(stages ...Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidChain)
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", ErrInvalidChain, i)
		}
	}
	for i := 1; i < len(stages); i++ {
		prev, next := stages[i-1].Info(), stages[i].Info()
		if prev.OutputFormat != next.InputFormat {
			return nil, fmt.Errorf("%w: stage %d produces %v, stage %d expects %v",
				ErrInvalidChain, i-1, prev.OutputFormat, i, next.InputFormat)
		}
		if prev.OutWidth != next.InWidth || prev.OutHeight != next.InHeight {
			return nil, fmt.Errorf("%w: stage %d produces %dx%d, stage %d expects %dx%d",
				ErrInvalidChain, i-1, prev.OutWidth, prev.OutHeight, i, next.InWidth, next.InHeight)
		}
	}
	return &Pipeline{
		stages: stages,
		inter:  make([]*frame.Frame, len(stages)-1),
	}, nil
}

// Process runs every stage. The output frame is checked against the last
// stage before any stage runs, so a mismatched output is never partially
// written.
func (p *Pipeline) Process(out, in *frame.Frame) error {
	if out == nil || in == nil {
		return fmt.Errorf("%w: nil frame", engine.ErrFormatMismatch)
	}
	last := p.stages[len(p.stages)-1].Info()
	if out.Format != last.OutputFormat || !out.SameStorage(in) {
		return fmt.Errorf("%w: output is %v/%v/%d-bit, expected %v/%v/%d-bit",
			engine.ErrFormatMismatch, out.Format, out.Type, out.BitDepth, last.OutputFormat, in.Type, in.BitDepth)
	}
	if out.Width != last.OutWidth || out.Height != last.OutHeight {
		return fmt.Errorf("%w: output is %dx%d, expected %dx%d",
			engine.ErrDimensionMismatch, out.Width, out.Height, last.OutWidth, last.OutHeight)
	}

	src := in
	for i, s := range p.stages {
		dst := out
		if i < len(p.inter) {
			var err error
			if dst, err = p.intermediate(i, in); err != nil {
				return err
			}
		}
		if err := s.Process(dst, src); err != nil {
			return fmt.Errorf("stage %d (%s): %w", i, s.Info().Name, err)
		}
		src = dst
	}
	return nil
}

// intermediate returns the frame after stage i, reallocating it when the
// input storage changed since the previous call.
func (p *Pipeline) intermediate(i int, in *frame.Frame) (*frame.Frame, error) {
	if f := p.inter[i]; f != nil && f.SameStorage(in) {
		return f, nil
	}
	info := p.stages[i].Info()
	f, err := frame.New(frame.Spec{
		Width:    info.OutWidth,
		Height:   info.OutHeight,
		Format:   info.OutputFormat,
		Type:     in.Type,
		BitDepth: in.BitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: intermediate frame %d: %w", engine.ErrFormatMismatch, i, err)
	}
	p.inter[i] = f
	return f, nil
}

// Info combines the stage infos: layout from the first and last stages,
// widest filter, and memory including the intermediate frames.
func (p *Pipeline) Info() engine.Info {
	first := p.stages[0].Info()
	last := p.stages[len(p.stages)-1].Info()

	names := make([]string, 0, len(p.stages))
	info := engine.Info{
		InputFormat:  first.InputFormat,
		OutputFormat: last.OutputFormat,
		InWidth:      first.InWidth,
		InHeight:     first.InHeight,
		OutWidth:     last.OutWidth,
		OutHeight:    last.OutHeight,
		SIMDInfo:     first.SIMDInfo,
	}
	for _, s := range p.stages {
		si := s.Info()
		names = append(names, si.Name)
		info.Taps = max(info.Taps, si.Taps)
		info.MemoryUsage += si.MemoryUsage
	}
	for _, f := range p.inter {
		info.MemoryUsage += frameBytes(f)
	}
	info.Name = strings.Join(names, stageSeparator)
	return info
}

// Stages returns the stages in processing order.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// frameBytes returns the sample storage of f, or 0 for an unallocated frame.
func frameBytes(f *frame.Frame) int64 {
	if f == nil {
		return 0
	}
	var n int64
	for c := range f.Components() {
		switch f.Type {
		case frame.Uint8:
			n += int64(len(f.Planes8[c].Data)) * bytesPerUint8
		case frame.Uint16:
			n += int64(len(f.Planes16[c].Data)) * bytesPerUint16
		case frame.Float32:
			n += int64(len(f.PlanesF[c].Data)) * bytesPerFloat32
		}
	}
	return n
}
