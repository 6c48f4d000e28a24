package resampler

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/frame"
	"github.com/tphakala/go-video-resampler/internal/pipeline"
)

// chain is the Converter returned by New. It runs the planned stages and
// knows the output layout so callers can allocate matching frames.
type chain struct {
	pipeline *pipeline.Pipeline
	specs    []StageSpec

	format ChromaFormat
	width  int
	height int
}

func newChain(config *Config, p *pipeline.Pipeline) *chain {
	w, h := config.outputSize()
	return &chain{
		pipeline: p,
		specs:    PlanStages(config),
		format:   config.OutputFormat,
		width:    w,
		height:   h,
	}
}

// Process implements Converter.
func (c *chain) Process(out, in *Frame) error {
	return c.pipeline.Process(out, in)
}

// NewOutput implements Converter. The output shares the sample type and bit
// depth of in.
func (c *chain) NewOutput(in *Frame) (*Frame, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil input frame", ErrFormatMismatch)
	}
	return frame.New(frame.Spec{
		Width:    c.width,
		Height:   c.height,
		Format:   c.format,
		Type:     in.Type,
		BitDepth: in.BitDepth,
	})
}

// Info implements Converter.
func (c *chain) Info() Info {
	return c.pipeline.Info()
}

// Stages returns the planned stages in processing order.
func (c *chain) Stages() []StageSpec {
	return c.specs
}

// StageInfo returns the stage layout of a converter built by New, or nil for
// other implementations.
func StageInfo(c Converter) []StageSpec {
	if ch, ok := c.(*chain); ok {
		return ch.Stages()
	}
	return nil
}
