package resampler

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/pipeline"
)

// StageKind identifies the type of a processing stage.
type StageKind int

const (
	// StageConvert changes the chroma format at a fixed luma size.
	StageConvert StageKind = iota

	// StageScale changes the luma size at a fixed chroma format.
	StageScale
)

// String returns the stage kind name.
func (k StageKind) String() string {
	switch k {
	case StageConvert:
		return "convert"
	case StageScale:
		return "scale"
	default:
		return fmt.Sprintf("StageKind(%d)", int(k))
	}
}

// StageSpec describes one planned stage.
type StageSpec struct {
	Kind StageKind

	InputFormat  ChromaFormat
	OutputFormat ChromaFormat

	InWidth   int
	InHeight  int
	OutWidth  int
	OutHeight int
}

// PlanStages returns the stages New builds for config, in processing order.
// Chroma up-conversion runs at the input size before scaling; down-conversion
// runs at the output size after scaling. A config that changes neither
// format nor size yields a single passthrough convert stage.
func PlanStages(config *Config) []StageSpec {
	outW, outH := config.outputSize()
	scaled := outW != config.Width || outH != config.Height
	converted := config.InputFormat != config.OutputFormat

	convert := func(w, h int) StageSpec {
		return StageSpec{
			Kind:         StageConvert,
			InputFormat:  config.InputFormat,
			OutputFormat: config.OutputFormat,
			InWidth:      w,
			InHeight:     h,
			OutWidth:     w,
			OutHeight:    h,
		}
	}
	scale := func(format ChromaFormat) StageSpec {
		return StageSpec{
			Kind:         StageScale,
			InputFormat:  format,
			OutputFormat: format,
			InWidth:      config.Width,
			InHeight:     config.Height,
			OutWidth:     outW,
			OutHeight:    outH,
		}
	}

	switch {
	case !scaled:
		return []StageSpec{convert(config.Width, config.Height)}
	case !converted:
		return []StageSpec{scale(config.InputFormat)}
	case chromaSamples(config.OutputFormat) > chromaSamples(config.InputFormat):
		return []StageSpec{convert(config.Width, config.Height), scale(config.OutputFormat)}
	default:
		return []StageSpec{scale(config.InputFormat), convert(outW, outH)}
	}
}

// chromaSamples orders formats by chroma density: 4:4:4 carries four chroma
// samples per 2x2 luma block, 4:2:2 two, 4:2:0 one and 4:0:0 none.
func chromaSamples(f ChromaFormat) int {
	if f == Format400 {
		return 0
	}
	return chromaBlockSamples >> (f.WidthShift() + f.HeightShift())
}

// buildPipeline creates the stages planned for config and chains them.
func buildPipeline(config *Config) (*pipeline.Pipeline, error) {
	specs := PlanStages(config)
	stages := make([]pipeline.Stage, 0, len(specs))
	for _, spec := range specs {
		s, err := createStage(spec, config)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	p, err := pipeline.New(stages...)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return p, nil
}
