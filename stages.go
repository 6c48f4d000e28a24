package resampler

import (
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/engine"
	"github.com/tphakala/go-video-resampler/internal/pipeline"
)

// createStage creates the engine stage for spec.
func createStage(spec StageSpec, config *Config) (pipeline.Stage, error) {
	switch spec.Kind {
	case StageConvert:
		return newConvertStage(spec, config)
	case StageScale:
		return newScaleStage(spec, config)
	default:
		return nil, fmt.Errorf("%w: unsupported stage type %v", ErrUnsupported, spec.Kind)
	}
}

// newConvertStage creates a chroma conversion stage at the stage's size.
func newConvertStage(spec StageSpec, config *Config) (pipeline.Stage, error) {
	return engine.NewConverter(engine.Params{
		InputFormat:   spec.InputFormat,
		OutputFormat:  spec.OutputFormat,
		Width:         spec.InWidth,
		Height:        spec.InHeight,
		Method:        config.Method,
		Filter:        config.Filter,
		Location:      config.ChromaLocation,
		Adaptive:      config.Adaptive,
		UseMinMax:     config.UseMinMax,
		EdgeThreshold: config.EdgeThreshold,
		Policy:        config.Policy,
		FixedPoint:    config.FixedPoint,
		Table:         config.Table,
	})
}

// newScaleStage creates a resize stage in the stage's chroma format.
func newScaleStage(spec StageSpec, config *Config) (pipeline.Stage, error) {
	return engine.NewScaler(engine.ScaleParams{
		Format:     spec.InputFormat,
		InWidth:    spec.InWidth,
		InHeight:   spec.InHeight,
		OutWidth:   spec.OutWidth,
		OutHeight:  spec.OutHeight,
		Kernel:     config.ScaleFilter,
		Location:   config.ChromaLocation,
		FixedPoint: config.FixedPoint,
	})
}

// Ensure implementations satisfy the interfaces.
var (
	_ pipeline.Stage = (engine.Converter)(nil)
	_ pipeline.Stage = (*engine.Scaler)(nil)
	_ pipeline.Stage = (*pipeline.Pipeline)(nil)
	_ Converter      = (*chain)(nil)
)
