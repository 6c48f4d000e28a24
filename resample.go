package resampler

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-video-resampler/internal/engine"
	"github.com/tphakala/go-video-resampler/internal/filter"
)

// Converter converts frames of one fixed layout into another. Process
// validates both frames before writing; on error the output is untouched.
//
// A Converter keeps scratch buffers between calls and must not be shared
// between goroutines.
type Converter interface {
	// Process writes the conversion of in into out.
	Process(out, in *Frame) error

	// NewOutput allocates a frame Process accepts as output for in.
	NewOutput(in *Frame) (*Frame, error)

	// Info describes the converter.
	Info() Info
}

// Info describes a converter: the stage names joined by " -> ", the input
// and output layouts, the widest filter, memory use and the SIMD level.
type Info = engine.Info

// Method selects how chroma samples are interpolated.
type Method = engine.Method

// Chroma interpolation methods.
const (
	MethodNearest   = engine.MethodNearest
	MethodBilinear  = engine.MethodBilinear
	MethodPolyphase = engine.MethodPolyphase
)

// FilterID names an entry of the chroma filter table.
type FilterID = filter.FilterID

// Chroma table filters.
const (
	FilterBilinear = filter.FilterBilinear
	FilterCfE      = filter.FilterCfE
	FilterTM5      = filter.FilterTM5
)

// AdaptiveMode selects per-sample filter choice during chroma conversion.
type AdaptiveMode = engine.AdaptiveMode

// Adaptive modes.
const (
	AdaptiveNone     = engine.AdaptiveNone
	AdaptiveMulti    = engine.AdaptiveMulti
	AdaptiveCrEdge   = engine.AdaptiveCrEdge
	AdaptiveCrBounds = engine.AdaptiveCrBounds
)

// ScaleKernel selects the distance→weight function used for rescaling.
type ScaleKernel = engine.ScaleKernel

// Scale kernels.
const (
	ScaleNearest  = engine.ScaleNearest
	ScaleBilinear = engine.ScaleBilinear
	ScaleBicubic  = engine.ScaleBicubic
	ScaleLanczos2 = engine.ScaleLanczos2
	ScaleLanczos3 = engine.ScaleLanczos3
	ScaleKaiser   = engine.ScaleKaiser
)

// Policy chooses one candidate filter per output sample in adaptive modes.
type Policy = engine.Policy

// Neighborhood is the input of a Policy decision.
type Neighborhood = engine.Neighborhood

// Built-in policies.
type (
	GradientPolicy = engine.GradientPolicy
	BoundsPolicy   = engine.BoundsPolicy
	ChainPolicy    = engine.ChainPolicy
)

// FilterTable holds the chroma filter definitions.
type FilterTable = filter.Table

// Config holds conversion configuration.
type Config struct {
	// InputFormat and OutputFormat are the chroma formats on both sides.
	InputFormat  ChromaFormat
	OutputFormat ChromaFormat

	// Width and Height are the input luma size.
	Width  int
	Height int

	// OutputWidth and OutputHeight are the output luma size. Zero keeps the
	// input size.
	OutputWidth  int
	OutputHeight int

	// Method and Filter select the chroma conversion filter.
	Method Method
	Filter FilterID

	// ScaleFilter is used when the luma size changes.
	ScaleFilter ScaleKernel

	// ChromaLocation is the chroma siting of both input and output.
	ChromaLocation ChromaLocation

	// Adaptive enables per-sample filter selection.
	Adaptive AdaptiveMode

	// UseMinMax adds the bounds check after the gradient check in
	// AdaptiveMulti and AdaptiveCrEdge.
	UseMinMax bool

	// EdgeThreshold is the gradient, as a fraction of the component range,
	// above which adaptive modes fall back to bilinear. Required by
	// AdaptiveMulti and AdaptiveCrEdge unless Policy is set.
	EdgeThreshold float64

	// Policy overrides the built-in adaptive predicate.
	Policy Policy

	// FixedPoint runs integer frames through the bit-exact int64 path.
	FixedPoint bool

	// Table supplies the filter definitions; nil selects the built-in table.
	Table *FilterTable
}

// Common errors returned by the resampler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")

	// ErrUnsupported indicates a format pair, method or mode combination
	// that has no converter.
	ErrUnsupported = engine.ErrUnsupported

	// ErrFormatMismatch indicates frames whose chroma format, sample type or
	// bit depth do not match the converter.
	ErrFormatMismatch = engine.ErrFormatMismatch

	// ErrDimensionMismatch indicates frames whose size does not match the
	// converter.
	ErrDimensionMismatch = engine.ErrDimensionMismatch
)

// DefaultConfig returns a polyphase configuration using the CfE filters and
// MPEG-2 chroma siting.
func DefaultConfig(in, out ChromaFormat, width, height int) *Config {
	return &Config{
		InputFormat:    in,
		OutputFormat:   out,
		Width:          width,
		Height:         height,
		Method:         MethodPolyphase,
		Filter:         FilterCfE,
		ScaleFilter:    ScaleLanczos3,
		ChromaLocation: LocationLeft,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.InputFormat.Valid() || !c.OutputFormat.Valid() {
		return fmt.Errorf("%w: unknown chroma format %v→%v", ErrInvalidConfig, c.InputFormat, c.OutputFormat)
	}

	if c.Width < minDimension || c.Height < minDimension ||
		c.Width > maxDimension || c.Height > maxDimension {
		return fmt.Errorf("%w: input size %dx%d out of range [%d, %d]",
			ErrInvalidConfig, c.Width, c.Height, minDimension, maxDimension)
	}

	if c.OutputWidth < 0 || c.OutputHeight < 0 ||
		c.OutputWidth > maxDimension || c.OutputHeight > maxDimension {
		return fmt.Errorf("%w: output size %dx%d out of range [0, %d]",
			ErrInvalidConfig, c.OutputWidth, c.OutputHeight, maxDimension)
	}

	if !c.ChromaLocation.Valid() {
		return fmt.Errorf("%w: unknown chroma location %d", ErrInvalidConfig, int(c.ChromaLocation))
	}

	if c.EdgeThreshold < minEdgeThreshold || c.EdgeThreshold > maxEdgeThreshold {
		return fmt.Errorf("%w: edge threshold must be in [%v, %v]",
			ErrInvalidConfig, minEdgeThreshold, maxEdgeThreshold)
	}

	if _, err := c.ScaleFilter.Func(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Table != nil {
		if err := c.Table.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// outputSize returns the output luma size with zero fields defaulted.
func (c *Config) outputSize() (width, height int) {
	width, height = c.OutputWidth, c.OutputHeight
	if width == 0 {
		width = c.Width
	}
	if height == 0 {
		height = c.Height
	}
	return width, height
}

// New creates a converter for config. Depending on whether the chroma
// format and the size change it builds a passthrough, a chroma converter, a
// scaler or a two-stage chain.
func New(config *Config) (Converter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	p, err := buildPipeline(config)
	if err != nil {
		return nil, err
	}
	return newChain(config, p), nil
}
