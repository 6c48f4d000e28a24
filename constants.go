package resampler

// Frame size limits accepted by Config.Validate.
const (
	minDimension = 1
	maxDimension = 1 << 16
)

// Adaptive edge threshold limits, as a fraction of the component range.
const (
	minEdgeThreshold = 0.0
	maxEdgeThreshold = 1.0
)

// Bit depths of the storage types.
const (
	bitDepth8  = 8
	bitDepth10 = 10
	bitDepth16 = 16
)

// chromaBlockSamples is the number of chroma samples per 2x2 luma block in
// 4:4:4.
const chromaBlockSamples = 4
