package main

// Default command-line flag values
const (
	defaultInputFormat  = "420"
	defaultOutputFormat = "444"
	defaultWidth        = 1920
	defaultHeight       = 1080
	defaultDepth        = "8"
	defaultMethod       = "polyphase"
	defaultFilter       = "cfe"
	defaultScaleFilter  = "lanczos3"
	defaultLocation     = "left"
	defaultAdaptive     = "none"
	defaultPatternCount = 1
)

// CLI argument counts
const (
	minRequiredArgs = 2
	patternArgs     = 1
)

// Progress reporting
const (
	progressInterval = 10 // Log progress every N%
	percentScale     = 100
)

// Raw sample encoding
const (
	bytesPerSample8  = 1
	bytesPerSample16 = 2
	bytesPerFloat32  = 4
)

// I/O buffer sizes
const (
	readerBufferSize = 1 << 20
	writerBufferSize = 1 << 20
)

// Memory conversion
const (
	bytesPerKilobyte = 1024
)

// Test pattern geometry
const (
	patternBars      = 8
	patternRampShift = 2
)
