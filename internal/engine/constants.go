package engine

// Chroma subsampling is always by a factor of two per axis.
const (
	subsampleFactor = 2

	// Alignment of the decimation window for bottom co-sited chroma.
	bottomRowAlign = 1

	// Interstitial interpolation reads one sample later so phase 0 lands a
	// quarter sample after a source sample.
	interstitialUpAlign = 1
)

// Adaptive selection
const (
	// Candidate index of the primary (generic) filter.
	primaryCandidate = 0

	// Candidate index of the bilinear fallback.
	bilinearCandidate = 1

	// Half-size of the square source neighborhood handed to a policy.
	neighborhoodRadius = 1
)

// Memory accounting
const (
	bytesPerFloat64 = 8
	bytesPerInt64   = 8
)
