package filter

const (
	// FixedBits is the fixed-point precision of generated bank coefficients;
	// each tap group of a generated bank sums to 1<<FixedBits.
	FixedBits = 14

	// maxTableShift bounds table shifts so products stay well inside int64.
	maxTableShift = 16

	// Kernel families
	nearestHalfWidth = 0.5
	linearRadius     = 1.0
	cubicRadius      = 2.0
	cubicDivisor     = 6.0

	// Catmull-Rom B/C parameters (Mitchell-Netravali)
	catmullRomB = 0.0
	catmullRomC = 0.5

	// Default Kaiser windowed-sinc design
	defaultKaiserRadius      = 4.0
	defaultKaiserAttenuation = 60.0

	// Coefficient sums below this are treated as zero during normalization.
	minCoeffSum = 1e-12

	// Frequency response
	defaultResponsePoints = 512
	responseOversample    = 2
)
