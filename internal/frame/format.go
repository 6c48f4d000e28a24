package frame

import "fmt"

// ChromaFormat identifies the chroma subsampling of a frame relative to luma.
type ChromaFormat int

const (
	// Format400 carries luma only.
	Format400 ChromaFormat = iota
	// Format420 halves chroma horizontally and vertically.
	Format420
	// Format422 halves chroma horizontally.
	Format422
	// Format444 keeps chroma at full resolution.
	Format444
)

// String returns the conventional name of the format.
func (c ChromaFormat) String() string {
	switch c {
	case Format400:
		return "4:0:0"
	case Format420:
		return "4:2:0"
	case Format422:
		return "4:2:2"
	case Format444:
		return "4:4:4"
	default:
		return fmt.Sprintf("ChromaFormat(%d)", int(c))
	}
}

// Valid reports whether c is a known format.
func (c ChromaFormat) Valid() bool {
	return c >= Format400 && c <= Format444
}

// WidthShift is log2 of the horizontal chroma subsampling factor.
func (c ChromaFormat) WidthShift() int {
	if c == Format420 || c == Format422 {
		return 1
	}
	return 0
}

// HeightShift is log2 of the vertical chroma subsampling factor.
func (c ChromaFormat) HeightShift() int {
	if c == Format420 {
		return 1
	}
	return 0
}

// Components returns the number of planes a frame of this format carries.
func (c ChromaFormat) Components() int {
	if c == Format400 {
		return 1
	}
	return MaxComponents
}

// ChromaWidth returns the chroma plane width for a luma width.
// Odd luma sizes round up so the last luma column keeps a chroma sample.
func (c ChromaFormat) ChromaWidth(lumaWidth int) int {
	s := c.WidthShift()
	return (lumaWidth + (1 << s) - 1) >> s
}

// ChromaHeight returns the chroma plane height for a luma height.
func (c ChromaFormat) ChromaHeight(lumaHeight int) int {
	s := c.HeightShift()
	return (lumaHeight + (1 << s) - 1) >> s
}

// ChromaLocation gives the siting of chroma samples relative to luma, using
// the numbering of ITU-T H.273 (chroma_sample_loc_type).
type ChromaLocation int

const (
	// LocationLeft: horizontally co-sited, vertically interstitial (MPEG-2 4:2:0).
	LocationLeft ChromaLocation = iota
	// LocationCenter: interstitial in both directions (MPEG-1/JPEG 4:2:0).
	LocationCenter
	// LocationTopLeft: co-sited with the top-left luma sample.
	LocationTopLeft
	// LocationTop: horizontally interstitial, vertically co-sited with the top row.
	LocationTop
	// LocationBottomLeft: co-sited horizontally, co-sited with the bottom row.
	LocationBottomLeft
	// LocationBottom: horizontally interstitial, co-sited with the bottom row.
	LocationBottom
)

// Valid reports whether l is a known location.
func (l ChromaLocation) Valid() bool {
	return l >= LocationLeft && l <= LocationBottom
}

// Sited describes how chroma samples sit on one axis.
type Sited int

const (
	// Cosited chroma samples sit on a luma sample.
	Cosited Sited = iota
	// Interstitial chroma samples sit halfway between two luma samples.
	Interstitial
)

// Horizontal returns the horizontal siting of l.
func (l ChromaLocation) Horizontal() Sited {
	switch l {
	case LocationCenter, LocationTop, LocationBottom:
		return Interstitial
	default:
		return Cosited
	}
}

// Vertical returns the vertical siting of l and, for co-sited chroma, the
// parity of the luma row the chroma sample sits on (0 top, 1 bottom).
func (l ChromaLocation) Vertical() (Sited, int) {
	switch l {
	case LocationTopLeft, LocationTop:
		return Cosited, 0
	case LocationBottomLeft, LocationBottom:
		return Cosited, 1
	default:
		return Interstitial, 0
	}
}

// SampleType identifies the storage type of a frame's planes.
type SampleType int

const (
	// Uint8 stores 8-bit samples.
	Uint8 SampleType = iota
	// Uint16 stores samples of 9 to 16 bits.
	Uint16
	// Float32 stores floating-point samples.
	Float32
)

// String returns the name of the sample type.
func (s SampleType) String() string {
	switch s {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("SampleType(%d)", int(s))
	}
}
