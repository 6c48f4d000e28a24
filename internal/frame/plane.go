package frame

// Sample is the set of supported plane storage types.
type Sample interface {
	uint8 | uint16 | float32
}

// Plane is one component's 2D sample array. Rows start every Stride samples;
// only the first Width samples of each row belong to the picture.
type Plane[T Sample] struct {
	Data   []T
	Width  int
	Height int
	Stride int
}

// NewPlane allocates a tightly packed plane.
func NewPlane[T Sample](width, height int) Plane[T] {
	return Plane[T]{
		Data:   make([]T, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// Row returns the visible samples of row y.
func (p *Plane[T]) Row(y int) []T {
	off := y * p.Stride
	return p.Data[off : off+p.Width]
}

// At returns the sample at (x, y).
func (p *Plane[T]) At(x, y int) T {
	return p.Data[y*p.Stride+x]
}

// Set stores v at (x, y).
func (p *Plane[T]) Set(x, y int, v T) {
	p.Data[y*p.Stride+x] = v
}

// Fill sets every visible sample to v.
func (p *Plane[T]) Fill(v T) {
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// CopyFrom copies the visible area of src, which must have the same size.
func (p *Plane[T]) CopyFrom(src *Plane[T]) {
	for y := 0; y < p.Height; y++ {
		copy(p.Row(y), src.Row(y))
	}
}

// Valid reports whether the plane's buffer can hold its declared geometry.
func (p *Plane[T]) Valid() bool {
	if p.Width <= 0 || p.Height <= 0 || p.Stride < p.Width {
		return false
	}
	return len(p.Data) >= (p.Height-1)*p.Stride+p.Width
}
