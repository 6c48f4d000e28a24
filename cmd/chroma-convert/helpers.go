package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	resampler "github.com/tphakala/go-video-resampler"
	"golang.org/x/image/tiff"
)

// errUnknownValue is returned for flag values outside the accepted set.
var errUnknownValue = errors.New("unknown flag value")

// enumFlags holds the string flags that map onto Config enums.
type enumFlags struct {
	inFormat    string
	outFormat   string
	method      string
	filter      string
	scaleFilter string
	location    string
	adaptive    string
}

// parseEnums fills the enum fields of config from f.
func parseEnums(config *resampler.Config, f enumFlags) error {
	var err error
	if config.InputFormat, err = parseFormat(f.inFormat); err != nil {
		return err
	}
	if config.OutputFormat, err = parseFormat(f.outFormat); err != nil {
		return err
	}
	if config.Method, err = parseMethod(f.method); err != nil {
		return err
	}
	if config.Filter, err = parseFilter(f.filter); err != nil {
		return err
	}
	if config.ScaleFilter, err = parseScaleKernel(f.scaleFilter); err != nil {
		return err
	}
	if config.ChromaLocation, err = parseLocation(f.location); err != nil {
		return err
	}
	config.Adaptive, err = parseAdaptive(f.adaptive)
	return err
}

func lookup[T any](kind, s string, values map[string]T) (T, error) {
	if v, ok := values[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", errUnknownValue, kind, s)
}

func parseFormat(s string) (resampler.ChromaFormat, error) {
	return lookup("chroma format", strings.ReplaceAll(s, ":", ""), map[string]resampler.ChromaFormat{
		"400": resampler.Format400,
		"420": resampler.Format420,
		"422": resampler.Format422,
		"444": resampler.Format444,
	})
}

func parseMethod(s string) (resampler.Method, error) {
	return lookup("method", s, map[string]resampler.Method{
		"nearest":   resampler.MethodNearest,
		"bilinear":  resampler.MethodBilinear,
		"polyphase": resampler.MethodPolyphase,
	})
}

func parseFilter(s string) (resampler.FilterID, error) {
	return lookup("filter", s, map[string]resampler.FilterID{
		"bilinear": resampler.FilterBilinear,
		"cfe":      resampler.FilterCfE,
		"tm5":      resampler.FilterTM5,
	})
}

func parseScaleKernel(s string) (resampler.ScaleKernel, error) {
	return lookup("scale kernel", s, map[string]resampler.ScaleKernel{
		"nearest":  resampler.ScaleNearest,
		"bilinear": resampler.ScaleBilinear,
		"bicubic":  resampler.ScaleBicubic,
		"lanczos2": resampler.ScaleLanczos2,
		"lanczos3": resampler.ScaleLanczos3,
		"kaiser":   resampler.ScaleKaiser,
	})
}

func parseLocation(s string) (resampler.ChromaLocation, error) {
	return lookup("chroma location", s, map[string]resampler.ChromaLocation{
		"left":       resampler.LocationLeft,
		"center":     resampler.LocationCenter,
		"topleft":    resampler.LocationTopLeft,
		"top":        resampler.LocationTop,
		"bottomleft": resampler.LocationBottomLeft,
		"bottom":     resampler.LocationBottom,
	})
}

func parseAdaptive(s string) (resampler.AdaptiveMode, error) {
	return lookup("adaptive mode", s, map[string]resampler.AdaptiveMode{
		"none":      resampler.AdaptiveNone,
		"multi":     resampler.AdaptiveMulti,
		"cr-edge":   resampler.AdaptiveCrEdge,
		"cr-bounds": resampler.AdaptiveCrBounds,
	})
}

// depthSpec is the storage of a raw sample.
type depthSpec struct {
	typ  resampler.SampleType
	bits int
}

func parseDepth(s string) (depthSpec, error) {
	return lookup("depth", s, map[string]depthSpec{
		"8":     {resampler.Uint8, 8},
		"10":    {resampler.Uint16, 10},
		"12":    {resampler.Uint16, 12},
		"16":    {resampler.Uint16, 16},
		"float": {resampler.Float32, 32},
	})
}

// frameSource fills successive frames. ReadFrame returns io.EOF when no
// frame is left.
type frameSource interface {
	ReadFrame(f *resampler.Frame) error
}

// rawInput reads headerless planar frames from a file.
type rawInput struct {
	file        *os.File
	reader      *bufio.Reader
	totalFrames int64
}

// openRawInput opens path and derives the frame count from its size.
func openRawInput(path string, layout *resampler.Frame) (*rawInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}

	size := frameBytes(layout)
	if st.Size() < size {
		_ = f.Close()
		return nil, fmt.Errorf("input file %s holds less than one %dx%d %v frame", path,
			layout.Width, layout.Height, layout.Format)
	}
	if st.Size()%size != 0 {
		logrus.WithFields(logrus.Fields{
			"path":       path,
			"file_bytes": st.Size(),
			"frame_size": size,
		}).Warn("Input size is not a whole number of frames; trailing bytes are ignored")
	}

	return &rawInput{
		file:        f,
		reader:      bufio.NewReaderSize(f, readerBufferSize),
		totalFrames: st.Size() / size,
	}, nil
}

// ReadFrame implements frameSource.
func (r *rawInput) ReadFrame(f *resampler.Frame) error {
	return readFrame(r.reader, f)
}

// Close closes the input file.
func (r *rawInput) Close() error {
	return r.file.Close()
}

// readFrame reads every plane of f in raster order. A clean end of input
// before the first sample returns io.EOF; a truncated frame returns
// io.ErrUnexpectedEOF.
func readFrame(r io.Reader, f *resampler.Frame) error {
	first := true
	for c := range f.Components() {
		for y := range f.PlaneHeight(c) {
			var err error
			switch f.Type {
			case resampler.Uint8:
				_, err = io.ReadFull(r, f.Planes8[c].Row(y))
			case resampler.Uint16:
				err = binary.Read(r, binary.LittleEndian, f.Planes16[c].Row(y))
			case resampler.Float32:
				err = binary.Read(r, binary.LittleEndian, f.PlanesF[c].Row(y))
			}
			if errors.Is(err, io.EOF) && !first {
				return io.ErrUnexpectedEOF
			}
			if err != nil {
				return err
			}
			first = false
		}
	}
	return nil
}

// writeFrame writes every plane of f in raster order.
func writeFrame(w io.Writer, f *resampler.Frame) error {
	for c := range f.Components() {
		for y := range f.PlaneHeight(c) {
			var err error
			switch f.Type {
			case resampler.Uint8:
				_, err = w.Write(f.Planes8[c].Row(y))
			case resampler.Uint16:
				err = binary.Write(w, binary.LittleEndian, f.Planes16[c].Row(y))
			case resampler.Float32:
				err = binary.Write(w, binary.LittleEndian, f.PlanesF[c].Row(y))
			}
			if err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		}
	}
	return nil
}

// frameBytes returns the raw size of one frame with f's layout.
func frameBytes(f *resampler.Frame) int64 {
	per := int64(bytesPerSample8)
	switch f.Type {
	case resampler.Uint16:
		per = bytesPerSample16
	case resampler.Float32:
		per = bytesPerFloat32
	}
	var n int64
	for c := range f.Components() {
		n += int64(f.PlaneWidth(c)*f.PlaneHeight(c)) * per
	}
	return n
}

// patternSource generates an endless sequence of test frames.
type patternSource struct {
	index int
}

// ReadFrame implements frameSource.
func (p *patternSource) ReadFrame(f *resampler.Frame) error {
	fillPattern(f, p.index)
	p.index++
	return nil
}

// fillPattern draws a horizontal luma ramp that moves with n, vertical Cb
// bars and a vertical Cr ramp. Values span each component's legal range.
func fillPattern(f *resampler.Frame, n int) {
	for c := range f.Components() {
		w, h := f.PlaneWidth(c), f.PlaneHeight(c)
		lo, hi := f.MinValue(c), f.MaxValue(c)
		for y := range h {
			for x := range w {
				var t float64
				switch c {
				case resampler.ComponentY:
					t = float64((x+n<<patternRampShift)%w) / float64(max(w-1, 1))
				case resampler.ComponentU:
					t = float64(x*patternBars/w) / float64(patternBars-1)
				default:
					t = float64(y) / float64(max(h-1, 1))
				}
				setSample(f, c, x, y, lo+t*(hi-lo))
			}
		}
	}
}

func setSample(f *resampler.Frame, c, x, y int, v float64) {
	switch f.Type {
	case resampler.Uint8:
		f.Planes8[c].Set(x, y, uint8(math.Round(v)))
	case resampler.Uint16:
		f.Planes16[c].Set(x, y, uint16(math.Round(v)))
	case resampler.Float32:
		f.PlanesF[c].Set(x, y, float32(v))
	}
}

// previewImage converts f for viewing: 8-bit colour frames keep their
// chroma, everything else is shown as 16-bit grey luma.
func previewImage(f *resampler.Frame) (image.Image, error) {
	if f.Type == resampler.Uint8 && f.Format != resampler.Format400 {
		return f.ToYCbCr()
	}

	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	lo, hi := f.MinValue(resampler.ComponentY), f.MaxValue(resampler.ComponentY)
	values := f.Values(resampler.ComponentY)
	for y := range f.Height {
		for x := range f.Width {
			t := (values[y*f.Width+x] - lo) / (hi - lo)
			t = math.Min(math.Max(t, 0), 1)
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(t * math.MaxUint16))})
		}
	}
	return img, nil
}

// writePreview encodes f as a deflate-compressed TIFF.
func writePreview(path string, f *resampler.Frame) error {
	img, err := previewImage(f)
	if err != nil {
		return fmt.Errorf("failed to build preview: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return out.Close()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64) *progressTracker {
	return &progressTracker{totalFrames: totalFrames}
}

// reportIfNeeded logs progress at debug level each time another
// progressInterval percent is done.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		logrus.WithField("percent", progress).Debug("Progress")
		p.lastProgress = progress
	}
}
