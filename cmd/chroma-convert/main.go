// Command chroma-convert converts raw planar Y'CbCr video between chroma
// formats and frame sizes.
//
// Usage:
//
//	chroma-convert -width 1920 -height 1080 -in 420 -out 444 input.yuv output.yuv
//	chroma-convert -in 444 -out 420 -filter tm5 -depth 10 input.yuv output.yuv
//	chroma-convert -out-width 1280 -out-height 720 -scale lanczos3 input.yuv output.yuv
//	chroma-convert -pattern -frames 4 -preview first.tiff output.yuv
//
// Input and output files are headerless planar frames (Y, then Cb, then Cr).
// 10- and 16-bit samples are little-endian uint16, float samples are
// little-endian float32.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	resampler "github.com/tphakala/go-video-resampler"
)

// options holds the parsed command line.
type options struct {
	config     *resampler.Config
	depth      depthSpec
	frames     int
	pattern    bool
	preview    string
	inputPath  string
	outputPath string
}

// convertStats summarizes a run.
type convertStats struct {
	frames   int
	inBytes  int64
	outBytes int64
	elapsed  time.Duration
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Conversion failed")
	}
}

func run() error {
	var (
		inFormat    = flag.String("in", defaultInputFormat, "Input chroma format: 400, 420, 422, 444")
		outFormat   = flag.String("out", defaultOutputFormat, "Output chroma format: 400, 420, 422, 444")
		width       = flag.Int("width", defaultWidth, "Input luma width")
		height      = flag.Int("height", defaultHeight, "Input luma height")
		outWidth    = flag.Int("out-width", 0, "Output luma width (0 keeps the input width)")
		outHeight   = flag.Int("out-height", 0, "Output luma height (0 keeps the input height)")
		depth       = flag.String("depth", defaultDepth, "Sample depth: 8, 10, 12, 16, float")
		method      = flag.String("method", defaultMethod, "Chroma method: nearest, bilinear, polyphase")
		filterName  = flag.String("filter", defaultFilter, "Polyphase table filter: bilinear, cfe, tm5")
		scaleFilter = flag.String("scale", defaultScaleFilter, "Scale kernel: nearest, bilinear, bicubic, lanczos2, lanczos3, kaiser")
		location    = flag.String("location", defaultLocation, "Chroma location: left, center, topleft, top, bottomleft, bottom")
		adaptive    = flag.String("adaptive", defaultAdaptive, "Adaptive mode: none, multi, cr-edge, cr-bounds")
		threshold   = flag.Float64("threshold", 0, "Adaptive edge threshold as a fraction of the sample range")
		minMax      = flag.Bool("minmax", false, "Add the bounds check to gradient-based adaptive modes")
		fixed       = flag.Bool("fixed", false, "Use the bit-exact fixed-point path for integer samples")
		frames      = flag.Int("frames", 0, "Number of frames to convert (0 converts the whole input)")
		pattern     = flag.Bool("pattern", false, "Convert a generated test pattern instead of an input file")
		preview     = flag.String("preview", "", "Write the first output frame as a TIFF image")
		verbose     = flag.Bool("v", false, "Verbose output")
		cpuprofile  = flag.String("cpuprofile", "", "Write CPU profile to file")
	)
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	args := flag.Args()
	needed := minRequiredArgs
	if *pattern {
		needed = patternArgs
	}
	if len(args) < needed {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.yuv output.yuv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -pattern [options] output.yuv\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}

	config := &resampler.Config{
		Width:         *width,
		Height:        *height,
		OutputWidth:   *outWidth,
		OutputHeight:  *outHeight,
		UseMinMax:     *minMax,
		EdgeThreshold: *threshold,
		FixedPoint:    *fixed,
	}
	if err := parseEnums(config, enumFlags{
		inFormat:    *inFormat,
		outFormat:   *outFormat,
		method:      *method,
		filter:      *filterName,
		scaleFilter: *scaleFilter,
		location:    *location,
		adaptive:    *adaptive,
	}); err != nil {
		return err
	}
	ds, err := parseDepth(*depth)
	if err != nil {
		return err
	}

	opts := options{
		config:     config,
		depth:      ds,
		frames:     *frames,
		pattern:    *pattern,
		preview:    *preview,
		outputPath: args[len(args)-1],
	}
	if !*pattern {
		opts.inputPath = args[0]
	} else if opts.frames == 0 {
		opts.frames = defaultPatternCount
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	stats, err := convert(opts)
	if err != nil {
		return err
	}

	fps := 0.0
	if stats.elapsed > 0 {
		fps = float64(stats.frames) / stats.elapsed.Seconds()
	}
	logrus.WithFields(logrus.Fields{
		"frames":    stats.frames,
		"input_kb":  stats.inBytes / bytesPerKilobyte,
		"output_kb": stats.outBytes / bytesPerKilobyte,
		"elapsed":   stats.elapsed.Round(time.Millisecond),
		"fps":       fmt.Sprintf("%.1f", fps),
	}).Info("Conversion complete")
	return nil
}

// convert runs the configured conversion over every input frame.
func convert(opts options) (stats *convertStats, err error) {
	c, err := resampler.New(opts.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create converter: %w", err)
	}
	info := c.Info()
	logrus.WithFields(logrus.Fields{
		"converter": info.Name,
		"input":     fmt.Sprintf("%v %dx%d", info.InputFormat, info.InWidth, info.InHeight),
		"output":    fmt.Sprintf("%v %dx%d", info.OutputFormat, info.OutWidth, info.OutHeight),
		"taps":      info.Taps,
		"memory_kb": fmt.Sprintf("%.1f", float64(info.MemoryUsage)/bytesPerKilobyte),
		"simd":      info.SIMDInfo,
	}).Debug("Converter created")

	in, err := resampler.NewFrame(resampler.FrameSpec{
		Width:    opts.config.Width,
		Height:   opts.config.Height,
		Format:   opts.config.InputFormat,
		Type:     opts.depth.typ,
		BitDepth: opts.depth.bits,
	})
	if err != nil {
		return nil, err
	}
	out, err := c.NewOutput(in)
	if err != nil {
		return nil, err
	}

	var src frameSource
	var total int64
	if opts.pattern {
		src = &patternSource{}
		total = int64(opts.frames)
	} else {
		input, err := openRawInput(opts.inputPath, in)
		if err != nil {
			return nil, err
		}
		defer func() { _ = input.Close() }()
		src = input
		total = input.totalFrames
		if opts.frames > 0 {
			total = min(total, int64(opts.frames))
		}
	}

	output, err := createRawOutput(opts.outputPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	stats = &convertStats{}
	progress := newProgressTracker(total)
	start := time.Now()
	for opts.frames == 0 || stats.frames < opts.frames {
		if err := src.ReadFrame(in); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("frame %d: %w", stats.frames, err)
		}
		in.FrameNo = stats.frames

		if err := c.Process(out, in); err != nil {
			return nil, fmt.Errorf("frame %d: %w", stats.frames, err)
		}
		if err := output.WriteFrame(out); err != nil {
			return nil, fmt.Errorf("frame %d: %w", stats.frames, err)
		}
		if stats.frames == 0 && opts.preview != "" {
			if err := writePreview(opts.preview, out); err != nil {
				return nil, err
			}
			logrus.WithField("path", opts.preview).Debug("Preview written")
		}

		stats.frames++
		stats.inBytes += frameBytes(in)
		stats.outBytes += frameBytes(out)
		progress.reportIfNeeded(int64(stats.frames))
	}
	stats.elapsed = time.Since(start)
	return stats, nil
}

// rawOutput writes frames to a buffered file.
type rawOutput struct {
	file   *os.File
	writer *bufio.Writer
}

// createRawOutput creates the output file.
func createRawOutput(path string) (*rawOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &rawOutput{file: f, writer: bufio.NewWriterSize(f, writerBufferSize)}, nil
}

// WriteFrame appends f.
func (o *rawOutput) WriteFrame(f *resampler.Frame) error {
	return writeFrame(o.writer, f)
}

// Close flushes and closes the file.
func (o *rawOutput) Close() error {
	if err := o.writer.Flush(); err != nil {
		_ = o.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return o.file.Close()
}
