// Command analyze-filter prints the DC gain, fixed-point sums and frequency
// response of the chroma table kernels and of generated scaling banks.
package main

import (
	"fmt"
	"os"

	"github.com/tphakala/go-video-resampler/internal/filter"
)

const (
	// Frequency response resolution
	responsePoints = 256

	// Frequencies reported per kernel, in cycles/sample
	quarterBand = 0.25

	// Scaling ratios (input/output) analyzed for generated banks
	ratioDouble = 0.5
	ratioThird  = 2.0 / 3.0
	ratioHalve  = 2.0
	ratio1080   = 1080.0 / 720.0

	// Bank sizes used for the generated-bank analysis
	bankOutputSize = 64
)

// kernelReport summarizes one kernel.
type kernelReport struct {
	name       string
	taps       int
	fixedSum   int
	dcGain     float64
	quarterDB  float64
	nyquistDB  float64
	peakGainDB float64
}

// analyzeKernel computes the report of a normalized kernel.
func analyzeKernel(name string, weights []float64, fixedSum int) kernelReport {
	r := filter.Response(weights, responsePoints)
	peak := 0.0
	for _, m := range r.Magnitude {
		peak = max(peak, m)
	}
	return kernelReport{
		name:       name,
		taps:       len(weights),
		fixedSum:   fixedSum,
		dcGain:     r.Magnitude[0],
		quarterDB:  filter.MagnitudeDB(r.Magnitude[int(quarterBand*2*float64(len(r.Magnitude)-1))]),
		nyquistDB:  filter.MagnitudeDB(r.Nyquist()),
		peakGainDB: filter.MagnitudeDB(peak),
	}
}

// tableReports analyzes every kernel of table.
func tableReports(table *filter.Table) ([]kernelReport, error) {
	var reports []kernelReport
	for _, id := range table.IDs() {
		e, err := table.Lookup(id)
		if err != nil {
			return nil, err
		}
		defs := []struct {
			label string
			def   filter.TapDef
			dir   filter.Direction
		}{
			{"down/cosited", e.Down.Cosited, filter.Downsample},
			{"down/interstitial", e.Down.Interstitial, filter.Downsample},
			{"up/cosited[0]", e.Up.Cosited[0], filter.Upsample},
			{"up/cosited[1]", e.Up.Cosited[1], filter.Upsample},
			{"up/interstitial[0]", e.Up.Interstitial[0], filter.Upsample},
			{"up/interstitial[1]", e.Up.Interstitial[1], filter.Upsample},
		}
		for _, d := range defs {
			k := filter.NewKernel(d.def, d.dir, filter.ModeNormal, 0, 0, 1)
			reports = append(reports, analyzeKernel(e.Name+" "+d.label, k.Normalized(), d.def.Sum()))
		}
	}
	return reports, nil
}

// bankReport summarizes a generated bank: its tap count and the worst
// deviation of any phase from unity DC gain, in float and fixed point.
type bankReport struct {
	name        string
	ratio       float64
	taps        int
	maxFloatErr float64
	maxFixedErr int
	mid         kernelReport
}

func analyzeBank(fn filter.Func, ratio float64) (bankReport, error) {
	in := int(ratio * bankOutputSize)
	b, err := filter.NewBank(in, bankOutputSize, fn, filter.BankParams{Offset: filter.CenterOffset(in, bankOutputSize)})
	if err != nil {
		return bankReport{}, err
	}

	rep := bankReport{name: fn.Name(), ratio: ratio, taps: b.Taps}
	for pos := range b.OutSize {
		rep.maxFloatErr = max(rep.maxFloatErr, abs(b.Sum(pos)-1))
		sum := 0
		for _, w := range b.FixedWeights(pos) {
			sum += int(w)
		}
		rep.maxFixedErr = max(rep.maxFixedErr, absInt(sum-1<<filter.FixedBits))
	}
	rep.mid = analyzeKernel(fn.Name(), b.Weights(b.OutSize/2), 1<<filter.FixedBits)
	return rep, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func main() {
	fmt.Println("=== Chroma Table Kernels ===")
	reports, err := tableReports(filter.DefaultTable())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%-28s %4s %6s %10s %10s %10s %10s\n",
		"kernel", "taps", "sum", "DC gain", "0.25 dB", "Nyq dB", "peak dB")
	for _, r := range reports {
		fmt.Printf("%-28s %4d %6d %10.6f %10.2f %10.2f %10.2f\n",
			r.name, r.taps, r.fixedSum, r.dcGain, r.quarterDB, r.nyquistDB, r.peakGainDB)
	}

	fmt.Println("\n=== Generated Scaling Banks ===")
	families := []filter.Func{
		filter.Nearest{},
		filter.Linear{},
		filter.CatmullRom(),
		filter.Lanczos{Lobes: 2},
		filter.Lanczos{Lobes: 3},
		filter.NewKaiserSinc(0, 0),
	}
	ratios := []float64{ratioDouble, ratioThird, ratioHalve, ratio1080}

	fmt.Printf("%-16s %7s %4s %12s %9s %10s %10s\n",
		"family", "in/out", "taps", "max |sum-1|", "fixed err", "0.25 dB", "Nyq dB")
	for _, fn := range families {
		for _, ratio := range ratios {
			r, err := analyzeBank(fn, ratio)
			if err != nil {
				fmt.Printf("%-16s %7.4f error: %v\n", fn.Name(), ratio, err)
				continue
			}
			fmt.Printf("%-16s %7.4f %4d %12.3e %9d %10.2f %10.2f\n",
				r.name, r.ratio, r.taps, r.maxFloatErr, r.maxFixedErr, r.mid.quarterDB, r.mid.nyquistDB)
		}
	}
}
