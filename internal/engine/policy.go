package engine

import (
	"fmt"
	"math"
)

// Neighborhood is what a Policy sees for one output sample.
type Neighborhood struct {
	// Window holds the source samples around the output position in raster
	// order, Size×Size values with edges replicated.
	Window []float64
	Size   int

	// Results holds each candidate filter's unclipped output. Index 0 is the
	// generic filter, index 1 the bilinear fallback.
	Results []float64

	// Range is the span of legal sample values of the component.
	Range float64
}

// Policy chooses a candidate filter per output sample. Returning 0 keeps the
// generic filter; out-of-range indices are treated as 0.
type Policy interface {
	Select(n Neighborhood) int
	Name() string
}

// GradientPolicy falls back to bilinear where the largest difference between
// neighboring source samples exceeds Threshold, expressed as a fraction of
// the component range.
type GradientPolicy struct {
	Threshold float64
}

// Select implements Policy.
func (p GradientPolicy) Select(n Neighborhood) int {
	if n.Range <= 0 || n.Size == 0 {
		return primaryCandidate
	}
	var grad float64
	for y := range n.Size {
		for x := range n.Size {
			v := n.Window[y*n.Size+x]
			if x+1 < n.Size {
				grad = math.Max(grad, math.Abs(n.Window[y*n.Size+x+1]-v))
			}
			if y+1 < n.Size {
				grad = math.Max(grad, math.Abs(n.Window[(y+1)*n.Size+x]-v))
			}
		}
	}
	if grad/n.Range > p.Threshold {
		return bilinearCandidate
	}
	return primaryCandidate
}

// Name implements Policy.
func (p GradientPolicy) Name() string {
	return fmt.Sprintf("gradient(%g)", p.Threshold)
}

// BoundsPolicy keeps the generic filter unless its result leaves the range of
// the source neighborhood, then picks the first candidate that stays inside.
type BoundsPolicy struct{}

// Select implements Policy.
func (BoundsPolicy) Select(n Neighborhood) int {
	if len(n.Window) == 0 || len(n.Results) == 0 {
		return primaryCandidate
	}
	lo, hi := n.Window[0], n.Window[0]
	for _, v := range n.Window[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i, r := range n.Results {
		if r >= lo && r <= hi {
			return i
		}
	}
	return primaryCandidate
}

// Name implements Policy.
func (BoundsPolicy) Name() string { return "bounds" }

// ChainPolicy asks each policy in turn and returns the first choice that is
// not the generic filter.
type ChainPolicy []Policy

// Select implements Policy.
func (c ChainPolicy) Select(n Neighborhood) int {
	for _, p := range c {
		if i := p.Select(n); i != primaryCandidate {
			return i
		}
	}
	return primaryCandidate
}

// Name implements Policy.
func (c ChainPolicy) Name() string {
	name := ""
	for i, p := range c {
		if i > 0 {
			name += "+"
		}
		name += p.Name()
	}
	return name
}

// policyFor returns the selection predicate of an adaptive mode.
func policyFor(p Params) (Policy, error) {
	if p.Policy != nil {
		return p.Policy, nil
	}
	switch p.Adaptive {
	case AdaptiveMulti, AdaptiveCrEdge:
		if p.EdgeThreshold <= 0 {
			return nil, fmt.Errorf("%w: adaptive %v needs an edge threshold or a policy", ErrUnsupported, p.Adaptive)
		}
		gradient := GradientPolicy{Threshold: p.EdgeThreshold}
		if p.UseMinMax {
			return ChainPolicy{gradient, BoundsPolicy{}}, nil
		}
		return gradient, nil
	case AdaptiveCrBounds:
		return BoundsPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown adaptive mode %v", ErrUnsupported, p.Adaptive)
	}
}
