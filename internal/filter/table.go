// Package filter provides the separable 1D filters used for chroma format
// conversion and frame scaling: table-driven kernels, coefficient bank
// generation for arbitrary ratios and kernel analysis.
package filter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidTable is returned when a filter table entry is malformed or missing.
var ErrInvalidTable = errors.New("invalid filter table")

// FilterID names an entry of the static filter table.
type FilterID int

const (
	// FilterBilinear is the 2-tap linear filter family.
	FilterBilinear FilterID = iota

	// FilterCfE is the filter pair of the MPEG HDR/WCG call-for-evidence
	// anchors: [1 6 1]/8 decimation and 4-tap /64 interpolation.
	FilterCfE

	// FilterTM5 is the MPEG-2 Test Model 5 filter pair: 7-tap /256
	// decimation and 6-tap /256 interpolation.
	FilterTM5
)

// String returns the filter name.
func (id FilterID) String() string {
	switch id {
	case FilterBilinear:
		return "bilinear"
	case FilterCfE:
		return "cfe"
	case FilterTM5:
		return "tm5"
	default:
		return fmt.Sprintf("FilterID(%d)", int(id))
	}
}

// TapDef is one raw table entry: integer weights, rounding offset and
// right shift. The weights of a well-formed entry sum to 1<<Shift.
type TapDef struct {
	Weights []int
	Offset  int
	Shift   int
}

// Sum returns the sum of the entry's weights.
func (d TapDef) Sum() int {
	s := 0
	for _, w := range d.Weights {
		s += w
	}
	return s
}

// DownDef holds 2:1 decimation kernels. Cosited kernels are odd and centered
// on a source sample; interstitial kernels are even and centered between two.
type DownDef struct {
	Cosited      TapDef
	Interstitial TapDef
}

// UpDef holds 1:2 interpolation phase pairs.
//
// For co-sited chroma, phase 0 lands on a source sample and phase 1 halfway
// to the next. For interstitial chroma, phase 0 lands a quarter sample after
// a source sample and phase 1 a quarter sample before one.
type UpDef struct {
	Cosited      [2]TapDef
	Interstitial [2]TapDef
}

// Entry is one named filter of the table.
type Entry struct {
	Name string
	Down DownDef
	Up   UpDef
}

// Table is a read-only set of filter definitions. Converters take it as an
// injected dependency; DefaultTable returns the built-in one.
type Table struct {
	entries map[FilterID]Entry
}

// NewTable builds and validates a table.
func NewTable(entries map[FilterID]Entry) (*Table, error) {
	t := &Table{entries: make(map[FilterID]Entry, len(entries))}
	for id, e := range entries {
		t.entries[id] = e
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the entry for id.
func (t *Table) Lookup(id FilterID) (Entry, error) {
	e, ok := t.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: no entry for %v", ErrInvalidTable, id)
	}
	return e, nil
}

// IDs returns the table's filter IDs in ascending order.
func (t *Table) IDs() []FilterID {
	ids := make([]FilterID, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Validate checks unity gain of every kernel and that both phases of each
// interpolation pair share one shift.
func (t *Table) Validate() error {
	for _, id := range t.IDs() {
		e := t.entries[id]
		defs := []struct {
			what string
			def  TapDef
		}{
			{"down/cosited", e.Down.Cosited},
			{"down/interstitial", e.Down.Interstitial},
			{"up/cosited[0]", e.Up.Cosited[0]},
			{"up/cosited[1]", e.Up.Cosited[1]},
			{"up/interstitial[0]", e.Up.Interstitial[0]},
			{"up/interstitial[1]", e.Up.Interstitial[1]},
		}
		for _, d := range defs {
			if err := validateDef(d.def); err != nil {
				return fmt.Errorf("%w: %v %s: %v", ErrInvalidTable, id, d.what, err)
			}
		}
		if e.Up.Cosited[0].Shift != e.Up.Cosited[1].Shift ||
			e.Up.Interstitial[0].Shift != e.Up.Interstitial[1].Shift {
			return fmt.Errorf("%w: %v interpolation phases use different shifts", ErrInvalidTable, id)
		}
	}
	return nil
}

func validateDef(d TapDef) error {
	if len(d.Weights) == 0 {
		return errors.New("no taps")
	}
	if d.Shift < 0 || d.Shift > maxTableShift {
		return fmt.Errorf("shift %d out of range [0, %d]", d.Shift, maxTableShift)
	}
	if got, want := d.Sum(), 1<<d.Shift; got != want {
		return fmt.Errorf("weights sum to %d, want %d", got, want)
	}
	return nil
}

// def builds a TapDef with the conventional half-LSB rounding offset.
func def(shift int, weights ...int) TapDef {
	offset := 0
	if shift > 0 {
		offset = 1 << (shift - 1)
	}
	return TapDef{Weights: weights, Offset: offset, Shift: shift}
}

var defaultEntries = map[FilterID]Entry{
	FilterBilinear: {
		Name: "bilinear",
		Down: DownDef{
			Cosited:      def(2, 1, 2, 1),
			Interstitial: def(1, 1, 1),
		},
		Up: UpDef{
			Cosited:      [2]TapDef{def(1, 2), def(1, 1, 1)},
			Interstitial: [2]TapDef{def(2, 3, 1), def(2, 1, 3)},
		},
	},
	FilterCfE: {
		Name: "cfe",
		Down: DownDef{
			Cosited:      def(3, 1, 6, 1),
			Interstitial: def(3, 1, 3, 3, 1),
		},
		Up: UpDef{
			Cosited:      [2]TapDef{def(6, 64), def(6, -4, 36, 36, -4)},
			Interstitial: [2]TapDef{def(6, -4, 54, 16, -2), def(6, -2, 16, 54, -4)},
		},
	},
	FilterTM5: {
		Name: "tm5",
		Down: DownDef{
			Cosited:      def(8, -29, 0, 88, 138, 88, 0, -29),
			Interstitial: def(8, -3, -4, 39, 96, 96, 39, -4, -3),
		},
		Up: UpDef{
			Cosited:      [2]TapDef{def(8, 256), def(8, 21, -52, 159, 159, -52, 21)},
			Interstitial: [2]TapDef{def(7, -9, 111, 29, -3), def(7, -3, 29, 111, -9)},
		},
	},
}

// DefaultTable returns the built-in filter table.
func DefaultTable() *Table {
	t, err := NewTable(defaultEntries)
	if err != nil {
		// The built-in entries are covered by tests.
		panic(err)
	}
	return t
}
