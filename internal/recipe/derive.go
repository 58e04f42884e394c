package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// RatioKind tags the three possible outcomes of the protein-to-energy
// division. Zero-energy entries are data, not errors: an all-zero entry has
// nothing to report, a pure-protein entry has an unbounded ratio.
type RatioKind int

const (
	// RatioUndefined marks an entry with no protein and no energy.
	RatioUndefined RatioKind = iota
	// RatioFinite marks a regular protein/energy quotient.
	RatioFinite
	// RatioInfinite marks protein with zero energy.
	RatioInfinite
)

// Ratio is the P:E ratio as a tagged value rather than a float NaN/Inf bit
// pattern, so comparisons and JSON stay well defined.
type Ratio struct {
	Kind  RatioKind
	Value float64
}

// IsFinite reports whether the ratio carries a usable numeric value.
func (r Ratio) IsFinite() bool { return r.Kind == RatioFinite }

// String renders the exact value, or the placeholder glyphs used across
// the UI for the sentinel kinds.
func (r Ratio) String() string {
	switch r.Kind {
	case RatioInfinite:
		return "∞"
	case RatioFinite:
		return strconv.FormatFloat(r.Value, 'f', -1, 64)
	default:
		return "—"
	}
}

type ratioJSON struct {
	Kind  string   `json:"kind"`
	Value *float64 `json:"value,omitempty"`
}

// MarshalJSON encodes the ratio as a tagged object, e.g.
// {"kind":"finite","value":2.5} or {"kind":"infinite"}.
func (r Ratio) MarshalJSON() ([]byte, error) {
	out := ratioJSON{Kind: "undefined"}
	switch r.Kind {
	case RatioFinite:
		v := r.Value
		out.Kind = "finite"
		out.Value = &v
	case RatioInfinite:
		out.Kind = "infinite"
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the tagged object form MarshalJSON produces. A
// finite ratio with no value decodes to zero.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	var in ratioJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "finite":
		var v float64
		if in.Value != nil {
			v = *in.Value
		}
		*r = Ratio{Kind: RatioFinite, Value: v}
	case "infinite":
		*r = Ratio{Kind: RatioInfinite}
	case "undefined":
		*r = Ratio{Kind: RatioUndefined}
	default:
		return fmt.Errorf("unknown ratio kind %q", in.Kind)
	}
	return nil
}

// Derived carries the values computed from a single entry. It is never
// stored authoritatively; the store recomputes it whenever the source
// entry has changed.
type Derived struct {
	ProteinGrams float64 `json:"protein"`
	NetCarbGrams float64 `json:"netCarb"`
	EnergyGrams  float64 `json:"energy"`
	Ratio        Ratio   `json:"ratio"`
}

// Derive computes net carbs, energy and the P:E ratio for one entry. It is
// a pure function over the entry's effective grams (per-serving grams
// scaled by servings). Fiber reported above total carbs clamps net carbs
// to zero instead of failing, tolerating label rounding noise.
func Derive(e Entry) Derived {
	servings := sanitizeQuantity(e.Servings)
	protein := sanitizeQuantity(e.ProteinGrams) * servings
	fat := sanitizeQuantity(e.FatGrams) * servings
	totalCarb := sanitizeQuantity(e.TotalCarbGrams) * servings
	fiber := sanitizeQuantity(e.FiberGrams) * servings

	netCarb := math.Max(0, totalCarb-fiber)
	energy := fat + netCarb

	d := Derived{
		ProteinGrams: protein,
		NetCarbGrams: netCarb,
		EnergyGrams:  energy,
	}
	switch {
	case energy == 0 && protein == 0:
		d.Ratio = Ratio{Kind: RatioUndefined}
	case energy == 0:
		d.Ratio = Ratio{Kind: RatioInfinite}
	default:
		d.Ratio = Ratio{Kind: RatioFinite, Value: protein / energy}
	}
	return d
}
