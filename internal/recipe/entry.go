// Package recipe implements the calculator core: macro entries, the
// derivation rules for net carbs, energy and the P:E ratio, an ordered
// entry store with change notification, and the aggregation that folds a
// whole recipe into a single ratio.
package recipe

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Entry holds one food item's raw macro inputs. The gram fields are
// per-serving label amounts; Servings scales them whenever values are
// derived. Entries are owned by a Store and mutated only through it.
type Entry struct {
	ID             string
	Label          string
	ProteinGrams   float64
	FatGrams       float64
	TotalCarbGrams float64
	FiberGrams     float64
	Servings       float64
}

// EntryInit seeds a new entry. Gram fields default to zero; Servings
// defaults to one serving when nil.
type EntryInit struct {
	Label          string
	ProteinGrams   float64
	FatGrams       float64
	TotalCarbGrams float64
	FiberGrams     float64
	Servings       *float64
}

func newEntry(init EntryInit) Entry {
	servings := 1.0
	if init.Servings != nil {
		servings = sanitizeQuantity(*init.Servings)
	}
	return Entry{
		ID:             uuid.NewString(),
		Label:          init.Label,
		ProteinGrams:   sanitizeQuantity(init.ProteinGrams),
		FatGrams:       sanitizeQuantity(init.FatGrams),
		TotalCarbGrams: sanitizeQuantity(init.TotalCarbGrams),
		FiberGrams:     sanitizeQuantity(init.FiberGrams),
		Servings:       servings,
	}
}

// sanitizeQuantity coerces seed values from untrusted sources (share
// payloads, catalog rows) into the domain: negatives and non-finite
// values collapse to zero.
func sanitizeQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// validateQuantity is the strict form used for interactive edits. Instead
// of coercing it rejects, so a bad edit never silently zeroes a field.
func validateQuantity(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: value must be a finite number", ErrInvalidInput)
	}
	if v < 0 {
		return fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	return nil
}
