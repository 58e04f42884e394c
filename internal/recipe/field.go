package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput rejects a proposed field value that is negative,
// non-finite, or names an unknown field. The store keeps its prior state
// whenever an update fails with it.
var ErrInvalidInput = errors.New("invalid input")

// Field identifies one editable numeric field of an entry.
type Field string

// The editable fields. These identifiers double as the form/API names the
// presentation layer submits.
const (
	FieldProtein   Field = "protein"
	FieldFat       Field = "fat"
	FieldTotalCarb Field = "totalCarb"
	FieldFiber     Field = "fiber"
	FieldServings  Field = "servings"
)

// Fields lists every editable field in display order.
func Fields() []Field {
	return []Field{FieldProtein, FieldFat, FieldTotalCarb, FieldFiber, FieldServings}
}

// ParseField resolves a submitted field identifier, case-insensitively.
// Unknown identifiers fail with ErrInvalidInput.
func ParseField(raw string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "protein":
		return FieldProtein, nil
	case "fat":
		return FieldFat, nil
	case "totalcarb":
		return FieldTotalCarb, nil
	case "fiber":
		return FieldFiber, nil
	case "servings":
		return FieldServings, nil
	default:
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidInput, raw)
	}
}

// Label returns the user-facing name of the field.
func (f Field) Label() string {
	switch f {
	case FieldProtein:
		return "Protein (g per serving)"
	case FieldFat:
		return "Fat (g per serving)"
	case FieldTotalCarb:
		return "Total carbs (g per serving)"
	case FieldFiber:
		return "Fiber (g per serving)"
	case FieldServings:
		return "Servings used in recipe"
	default:
		return string(f)
	}
}

func (f Field) apply(e *Entry, v float64) bool {
	switch f {
	case FieldProtein:
		e.ProteinGrams = v
	case FieldFat:
		e.FatGrams = v
	case FieldTotalCarb:
		e.TotalCarbGrams = v
	case FieldFiber:
		e.FiberGrams = v
	case FieldServings:
		e.Servings = v
	default:
		return false
	}
	return true
}

func (f Field) read(e Entry) float64 {
	switch f {
	case FieldProtein:
		return e.ProteinGrams
	case FieldFat:
		return e.FatGrams
	case FieldTotalCarb:
		return e.TotalCarbGrams
	case FieldFiber:
		return e.FiberGrams
	case FieldServings:
		return e.Servings
	default:
		return 0
	}
}
