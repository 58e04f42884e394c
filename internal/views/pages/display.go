package pages

import (
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"pecalc/internal/recipe"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// FormatGrams renders a gram quantity with two decimal places. Values below
// half a centigram collapse to "0.00" so rounding noise never shows a sign.
func FormatGrams(v float64) string {
	if math.Abs(v) < 0.005 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatRatio renders a protein-to-energy ratio for display.
func FormatRatio(r recipe.Ratio) string {
	switch r.Kind {
	case recipe.RatioInfinite:
		return "∞"
	case recipe.RatioFinite:
		return FormatGrams(r.Value)
	default:
		return "—"
	}
}

// RatioStateClass maps a ratio kind onto its styling hook.
func RatioStateClass(r recipe.Ratio) string {
	switch r.Kind {
	case recipe.RatioInfinite:
		return "ratio-infinite"
	case recipe.RatioFinite:
		return "ratio-finite"
	default:
		return "ratio-undefined"
	}
}

// InputValue renders a quantity the way a user would type it, without
// trailing zeros, for use as a form input value.
func InputValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EntryDisplayLabel falls back to a positional name when an entry is unlabeled.
func EntryDisplayLabel(label string, index int) string {
	trimmed := strings.TrimSpace(label)
	if trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("Ingredient %d", index+1)
}

// PreferenceStatusMessage normalises the text displayed in the preferences status banner.
func PreferenceStatusMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "Pick a theme and apply to restyle your workspace."
	}
	return trimmed
}

// PreferenceStatus renders the theme preference status banner fragment.
func PreferenceStatus(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			"<p id=\"pref-status\" class=\"pref-status\">%s</p>\n",
			html.EscapeString(PreferenceStatusMessage(message)),
		)
		return err
	})
}
