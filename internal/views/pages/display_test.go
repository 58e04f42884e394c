package pages

import (
	"context"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"pecalc/internal/recipe"
)

func TestDefaultDash(t *testing.T) {
	if DefaultDash("value") != "value" {
		t.Fatal("expected non-empty value to pass through")
	}
	if DefaultDash("   ") != "—" {
		t.Fatal("expected whitespace value to produce em dash")
	}
}

func TestFormatGrams(t *testing.T) {
	cases := map[float64]string{
		0:      "0.00",
		0.004:  "0.00",
		-0.004: "0.00",
		2.5:    "2.50",
		40:     "40.00",
		0.666:  "0.67",
	}
	for value, want := range cases {
		if got := FormatGrams(value); got != want {
			t.Fatalf("FormatGrams(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	finite := recipe.Ratio{Kind: recipe.RatioFinite, Value: 2.5}
	if got := FormatRatio(finite); got != "2.50" {
		t.Fatalf("FormatRatio(finite 2.5) = %q, want %q", got, "2.50")
	}
	if got := FormatRatio(recipe.Ratio{Kind: recipe.RatioInfinite}); got != "∞" {
		t.Fatalf("FormatRatio(infinite) = %q, want infinity symbol", got)
	}
	if got := FormatRatio(recipe.Ratio{Kind: recipe.RatioUndefined}); got != "—" {
		t.Fatalf("FormatRatio(undefined) = %q, want dash", got)
	}
}

func TestRatioStateClass(t *testing.T) {
	cases := map[recipe.RatioKind]string{
		recipe.RatioFinite:    "ratio-finite",
		recipe.RatioInfinite:  "ratio-infinite",
		recipe.RatioUndefined: "ratio-undefined",
	}
	for kind, want := range cases {
		if got := RatioStateClass(recipe.Ratio{Kind: kind}); got != want {
			t.Fatalf("RatioStateClass(%v) = %q, want %q", kind, got, want)
		}
	}
}

func TestInputValue(t *testing.T) {
	if got := InputValue(2.5); got != "2.5" {
		t.Fatalf("InputValue(2.5) = %q, want %q", got, "2.5")
	}
	if got := InputValue(10); got != "10" {
		t.Fatalf("InputValue(10) = %q, want %q", got, "10")
	}
	if got := InputValue(math.NaN()); got != "0" {
		t.Fatalf("InputValue(NaN) = %q, want %q", got, "0")
	}
}

func TestEntryDisplayLabel(t *testing.T) {
	if got := EntryDisplayLabel("Chicken", 0); got != "Chicken" {
		t.Fatalf("expected explicit label to win, got %q", got)
	}
	if got := EntryDisplayLabel("  ", 2); got != "Ingredient 3" {
		t.Fatalf("expected positional fallback, got %q", got)
	}
}

func TestRecipeDisplayName(t *testing.T) {
	if got := RecipeDisplayName(" Breakfast "); got != "Breakfast" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := RecipeDisplayName(""); got != "Untitled recipe" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestPreferenceStatusTemplateRenders(t *testing.T) {
	recorder := httptest.NewRecorder()
	if err := PreferenceStatus("Saved").Render(context.Background(), recorder); err != nil {
		t.Fatalf("expected status template to render: %v", err)
	}
	if body := recorder.Body.String(); !strings.Contains(body, "Saved") {
		t.Fatalf("expected rendered status to contain message, got %s", body)
	}
}

func TestPreferenceStatusMessageDefaults(t *testing.T) {
	if got := PreferenceStatusMessage("  "); got == "" {
		t.Fatal("expected default message for blank input")
	}
	if got := PreferenceStatusMessage("Applied"); got != "Applied" {
		t.Fatalf("expected explicit message to pass through, got %q", got)
	}
}
