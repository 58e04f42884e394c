package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// WorkspaceTheme contains resolved styling primitives for the application
// shell. BodyClass selects the palette; everything else derives from the
// stylesheet's custom properties under that class.
type WorkspaceTheme struct {
	Key       string
	BodyClass string
}

const (
	// DefaultKey defines the fallback theme when no session preference exists.
	DefaultKey = "charcoal"
)

var catalogue = map[string]WorkspaceTheme{
	"charcoal": {
		Key:       "charcoal",
		BodyClass: "theme-charcoal",
	},
	"oat_cream": {
		Key:       "oat_cream",
		BodyClass: "theme-oat-cream",
	},
	"sage_tint": {
		Key:       "sage_tint",
		BodyClass: "theme-sage-tint",
	},
}

var options = []Option{
	{Value: "charcoal", Label: "Charcoal (Dark)"},
	{Value: "oat_cream", Label: "Oat Cream (Light)"},
	{Value: "sage_tint", Label: "Sage Tint (Green)"},
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) WorkspaceTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
