package pages

import (
	"time"

	"pecalc/internal/recipe"
	"pecalc/internal/views/theme"
)

// EntryView carries one ingredient row formatted for rendering. The macro
// fields hold editable input values; the derived fields hold display text.
type EntryView struct {
	ID         string
	Label      string
	Protein    string
	Fat        string
	Carbs      string
	Fiber      string
	Servings   string
	NetCarbs   string
	Energy     string
	Ratio      string
	RatioState string
}

// TotalsView carries the recipe-level sums and their derived values.
type TotalsView struct {
	EntryCount int
	Protein    string
	Fat        string
	Carbs      string
	Fiber      string
	NetCarbs   string
	Energy     string
	Ratio      string
	RatioState string
}

// CalculatorView aggregates everything the calculator page needs to render.
type CalculatorView struct {
	RecipeName   string
	Entries      []EntryView
	Totals       TotalsView
	ShareToken   string
	Theme        theme.WorkspaceTheme
	ThemeOptions []theme.Option
	CatalogReady bool
	Notice       string
	NoticeKind   string
	GeneratedAt  time.Time
}

// NewCalculatorView snapshots the store into a render-ready view.
func NewCalculatorView(store *recipe.Store, wt theme.WorkspaceTheme, catalogReady bool) CalculatorView {
	entries := store.Entries()
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		derived, _ := store.Derived(entry.ID)
		views = append(views, newEntryView(entry, derived))
	}

	token, err := recipe.EncodeShare(store.Name(), entries)
	if err != nil {
		token = ""
	}

	return CalculatorView{
		RecipeName:   store.Name(),
		Entries:      views,
		Totals:       newTotalsView(len(entries), store.AggregateEntry(), store.AggregateDerived()),
		ShareToken:   token,
		Theme:        wt,
		ThemeOptions: theme.Options(),
		CatalogReady: catalogReady,
		GeneratedAt:  time.Now(),
	}
}

// WithNotice returns a copy of the view carrying an inline status banner.
func (v CalculatorView) WithNotice(kind, message string) CalculatorView {
	v.NoticeKind = kind
	v.Notice = message
	return v
}

func newEntryView(entry recipe.Entry, derived recipe.Derived) EntryView {
	return EntryView{
		ID:         entry.ID,
		Label:      entry.Label,
		Protein:    InputValue(entry.ProteinGrams),
		Fat:        InputValue(entry.FatGrams),
		Carbs:      InputValue(entry.TotalCarbGrams),
		Fiber:      InputValue(entry.FiberGrams),
		Servings:   InputValue(entry.Servings),
		NetCarbs:   FormatGrams(derived.NetCarbGrams),
		Energy:     FormatGrams(derived.EnergyGrams),
		Ratio:      FormatRatio(derived.Ratio),
		RatioState: RatioStateClass(derived.Ratio),
	}
}

func newTotalsView(count int, aggregate recipe.Entry, derived recipe.Derived) TotalsView {
	return TotalsView{
		EntryCount: count,
		Protein:    FormatGrams(aggregate.ProteinGrams),
		Fat:        FormatGrams(aggregate.FatGrams),
		Carbs:      FormatGrams(aggregate.TotalCarbGrams),
		Fiber:      FormatGrams(aggregate.FiberGrams),
		NetCarbs:   FormatGrams(derived.NetCarbGrams),
		Energy:     FormatGrams(derived.EnergyGrams),
		Ratio:      FormatRatio(derived.Ratio),
		RatioState: RatioStateClass(derived.Ratio),
	}
}
