package pages

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

// FormatReportDate renders the supplied time using a print-friendly layout.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02 Jan 2006")
}

// printReport renders the print-only summary carried at the bottom of the
// calculator page. Screen styles hide it; print styles hide everything else.
func printReport(view CalculatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<section class=\"print-report\">\n")
		ew.writef("<h1>%s</h1>\n", esc(RecipeDisplayName(view.RecipeName)))
		ew.writef("<table class=\"print-table\">\n<thead><tr><th>Ingredient</th><th>Servings</th><th>Protein</th><th>Fat</th><th>Total carbs</th><th>Fiber</th><th>Net carbs</th><th>Energy</th><th>P:E</th></tr></thead>\n<tbody>\n")
		for i, entry := range view.Entries {
			ew.writef(
				"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				esc(EntryDisplayLabel(entry.Label, i)),
				esc(entry.Servings),
				esc(entry.Protein),
				esc(entry.Fat),
				esc(entry.Carbs),
				esc(entry.Fiber),
				esc(entry.NetCarbs),
				esc(entry.Energy),
				esc(entry.Ratio),
			)
		}
		ew.writef("</tbody>\n<tfoot>\n")
		ew.writef(
			"<tr><th>Total</th><td></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			esc(view.Totals.Protein),
			esc(view.Totals.Fat),
			esc(view.Totals.Carbs),
			esc(view.Totals.Fiber),
			esc(view.Totals.NetCarbs),
			esc(view.Totals.Energy),
			esc(view.Totals.Ratio),
		)
		ew.writef("</tfoot>\n</table>\n")
		if date := FormatReportDate(view.GeneratedAt); date != "" {
			ew.writef("<p class=\"print-date\">Generated %s</p>\n", esc(date))
		}
		ew.writef("</section>\n")
		return ew.err
	})
}
