// Package pages renders the calculator workspace and its htmx fragments.
package pages

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"pecalc/internal/views/components"
	"pecalc/internal/views/layout"
)

// errWriter collects the first write error so component bodies stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) writef(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) render(ctx context.Context, c templ.Component) {
	if ew.err != nil || c == nil {
		return
	}
	ew.err = c.Render(ctx, ew.w)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// RecipeDisplayName falls back to a friendly default for unnamed recipes.
func RecipeDisplayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Untitled recipe"
	}
	return trimmed
}

func pageTitle(recipeName string) string {
	if strings.TrimSpace(recipeName) == "" {
		return "Protein:Energy Calculator"
	}
	return RecipeDisplayName(recipeName) + " · Protein:Energy Calculator"
}

var hashPromotionScript = templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "<script>(function(){var m=window.location.hash.match(/^#recipe=(.+)$/);if(m){window.location.replace(\"/?recipe=\"+m[1]);}})();</script>\n")
	return err
})

// CalculatorPage renders the full calculator document.
func CalculatorPage(view CalculatorView) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := hashPromotionScript.Render(ctx, w); err != nil {
			return err
		}
		return Calculator(view).Render(ctx, w)
	})
	return layout.Layout(pageTitle(view.RecipeName), calculatorSidebar(view), content, true, view.Theme)
}

// Calculator renders the swap target every mutation re-renders.
func Calculator(view CalculatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<div id=\"calculator\" class=\"calculator\">\n")
		if view.Notice != "" {
			ew.render(ctx, components.Notice(view.NoticeKind, view.Notice))
		}

		ew.writef("<header class=\"recipe-header\">\n")
		ew.writef("<input class=\"recipe-name\" name=\"name\" value=\"%s\" placeholder=\"Untitled recipe\" aria-label=\"Recipe name\" hx-post=\"/calc/recipe/name\" hx-trigger=\"change\" hx-target=\"#calculator\" hx-swap=\"outerHTML\"/>\n", esc(view.RecipeName))
		ew.writef("<button class=\"recipe-reset\" hx-post=\"/calc/recipe/reset\" hx-confirm=\"Start a new recipe?\" hx-target=\"#calculator\" hx-swap=\"outerHTML\">New recipe</button>\n")
		ew.writef("</header>\n")

		ew.writef("<section class=\"entries\" aria-label=\"Ingredients\">\n")
		for i, entry := range view.Entries {
			ew.render(ctx, entryCard(entry, i))
		}
		if len(view.Entries) == 0 {
			ew.writef("<p class=\"entries-empty\">Add an ingredient to start tracking your ratio.</p>\n")
		}
		ew.writef("<button class=\"entry-add\" hx-post=\"/calc/entries\" hx-target=\"#calculator\" hx-swap=\"outerHTML\">Add ingredient</button>\n")
		ew.writef("</section>\n")

		ew.render(ctx, totalsPanel(view.Totals))
		ew.render(ctx, sharePanel(view.ShareToken))
		ew.render(ctx, printReport(view))
		ew.writef("</div>\n")
		return ew.err
	})
}

func entryCard(entry EntryView, index int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<article class=\"entry-card\" data-entry-id=\"%s\">\n", esc(entry.ID))
		ew.writef("<header class=\"entry-head\">\n")
		ew.writef("<input class=\"entry-label\" name=\"label\" value=\"%s\" placeholder=\"%s\" aria-label=\"Ingredient name\" hx-post=\"/calc/entries/label\" hx-trigger=\"change\" hx-vals='{\"id\":\"%s\"}' hx-target=\"#calculator\" hx-swap=\"outerHTML\"/>\n", esc(entry.Label), esc(EntryDisplayLabel("", index)), esc(entry.ID))
		ew.writef("<button class=\"entry-remove\" aria-label=\"Remove ingredient\" hx-post=\"/calc/entries/remove\" hx-vals='{\"id\":\"%s\"}' hx-target=\"#calculator\" hx-swap=\"outerHTML\">&times;</button>\n", esc(entry.ID))
		ew.writef("</header>\n")

		ew.writef("<div class=\"entry-fields\">\n")
		ew.render(ctx, macroField(entry.ID, "protein", "Protein (g)", entry.Protein))
		ew.render(ctx, macroField(entry.ID, "fat", "Fat (g)", entry.Fat))
		ew.render(ctx, macroField(entry.ID, "totalCarb", "Total carbs (g)", entry.Carbs))
		ew.render(ctx, macroField(entry.ID, "fiber", "Fiber (g)", entry.Fiber))
		ew.render(ctx, macroField(entry.ID, "servings", "Servings", entry.Servings))
		ew.writef("</div>\n")

		ew.writef("<dl class=\"entry-derived\">\n")
		ew.writef("<dt>Net carbs</dt><dd>%s g</dd>\n", esc(entry.NetCarbs))
		ew.writef("<dt>Energy</dt><dd>%s g</dd>\n", esc(entry.Energy))
		ew.writef("<dt>P:E</dt><dd class=\"%s\">%s</dd>\n", esc(entry.RatioState), esc(entry.Ratio))
		ew.writef("</dl>\n")
		ew.writef("</article>\n")
		return ew.err
	})
}

func macroField(entryID, field, label, value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			"<label class=\"macro-field\"><span>%s</span><input type=\"text\" inputmode=\"decimal\" name=\"value\" value=\"%s\" hx-post=\"/calc/entries/update\" hx-trigger=\"change\" hx-vals='{\"id\":\"%s\",\"field\":\"%s\"}' hx-target=\"#calculator\" hx-swap=\"outerHTML\"/></label>\n",
			esc(label), esc(value), esc(entryID), esc(field),
		)
		return err
	})
}

func ratioCaption(state string) string {
	switch state {
	case "ratio-infinite":
		return "All protein, no energy"
	case "ratio-finite":
		return "Protein per gram of energy"
	default:
		return "Nothing to compare yet"
	}
}

func totalsPanel(totals TotalsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<section class=\"totals-panel\" aria-label=\"Recipe totals\">\n<div class=\"totals-stats\">\n")
		ew.render(ctx, components.StatCard("Protein", totals.Protein+" g", "", ""))
		ew.render(ctx, components.StatCard("Energy", totals.Energy+" g", "", "Fat + net carbs"))
		ew.render(ctx, components.StatCard("P:E Ratio", totals.Ratio, "", ratioCaption(totals.RatioState)))
		ew.writef("</div>\n<table class=\"totals-table\">\n<tbody>\n")
		ew.writef("<tr><th>Ingredients</th><td>%d</td></tr>\n", totals.EntryCount)
		ew.writef("<tr><th>Fat</th><td>%s g</td></tr>\n", esc(totals.Fat))
		ew.writef("<tr><th>Total carbs</th><td>%s g</td></tr>\n", esc(totals.Carbs))
		ew.writef("<tr><th>Fiber</th><td>%s g</td></tr>\n", esc(totals.Fiber))
		ew.writef("<tr><th>Net carbs</th><td>%s g</td></tr>\n", esc(totals.NetCarbs))
		ew.writef("</tbody>\n</table>\n</section>\n")
		return ew.err
	})
}

func sharePanel(token string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<section class=\"share-panel\" aria-label=\"Share\">\n<h2>Share</h2>\n")
		if token == "" {
			ew.writef("<p class=\"share-hint\">Your recipe link appears here once the recipe can be encoded.</p>\n")
		} else {
			ew.writef("<input class=\"share-link\" readonly value=\"/?recipe=%s\" onclick=\"this.select()\" aria-label=\"Share link\"/>\n", esc(token))
			ew.writef("<a class=\"share-open\" href=\"/?recipe=%s\">Open link</a>\n", esc(token))
		}
		ew.writef("</section>\n")
		return ew.err
	})
}

func calculatorSidebar(view CalculatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<div class=\"sidebar-brand\">P:E Calculator</div>\n")
		ew.render(ctx, components.Sidebar(components.SidebarData{
			Active:   "calculator",
			Features: sidebarLinks(view.CatalogReady),
		}))
		if view.CatalogReady {
			ew.render(ctx, catalogPanel())
		}
		ew.render(ctx, labelImportPanel())
		ew.render(ctx, preferencesPanel(view))
		return ew.err
	})
}

func sidebarLinks(catalogReady bool) []components.SidebarLink {
	links := []components.SidebarLink{
		{Label: "Calculator", Path: "/", Section: "calculator"},
	}
	if catalogReady {
		links = append(links, components.SidebarLink{Label: "Food Catalog", Path: "#catalog", Section: "catalog"})
	}
	links = append(links,
		components.SidebarLink{Label: "Label Import", Path: "#label-import", Section: "label-import"},
		components.SidebarLink{Label: "Preferences", Path: "#preferences", Section: "preferences"},
	)
	return links
}

func catalogPanel() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<section id=\"catalog\" class=\"catalog-panel\">\n<h2>Food catalog</h2>\n<input type=\"search\" name=\"q\" placeholder=\"Search foods\" aria-label=\"Search foods\" hx-get=\"/foods/search\" hx-trigger=\"keyup changed delay:300ms, search\" hx-target=\"#catalog-results\" hx-swap=\"innerHTML\"/>\n<div id=\"catalog-results\"></div>\n</section>\n")
		return err
	})
}

func labelImportPanel() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<section id=\"label-import\" class=\"label-import-panel\">\n<h2>Label import</h2>\n<form hx-post=\"/tools/label-import\" hx-encoding=\"multipart/form-data\" hx-target=\"#calculator\" hx-swap=\"outerHTML\">\n<textarea name=\"label_text\" rows=\"4\" placeholder=\"Paste nutrition label text\"></textarea>\n<input type=\"file\" name=\"label_file\" accept=\".pdf,.txt,application/pdf,text/plain\"/>\n<button type=\"submit\">Parse label</button>\n</form>\n</section>\n")
		return err
	})
}

func preferencesPanel(view CalculatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.writef("<section id=\"preferences\" class=\"preferences-panel\">\n<h2>Preferences</h2>\n")
		ew.writef("<form hx-post=\"/prefs/theme\" hx-target=\"#pref-status\" hx-swap=\"outerHTML\">\n<select name=\"theme\" aria-label=\"Theme\">\n")
		for _, option := range view.ThemeOptions {
			selected := ""
			if option.Value == view.Theme.Key {
				selected = " selected"
			}
			ew.writef("<option value=\"%s\"%s>%s</option>\n", esc(option.Value), selected, esc(option.Label))
		}
		ew.writef("</select>\n<button type=\"submit\">Apply</button>\n</form>\n")
		ew.render(ctx, PreferenceStatus(""))
		ew.writef("</section>\n")
		return ew.err
	})
}
