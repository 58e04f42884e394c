// Package components holds small reusable view fragments shared across pages.
package components

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// SidebarLink describes a single navigation entry in the workspace sidebar.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData carries the navigation state for the sidebar component.
type SidebarData struct {
	Active   string
	Features []SidebarLink
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Sidebar renders the workspace navigation rail.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<nav class=\"workspace-nav\">\n"); err != nil {
			return err
		}
		for _, link := range data.Features {
			if _, err := fmt.Fprintf(
				w,
				"<a href=\"%s\" data-nav-section=\"%s\" data-state=\"%s\" class=\"workspace-nav-link\">%s</a>\n",
				html.EscapeString(link.Path),
				html.EscapeString(link.Section),
				linkState(link.Section, data.Active),
				html.EscapeString(link.Label),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</nav>\n")
		return err
	})
}

// StatCard renders a single headline metric with optional delta and caption.
func StatCard(label, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(
			w,
			"<div class=\"stat-card\">\n<span class=\"stat-label\">%s</span>\n<span class=\"stat-value\">%s</span>\n",
			html.EscapeString(label),
			html.EscapeString(value),
		); err != nil {
			return err
		}
		if delta != "" {
			if _, err := fmt.Fprintf(w, "<span class=\"stat-delta\">%s</span>\n", html.EscapeString(delta)); err != nil {
				return err
			}
		}
		if caption != "" {
			if _, err := fmt.Fprintf(w, "<span class=\"stat-caption\">%s</span>\n", html.EscapeString(caption)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// CatalogRow is a display-ready food catalog entry.
type CatalogRow struct {
	ID      string
	Name    string
	Serving string
	Protein string
	Fat     string
	Carbs   string
	Fiber   string
}

// CatalogTable renders food search results with a prefill action per row.
func CatalogTable(rows []CatalogRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(rows) == 0 {
			_, err := io.WriteString(w, "<p class=\"catalog-empty\">No foods matched your search.</p>\n")
			return err
		}
		if _, err := io.WriteString(w, "<table class=\"catalog-table\">\n<thead><tr><th>Food</th><th>Serving</th><th>Protein</th><th>Fat</th><th>Carbs</th><th>Fiber</th><th></th></tr></thead>\n<tbody>\n"); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(
				w,
				"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><button type=\"button\" class=\"catalog-add\" hx-post=\"/calc/prefill\" hx-vals='{\"food_id\":\"%s\"}' hx-target=\"#calculator\" hx-swap=\"outerHTML\">Add</button></td></tr>\n",
				html.EscapeString(row.Name),
				html.EscapeString(row.Serving),
				html.EscapeString(row.Protein),
				html.EscapeString(row.Fat),
				html.EscapeString(row.Carbs),
				html.EscapeString(row.Fiber),
				html.EscapeString(row.ID),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}

func noticeClass(kind string) string {
	switch kind {
	case "error":
		return "notice notice-error"
	case "success":
		return "notice notice-success"
	default:
		return "notice"
	}
}

// Notice renders an inline status banner.
func Notice(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(
			w,
			"<div class=\"%s\" role=\"status\">%s</div>\n",
			noticeClass(kind),
			html.EscapeString(message),
		)
		return err
	})
}
