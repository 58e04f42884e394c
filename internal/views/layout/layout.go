// Package layout renders the HTML document shell shared by every page.
package layout

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"pecalc/internal/views/theme"
)

// Layout wraps sidebar and content components in the full document shell.
// When withSidebar is false the sidebar component is skipped entirely, which
// print views rely on.
func Layout(title string, sidebar, content templ.Component, withSidebar bool, wt theme.WorkspaceTheme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\"/>\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", html.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<link rel=\"stylesheet\" href=\"/assets/styles.css\"/>\n<script src=\"https://unpkg.com/htmx.org@1.9.12\" defer></script>\n</head>\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<body class=\"%s\">\n<div class=\"workspace-shell\">\n<div class=\"%s\">\n", html.EscapeString(wt.BodyClass), bodyWrapperClass(withSidebar)); err != nil {
			return err
		}
		if withSidebar && sidebar != nil {
			if _, err := io.WriteString(w, "<aside class=\"workspace-sidebar\">\n"); err != nil {
				return err
			}
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</aside>\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "<main class=\"%s\">\n", mainClass(withSidebar)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main>\n</div>\n</div>\n</body>\n</html>\n")
		return err
	})
}

func bodyWrapperClass(withSidebar bool) string {
	if withSidebar {
		return "workspace-grid with-sidebar"
	}
	return "workspace-grid"
}

func mainClass(withSidebar bool) string {
	if withSidebar {
		return "workspace-main beside-sidebar"
	}
	return "workspace-main full-width"
}
