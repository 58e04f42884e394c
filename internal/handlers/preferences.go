package handlers

import (
	"net/http"
	"strings"

	applog "pecalc/internal/log"
	"pecalc/internal/views/pages"
	"pecalc/internal/views/theme"
)

// UpdatePreferences stores the caller's theme choice in the session.
// Unknown theme keys resolve to the default palette.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	themeConfig := theme.Resolve(strings.TrimSpace(r.FormValue("theme")))
	setSessionTheme(r, themeConfig.Key)
	applog.Debug(r.Context(), "workspace theme updated", "theme", themeConfig.Key)

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		renderComponent(w, r, pages.PreferenceStatus("Theme applied. Reloading your workspace."))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
