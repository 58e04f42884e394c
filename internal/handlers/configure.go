// Package handlers contains the HTTP handlers for the calculator
// workspace, the food catalog, the label import tool and the JSON recipe
// API. Handlers render htmx fragments for workspace interactions and full
// documents for plain navigation.
package handlers

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"pecalc/internal/recipe"
	"pecalc/internal/views/pages"
	"pecalc/internal/views/theme"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	workspaces     *recipe.Registry
)

// Session keys for the calculator workspace binding and the stored theme
// preference.
const (
	sessionWorkspaceKey = "workspace:id"
	sessionThemeKey     = "prefs:theme"
)

// Configure wires the handler package with its dependencies. A nil
// database runs the calculator without the food catalog, and a nil
// registry hands every request a throwaway recipe.
func Configure(sm *scs.SessionManager, db *gorm.DB, reg *recipe.Registry) {
	sessionManager = sm
	database = db
	workspaces = reg
}

// workspaceStore returns the recipe store bound to the caller's session,
// creating one on first use. Expired workspaces are replaced with a fresh
// recipe under a new id.
func workspaceStore(r *http.Request) *recipe.Store {
	if sessionManager == nil || workspaces == nil {
		return recipe.NewStore()
	}
	if id := sessionManager.GetString(r.Context(), sessionWorkspaceKey); id != "" {
		if store, ok := workspaces.Get(id); ok {
			return store
		}
	}
	id, store := workspaces.Create()
	sessionManager.Put(r.Context(), sessionWorkspaceKey, id)
	return store
}

// sessionTheme resolves the caller's stored theme choice, falling back to
// the default palette when nothing is stored.
func sessionTheme(r *http.Request) theme.WorkspaceTheme {
	key := ""
	if sessionManager != nil {
		key = sessionManager.GetString(r.Context(), sessionThemeKey)
	}
	return theme.Resolve(key)
}

func setSessionTheme(r *http.Request, key string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionThemeKey, key)
}

// currentView snapshots the store into the view model the calculator
// templates render.
func currentView(r *http.Request, store *recipe.Store) pages.CalculatorView {
	return pages.NewCalculatorView(store, sessionTheme(r), database != nil)
}
