package server

import (
	"context"
	"net/http"

	"pecalc/internal/handlers"
	applog "pecalc/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/calc/entries", handlers.AddCalculatorEntry)
	mux.HandleFunc("/calc/entries/update", handlers.UpdateCalculatorEntry)
	mux.HandleFunc("/calc/entries/remove", handlers.RemoveCalculatorEntry)
	mux.HandleFunc("/calc/entries/label", handlers.RenameCalculatorEntry)
	mux.HandleFunc("/calc/recipe/name", handlers.RenameRecipe)
	mux.HandleFunc("/calc/recipe/reset", handlers.ResetRecipe)
	mux.HandleFunc("/calc/prefill", handlers.PrefillCalculatorEntry)
	applog.Debug(context.Background(), "route registered", "path", "/calc/")
	mux.HandleFunc("/foods/search", handlers.SearchFoods)
	applog.Debug(context.Background(), "route registered", "path", "/foods/search")
	mux.HandleFunc("/tools/label-import", handlers.ImportLabel)
	applog.Debug(context.Background(), "route registered", "path", "/tools/label-import")
	mux.HandleFunc("/prefs/theme", handlers.UpdatePreferences)
	applog.Debug(context.Background(), "route registered", "path", "/prefs/theme")
	mux.HandleFunc("/api/recipe", handlers.RecipeResource)
	mux.HandleFunc("/api/recipe/", handlers.RecipeResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/recipe")
	mux.HandleFunc("/", handlers.Calculator)
	applog.Debug(context.Background(), "route registered", "path", "/")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
