package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	applog "pecalc/internal/log"
	"pecalc/internal/recipe"
)

type recipeEntryRequest struct {
	Label     string   `json:"label"`
	Protein   float64  `json:"protein"`
	Fat       float64  `json:"fat"`
	TotalCarb float64  `json:"totalCarb"`
	Fiber     float64  `json:"fiber"`
	Servings  *float64 `json:"servings,omitempty"`
}

type recipeFieldUpdateRequest struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

type recipeEntryResponse struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	Protein   float64        `json:"protein"`
	Fat       float64        `json:"fat"`
	TotalCarb float64        `json:"totalCarb"`
	Fiber     float64        `json:"fiber"`
	Servings  float64        `json:"servings"`
	Derived   recipe.Derived `json:"derived"`
}

type recipeResponse struct {
	Name      string                `json:"name"`
	Version   uint64                `json:"version"`
	Entries   []recipeEntryResponse `json:"entries"`
	Aggregate recipe.Derived        `json:"aggregate"`
	Share     string                `json:"share,omitempty"`
}

// RecipeResource serves the JSON view of the session recipe under
// /api/recipe. Entries are addressed by the opaque ids the workspace
// assigns.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	store := workspaceStore(r)

	path := strings.TrimPrefix(r.URL.Path, "/api/recipe")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, projectRecipe(store))
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segments := strings.Split(path, "/")
	if segments[0] != "entries" || len(segments) > 2 {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 1 {
		if r.Method == http.MethodPost {
			createRecipeEntry(w, r, store)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entryID := segments[1]
	switch r.Method {
	case http.MethodPut:
		updateRecipeEntry(w, r, store, entryID)
	case http.MethodDelete:
		// Removing an absent entry is a no-op, which keeps DELETE
		// idempotent for retrying clients.
		store.RemoveEntry(entryID)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createRecipeEntry(w http.ResponseWriter, r *http.Request, store *recipe.Store) {
	var payload recipeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	id := store.AddEntry(recipe.EntryInit{
		Label:          strings.TrimSpace(payload.Label),
		ProteinGrams:   payload.Protein,
		FatGrams:       payload.Fat,
		TotalCarbGrams: payload.TotalCarb,
		FiberGrams:     payload.Fiber,
		Servings:       payload.Servings,
	})

	entry, _ := store.Entry(id)
	derived, _ := store.Derived(id)
	writeJSON(w, http.StatusCreated, projectEntry(entry, derived))
}

func updateRecipeEntry(w http.ResponseWriter, r *http.Request, store *recipe.Store, entryID string) {
	var payload recipeFieldUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	field, err := recipe.ParseField(payload.Field)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if _, ok := store.Entry(entryID); !ok {
		http.NotFound(w, r)
		return
	}
	if err := store.UpdateField(entryID, field, payload.Value); err != nil {
		if errors.Is(err, recipe.ErrInvalidInput) {
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		applog.Error(r.Context(), "failed to update recipe entry", "error", err, "entry_id", entryID)
		writeJSONError(w, http.StatusInternalServerError, "failed to update entry")
		return
	}

	entry, ok := store.Entry(entryID)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	derived, _ := store.Derived(entryID)
	writeJSON(w, http.StatusOK, projectEntry(entry, derived))
}

func projectRecipe(store *recipe.Store) recipeResponse {
	entries := store.Entries()
	out := recipeResponse{
		Name:      store.Name(),
		Version:   store.Version(),
		Entries:   make([]recipeEntryResponse, 0, len(entries)),
		Aggregate: store.AggregateDerived(),
	}
	for _, entry := range entries {
		derived, _ := store.Derived(entry.ID)
		out.Entries = append(out.Entries, projectEntry(entry, derived))
	}
	if token, err := recipe.EncodeShare(out.Name, entries); err == nil {
		out.Share = token
	}
	return out
}

func projectEntry(entry recipe.Entry, derived recipe.Derived) recipeEntryResponse {
	return recipeEntryResponse{
		ID:        entry.ID,
		Label:     entry.Label,
		Protein:   entry.ProteinGrams,
		Fat:       entry.FatGrams,
		TotalCarb: entry.TotalCarbGrams,
		Fiber:     entry.FiberGrams,
		Servings:  entry.Servings,
		Derived:   derived,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
