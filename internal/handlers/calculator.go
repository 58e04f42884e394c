package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	templpkg "github.com/a-h/templ"
	"gorm.io/gorm"

	applog "pecalc/internal/log"
	"pecalc/internal/recipe"
	"pecalc/internal/views/pages"
	"pecalc/models"
)

// Calculator renders the workspace page. A recipe query parameter holding
// a share token replaces the session recipe before rendering; a token
// that fails to decode leaves the current recipe alone and surfaces a
// notice instead.
func Calculator(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	store := workspaceStore(r)

	noticeKind, notice := "", ""
	if token := strings.TrimSpace(r.URL.Query().Get("recipe")); token != "" {
		name, inits, err := recipe.DecodeShare(token)
		if err != nil {
			applog.Warn(r.Context(), "rejected malformed share link", "error", err)
			noticeKind, notice = "error", "That share link couldn't be read, so your current recipe was kept."
		} else {
			store.Replace(name, inits)
			noticeKind, notice = "success", "Shared recipe loaded."
		}
	}

	view := currentView(r, store)
	if notice != "" {
		view = view.WithNotice(noticeKind, notice)
	}

	if isHTMX(r) {
		renderComponent(w, r, pages.Calculator(view))
		return
	}
	renderComponent(w, r, pages.CalculatorPage(view))
}

// AddCalculatorEntry appends a blank entry to the session recipe.
func AddCalculatorEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	store := workspaceStore(r)
	store.AddEntry(recipe.EntryInit{})
	renderCalculator(w, r, store)
}

// UpdateCalculatorEntry applies one field edit from the workspace.
// Rejected values re-render the workspace with a notice, which also puts
// the previous value back into the input.
func UpdateCalculatorEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse entry update form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)

	field, err := recipe.ParseField(r.FormValue("field"))
	if err != nil {
		renderCalculatorNotice(w, r, store, "error", "That field can't be edited.")
		return
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("value")), 64)
	if err != nil {
		message := fmt.Sprintf("Enter a number for %s. The previous value was kept.", strings.ToLower(field.Label()))
		renderCalculatorNotice(w, r, store, "error", message)
		return
	}

	if err := store.UpdateField(r.FormValue("id"), field, value); err != nil {
		if errors.Is(err, recipe.ErrInvalidInput) {
			message := fmt.Sprintf("%s must be a non-negative number. The previous value was kept.", field.Label())
			renderCalculatorNotice(w, r, store, "error", message)
			return
		}
		applog.Error(r.Context(), "failed to update calculator entry", "error", err)
		http.Error(w, "We couldn't save your changes. Please try again.", http.StatusInternalServerError)
		return
	}
	renderCalculator(w, r, store)
}

// RemoveCalculatorEntry drops one entry. Removing an entry that is
// already gone re-renders the workspace unchanged, so a double-click on
// the remove button is harmless.
func RemoveCalculatorEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse entry removal form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)
	store.RemoveEntry(r.FormValue("id"))
	renderCalculator(w, r, store)
}

// RenameCalculatorEntry updates one entry's label.
func RenameCalculatorEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse entry label form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)
	store.SetLabel(r.FormValue("id"), strings.TrimSpace(r.FormValue("label")))
	renderCalculator(w, r, store)
}

// RenameRecipe updates the recipe name shown in the header and the share
// link.
func RenameRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse recipe name form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)
	store.SetName(strings.TrimSpace(r.FormValue("name")))
	renderCalculator(w, r, store)
}

// ResetRecipe discards every entry and the recipe name.
func ResetRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	store := workspaceStore(r)
	store.Reset()
	renderCalculator(w, r, store)
}

// PrefillCalculatorEntry adds an entry seeded from a catalog food. The
// macro amounts come from the stored record, never from the form.
func PrefillCalculatorEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse prefill form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)

	if database == nil {
		renderCalculatorNotice(w, r, store, "error", "The food catalog isn't available right now.")
		return
	}

	foodID := pages.ParseUint(r.FormValue("food_id"))
	if foodID == 0 {
		renderCalculatorNotice(w, r, store, "error", "Pick a food from the catalog first.")
		return
	}

	var food models.FoodReference
	if err := database.WithContext(r.Context()).First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderCalculatorNotice(w, r, store, "error", "That food is no longer in the catalog.")
			return
		}
		applog.Error(r.Context(), "failed to load catalog food", "error", err, "food_id", foodID)
		renderCalculatorNotice(w, r, store, "error", "We couldn't load that food. Please try again.")
		return
	}

	store.AddEntry(recipe.EntryInit{
		Label:          food.DisplayName(),
		ProteinGrams:   food.ProteinGrams,
		FatGrams:       food.FatGrams,
		TotalCarbGrams: food.TotalCarbGrams,
		FiberGrams:     food.FiberGrams,
	})
	renderCalculator(w, r, store)
}

func renderCalculator(w http.ResponseWriter, r *http.Request, store *recipe.Store) {
	renderComponent(w, r, pages.Calculator(currentView(r, store)))
}

func renderCalculatorNotice(w http.ResponseWriter, r *http.Request, store *recipe.Store, kind, message string) {
	view := currentView(r, store).WithNotice(kind, message)
	renderComponent(w, r, pages.Calculator(view))
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render workspace fragment", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// isHTMX reports whether the request originated from an HTMX-driven
// interaction, either a direct hx-request or a boosted navigation.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}
