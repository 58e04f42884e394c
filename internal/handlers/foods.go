package handlers

import (
	"net/http"
	"strings"

	applog "pecalc/internal/log"
	"pecalc/internal/views/components"
	"pecalc/internal/views/pages"
	"pecalc/models"
)

const foodSearchLimit = 20

// SearchFoods renders catalog rows matching the sidebar search query. An
// empty query lists the first page of the catalog so the panel is never
// blank.
func SearchFoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		renderComponent(w, r, components.Notice("error", "The food catalog isn't available right now."))
		return
	}

	filters := pages.CatalogFiltersFromRequest(r)

	query := database.WithContext(r.Context()).Model(&models.FoodReference{})
	if filters.Query != "" {
		needle := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(brand) LIKE ? OR lower(tags) LIKE ?",
			needle, needle, needle,
		)
	}

	var foods []models.FoodReference
	if err := query.Order("name asc").Limit(foodSearchLimit).Find(&foods).Error; err != nil {
		applog.Error(r.Context(), "failed to search food catalog", "error", err, "query", filters.Query)
		renderComponent(w, r, components.Notice("error", "Catalog search failed. Please try again."))
		return
	}

	renderComponent(w, r, components.CatalogTable(pages.CatalogRows(foods)))
}
