package pages

import (
	"net/http"
	"strconv"
	"strings"

	"pecalc/internal/views/components"
	"pecalc/models"
)

// CatalogFilters capture the client-driven state for food catalog lookups.
type CatalogFilters struct {
	Query string
}

// CatalogFiltersFromRequest extracts filter inputs from an HTTP request.
func CatalogFiltersFromRequest(r *http.Request) CatalogFilters {
	filters := CatalogFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Query = strings.TrimSpace(r.FormValue("q"))
	return filters
}

// CatalogRows converts food references into display-ready table rows.
func CatalogRows(foods []models.FoodReference) []components.CatalogRow {
	rows := make([]components.CatalogRow, 0, len(foods))
	for _, food := range foods {
		rows = append(rows, components.CatalogRow{
			ID:      strconv.FormatUint(uint64(food.ID), 10),
			Name:    food.DisplayName(),
			Serving: DefaultDash(food.ServingDescription),
			Protein: FormatGrams(food.ProteinGrams),
			Fat:     FormatGrams(food.FatGrams),
			Carbs:   FormatGrams(food.TotalCarbGrams),
			Fiber:   FormatGrams(food.FiberGrams),
		})
	}
	return rows
}

// ParseUint extracts a uint from the provided string, returning zero on failure.
func ParseUint(value string) uint {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}
