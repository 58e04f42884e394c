package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pecalc/models"
)

func TestSearchFoodsFiltersByQuery(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	foods := []models.FoodReference{
		{Name: "Chicken Breast", Tags: "poultry,lean", ProteinGrams: 31},
		{Name: "Almond Butter", Brand: "Justin's", ProteinGrams: 6.7},
	}
	for i := range foods {
		if err := db.Create(&foods[i]).Error; err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/foods/search?q=chicken", nil)
	w := httptest.NewRecorder()

	SearchFoods(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Chicken Breast") {
		t.Fatal("expected the matching food in the results")
	}
	if strings.Contains(body, "Almond Butter") {
		t.Fatal("expected non-matching foods to be filtered out")
	}
	if !strings.Contains(body, "hx-post=\"/calc/prefill\"") {
		t.Fatal("expected prefill buttons in the results")
	}
}

func TestSearchFoodsMatchesBrandAndTags(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	foods := []models.FoodReference{
		{Name: "Greek Yogurt", Brand: "Fage", ProteinGrams: 17},
		{Name: "Ribeye Steak", Tags: "beef,dinner", ProteinGrams: 24},
	}
	for i := range foods {
		if err := db.Create(&foods[i]).Error; err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/foods/search?q=FAGE", nil)
	w := httptest.NewRecorder()
	SearchFoods(w, req)
	if !strings.Contains(w.Body.String(), "Greek Yogurt") {
		t.Fatal("expected a brand match to be case-insensitive")
	}

	req = httptest.NewRequest(http.MethodGet, "/foods/search?q=beef", nil)
	w = httptest.NewRecorder()
	SearchFoods(w, req)
	if !strings.Contains(w.Body.String(), "Ribeye Steak") {
		t.Fatal("expected a tag match")
	}
}

func TestSearchFoodsEmptyQueryListsCatalog(t *testing.T) {
	db, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	if err := db.Create(&models.FoodReference{Name: "Avocado"}).Error; err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/foods/search", nil)
	w := httptest.NewRecorder()

	SearchFoods(w, req)

	if !strings.Contains(w.Body.String(), "Avocado") {
		t.Fatal("expected the catalog listing for an empty query")
	}
}

func TestSearchFoodsNoMatches(t *testing.T) {
	_, cleanupDB := withTestDatabase(t)
	t.Cleanup(cleanupDB)

	req := httptest.NewRequest(http.MethodGet, "/foods/search?q=zzzz", nil)
	w := httptest.NewRecorder()

	SearchFoods(w, req)

	if !strings.Contains(w.Body.String(), "No foods matched your search.") {
		t.Fatal("expected the empty results message")
	}
}

func TestSearchFoodsWithoutDatabase(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foods/search?q=chicken", nil)
	w := httptest.NewRecorder()

	SearchFoods(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with a notice, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "notice-error") {
		t.Fatal("expected a catalog unavailable notice")
	}
}

func TestSearchFoodsMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/foods/search", nil)
	w := httptest.NewRecorder()

	SearchFoods(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}
