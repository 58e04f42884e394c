package models

import (
	"strings"

	"gorm.io/gorm"
)

// FoodReference is one food in the shared catalog. Macro amounts are grams
// per the described serving, the same basis calculator entries use.
type FoodReference struct {
	gorm.Model
	Name               string  `gorm:"uniqueIndex;not null" json:"name"`
	Brand              string  `json:"brand"`
	ServingDescription string  `json:"serving_description"`
	ProteinGrams       float64 `json:"protein_grams"`
	FatGrams           float64 `json:"fat_grams"`
	TotalCarbGrams     float64 `json:"total_carb_grams"`
	FiberGrams         float64 `json:"fiber_grams"`
	Tags               string  `gorm:"type:text" json:"tags"`
	Source             string  `json:"source"`
	Verified           bool    `gorm:"not null;default:false" json:"verified"`
}

// DisplayName renders the catalog row the way pickers show it, brand first
// when one is known.
func (f FoodReference) DisplayName() string {
	name := strings.TrimSpace(f.Name)
	brand := strings.TrimSpace(f.Brand)
	if brand == "" {
		return name
	}
	if name == "" {
		return brand
	}
	return brand + " " + name
}
