// Command import_foods loads a CSV of reference foods into the catalog
// database, updating rows that already exist by name.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"pecalc/internal/config"
	"pecalc/internal/db"
	"pecalc/models"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

func main() {
	csvPath := "foods.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	imported, err := importFoods(database, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d foods from %s\n", imported, filepath.Base(csvPath))
	return nil
}

func importFoods(database *gorm.DB, records []map[string]string) (int, error) {
	imported := 0
	for idx, record := range records {
		if err := database.Transaction(func(tx *gorm.DB) error {
			food := buildFoodReference(record)
			if food.Name == "" {
				return errors.New("missing food name")
			}

			var existing models.FoodReference
			err := tx.Where("name = ?", food.Name).First(&existing).Error
			switch {
			case err == nil:
				updates := map[string]any{
					"brand":               food.Brand,
					"serving_description": food.ServingDescription,
					"protein_grams":       food.ProteinGrams,
					"fat_grams":           food.FatGrams,
					"total_carb_grams":    food.TotalCarbGrams,
					"fiber_grams":         food.FiberGrams,
					"tags":                food.Tags,
					"source":              food.Source,
					"verified":            food.Verified,
				}
				if err := tx.Model(&existing).Updates(updates).Error; err != nil {
					return fmt.Errorf("update food %q: %w", food.Name, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&food).Error; err != nil {
					return fmt.Errorf("create food %q: %w", food.Name, err)
				}
			default:
				return fmt.Errorf("find food %q: %w", food.Name, err)
			}
			return nil
		}); err != nil {
			return imported, fmt.Errorf("record %d (%s): %w", idx+1, record["Name"], err)
		}
		imported++
	}
	return imported, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildFoodReference(row map[string]string) models.FoodReference {
	return models.FoodReference{
		Name:               normalizeText(row["Name"]),
		Brand:              normalizeValue(row["Brand"]),
		ServingDescription: normalizeValue(row["Serving"]),
		ProteinGrams:       parseFirstNumber(row["Protein (g)"]),
		FatGrams:           parseFirstNumber(row["Fat (g)"]),
		TotalCarbGrams:     parseFirstNumber(row["Carbs (g)"]),
		FiberGrams:         parseFirstNumber(row["Fiber (g)"]),
		Tags:               normalizeTags(row["Tags"]),
		Source:             normalizeValue(row["Source"]),
		Verified:           parseVerified(row["Verified"]),
	}
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

// parseFirstNumber pulls the leading amount out of values like "31",
// "31 g" or "approx. 31.5g". Unparseable cells import as zero.
func parseFirstNumber(value string) float64 {
	value = normalizeValue(value)
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// normalizeTags lowercases and deduplicates a comma or semicolon
// separated tag list into the stored comma-joined form.
func normalizeTags(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return ""
	}

	parts := strings.Split(strings.ReplaceAll(value, ";", ","), ",")
	seen := map[string]struct{}{}
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return strings.Join(tags, ",")
}

func parseVerified(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1", "verified":
		return true
	default:
		return false
	}
}
