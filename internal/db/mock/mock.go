package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "pecalc/internal/log"
	"pecalc/models"
)

// New returns an in-memory sqlite database seeded with a representative food catalog.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:pecalc-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.FoodReference{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	foods := []models.FoodReference{
		{
			Name:               "Chicken Breast, Skinless",
			ServingDescription: "100 g",
			ProteinGrams:       31,
			FatGrams:           3.6,
			TotalCarbGrams:     0,
			FiberGrams:         0,
			Tags:               "poultry,lean",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Whole Egg, Large",
			ServingDescription: "1 egg (50 g)",
			ProteinGrams:       6.3,
			FatGrams:           4.8,
			TotalCarbGrams:     0.4,
			FiberGrams:         0,
			Tags:               "eggs,breakfast",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Ribeye Steak",
			ServingDescription: "100 g",
			ProteinGrams:       24,
			FatGrams:           22,
			TotalCarbGrams:     0,
			FiberGrams:         0,
			Tags:               "beef",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Greek Yogurt, Nonfat",
			Brand:              "Fage",
			ServingDescription: "170 g container",
			ProteinGrams:       17,
			FatGrams:           0.7,
			TotalCarbGrams:     6,
			FiberGrams:         0,
			Tags:               "dairy,breakfast",
			Source:             "label",
			Verified:           true,
		},
		{
			Name:               "Atlantic Salmon",
			ServingDescription: "100 g",
			ProteinGrams:       20,
			FatGrams:           13,
			TotalCarbGrams:     0,
			FiberGrams:         0,
			Tags:               "fish,omega3",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Almond Butter",
			ServingDescription: "2 tbsp (32 g)",
			ProteinGrams:       6.7,
			FatGrams:           18,
			TotalCarbGrams:     6,
			FiberGrams:         3.3,
			Tags:               "nuts,spread",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Broccoli, Raw",
			ServingDescription: "100 g",
			ProteinGrams:       2.8,
			FatGrams:           0.4,
			TotalCarbGrams:     6.6,
			FiberGrams:         2.6,
			Tags:               "vegetable",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
		{
			Name:               "Avocado",
			ServingDescription: "1/2 fruit (100 g)",
			ProteinGrams:       2,
			FatGrams:           15,
			TotalCarbGrams:     8.5,
			FiberGrams:         6.7,
			Tags:               "fruit,fat",
			Source:             "USDA FoodData Central",
			Verified:           true,
		},
	}

	for _, food := range foods {
		foodCopy := food
		if err := db.WithContext(ctx).Create(&foodCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
