package config

import (
	"caltrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The canned reference table used for catalog search and as ground truth for
// the keyword classifier. Calories are per listed serving.
var catalogSeed = []models.FoodCatalogEntry{
	{Name: "apple", Category: "fruit", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Sugar: 19, ServingSize: "1 medium"},
	{Name: "banana", Category: "fruit", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Sugar: 14, ServingSize: "1 medium"},
	{Name: "orange", Category: "fruit", Calories: 62, Protein: 1.2, Carbs: 15, Fat: 0.2, Sugar: 12, ServingSize: "1 medium"},
	{Name: "grilled chicken breast", Category: "protein", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Sodium: 74, ServingSize: "100 g"},
	{Name: "salmon fillet", Category: "protein", Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Sodium: 59, ServingSize: "100 g"},
	{Name: "fried egg", Category: "protein", Calories: 90, Protein: 6.3, Carbs: 0.4, Fat: 7, Sodium: 95, ServingSize: "1 large"},
	{Name: "white rice", Category: "grain", Calories: 205, Protein: 4.3, Carbs: 45, Fat: 0.4, ServingSize: "1 cup cooked"},
	{Name: "brown rice", Category: "grain", Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8, ServingSize: "1 cup cooked"},
	{Name: "whole wheat bread", Category: "grain", Calories: 81, Protein: 4, Carbs: 14, Fat: 1.1, Sodium: 146, ServingSize: "1 slice"},
	{Name: "spaghetti with tomato sauce", Category: "grain", Calories: 221, Protein: 8.1, Carbs: 43, Fat: 1.3, Sodium: 325, ServingSize: "1 cup"},
	{Name: "cheese pizza", Category: "fast food", Calories: 285, Protein: 12, Carbs: 36, Fat: 10, Sodium: 640, ServingSize: "1 slice"},
	{Name: "hamburger", Category: "fast food", Calories: 354, Protein: 20, Carbs: 30, Fat: 17, Sodium: 497, ServingSize: "1 burger"},
	{Name: "french fries", Category: "fast food", Calories: 365, Protein: 4, Carbs: 48, Fat: 17, Sodium: 246, ServingSize: "medium"},
	{Name: "hot dog", Category: "fast food", Calories: 290, Protein: 10, Carbs: 22, Fat: 18, Sodium: 810, ServingSize: "1 with bun"},
	{Name: "caesar salad", Category: "vegetable", Calories: 180, Protein: 5, Carbs: 10, Fat: 14, Sodium: 380, ServingSize: "1 bowl"},
	{Name: "steamed broccoli", Category: "vegetable", Calories: 55, Protein: 3.7, Carbs: 11, Fat: 0.6, Sodium: 64, ServingSize: "1 cup"},
	{Name: "baked potato", Category: "vegetable", Calories: 161, Protein: 4.3, Carbs: 37, Fat: 0.2, Sodium: 17, ServingSize: "1 medium"},
	{Name: "greek yogurt", Category: "dairy", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7, Sugar: 6, ServingSize: "170 g"},
	{Name: "whole milk", Category: "dairy", Calories: 149, Protein: 7.7, Carbs: 12, Fat: 8, Sugar: 12, ServingSize: "1 cup"},
	{Name: "cheddar cheese", Category: "dairy", Calories: 113, Protein: 6.4, Carbs: 0.9, Fat: 9.3, Sodium: 180, ServingSize: "28 g"},
	{Name: "chocolate chip cookie", Category: "dessert", Calories: 78, Protein: 0.9, Carbs: 9.3, Fat: 4.5, Sugar: 5.9, ServingSize: "1 cookie"},
	{Name: "vanilla ice cream", Category: "dessert", Calories: 137, Protein: 2.3, Carbs: 16, Fat: 7.3, Sugar: 14, ServingSize: "half cup"},
	{Name: "dark chocolate", Category: "dessert", Calories: 170, Protein: 2.2, Carbs: 13, Fat: 12, Sugar: 7, ServingSize: "28 g"},
	{Name: "almonds", Category: "snack", Calories: 164, Protein: 6, Carbs: 6.1, Fat: 14, ServingSize: "28 g"},
	{Name: "peanut butter sandwich", Category: "snack", Calories: 342, Protein: 12, Carbs: 38, Fat: 17, Sodium: 441, ServingSize: "1 sandwich"},
	{Name: "oatmeal", Category: "grain", Calories: 158, Protein: 6, Carbs: 27, Fat: 3.2, ServingSize: "1 cup cooked"},
	{Name: "chicken noodle soup", Category: "soup", Calories: 75, Protein: 4, Carbs: 9, Fat: 2.5, Sodium: 866, ServingSize: "1 cup"},
	{Name: "sushi roll", Category: "protein", Calories: 255, Protein: 9, Carbs: 38, Fat: 7, Sodium: 428, ServingSize: "8 pieces"},
	{Name: "burrito", Category: "fast food", Calories: 447, Protein: 21, Carbs: 48, Fat: 18, Sodium: 957, ServingSize: "1 burrito"},
	{Name: "pancakes with syrup", Category: "breakfast", Calories: 350, Protein: 8, Carbs: 60, Fat: 9, Sugar: 30, ServingSize: "3 pancakes"},
}

// SeedFoodCatalog upserts the canned table; existing rows keep their ids so
// reseeding on every boot is harmless.
func SeedFoodCatalog(db *gorm.DB) error {
	for i := range catalogSeed {
		entry := catalogSeed[i]
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}
