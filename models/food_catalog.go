package models

import "gorm.io/gorm"

// A canned reference food. Seeded at startup, read-only afterwards;
// not owned by any user.
type FoodCatalogEntry struct {
	gorm.Model
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Category    string  `json:"category"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Sodium      float64 `json:"sodium"`
	Sugar       float64 `json:"sugar"`
	ServingSize string  `json:"serving_size"`
}
