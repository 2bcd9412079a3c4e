package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
	MealOther     = "other"
)

var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack, MealOther}

func ValidMealType(t string) bool {
	for _, mt := range MealTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// One logged meal. TotalCalories and RecommendedSteps are always computed
// server-side from Foods, never taken from the request.
type Meal struct {
	gorm.Model
	UserID uint      `gorm:"index;not null" json:"user_id"`
	Type   string    `gorm:"size:16;not null" json:"type"`
	AteAt  time.Time `gorm:"index;not null" json:"ate_at"`

	Foods []MealFood `gorm:"constraint:OnDelete:CASCADE" json:"foods"`

	TotalCalories    int    `json:"total_calories"`
	RecommendedSteps int    `json:"recommended_steps"`
	Notes            string `gorm:"size:500" json:"notes,omitempty"`
	PhotoURL         string `json:"photo_url,omitempty"`
}

// One food line within a meal. Position preserves the order the client sent.
type MealFood struct {
	gorm.Model
	MealID   uint `gorm:"index;not null" json:"-"`
	Position int  `json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Calories int    `json:"calories"`

	Protein float64 `json:"protein,omitempty"`
	Carbs   float64 `json:"carbs,omitempty"`
	Fat     float64 `json:"fat,omitempty"`
	Sodium  float64 `json:"sodium,omitempty"`
	Sugar   float64 `json:"sugar,omitempty"`

	ServingSize string  `json:"serving_size,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}
