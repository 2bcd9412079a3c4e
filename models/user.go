package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity levels accepted on the profile.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityAthlete   = "athlete"
)

var ActivityLevels = []string{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityAthlete,
}

func ValidActivityLevel(level string) bool {
	for _, l := range ActivityLevels {
		if l == level {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	UserID   string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"index" json:"email,omitempty"`
	Password string `gorm:"not null" json:"-"`

	DailyCalorieGoal int   `gorm:"default:2000" json:"daily_calorie_goal"`
	LifetimeCalories int64 `gorm:"default:0" json:"lifetime_calories"`

	// Optional profile fields.
	Age           int     `json:"age,omitempty"`
	HeightCm      float64 `json:"height_cm,omitempty"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
	ActivityLevel string  `gorm:"size:16" json:"activity_level,omitempty"`

	Disabled      bool      `gorm:"default:false" json:"-"`
	ResetToken    string    `json:"-"`
	ResetTokenExp time.Time `json:"-"`
}
