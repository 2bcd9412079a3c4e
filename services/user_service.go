package services

import (
	"context"
	"errors"

	"caltrack/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfilePatch carries partial profile updates; nil fields are untouched.
type ProfilePatch struct {
	Email         *string  `json:"email"`
	Age           *int     `json:"age"`
	HeightCm      *float64 `json:"height_cm"`
	WeightKg      *float64 `json:"weight_kg"`
	ActivityLevel *string  `json:"activity_level"`
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Age != nil {
		if *patch.Age < 0 || *patch.Age > 130 {
			return nil, validationf("age out of range")
		}
		user.Age = *patch.Age
	}
	if patch.HeightCm != nil {
		if *patch.HeightCm < 0 {
			return nil, validationf("height must be positive")
		}
		user.HeightCm = *patch.HeightCm
	}
	if patch.WeightKg != nil {
		if *patch.WeightKg < 0 {
			return nil, validationf("weight must be positive")
		}
		user.WeightKg = *patch.WeightKg
	}
	if patch.ActivityLevel != nil {
		if !models.ValidActivityLevel(*patch.ActivityLevel) {
			return nil, validationf("unknown activity level %q", *patch.ActivityLevel)
		}
		user.ActivityLevel = *patch.ActivityLevel
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateGoal sets the daily calorie goal. The lifetime counter is never
// writable through this path.
func (s *UserService) UpdateGoal(ctx context.Context, userID uint, goal int) (*models.User, error) {
	if goal <= 0 {
		return nil, validationf("daily calorie goal must be positive")
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.DailyCalorieGoal = goal
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
