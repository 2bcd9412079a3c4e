package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"caltrack/models"
	"caltrack/utils"

	"gorm.io/gorm"
)

// MaxPageSize is the hard cap on meal-list pagination.
const MaxPageSize = 100

const (
	maxNotesLen    = 500
	defaultPage    = 1
	defaultPerPage = 20

	// counterRetries bounds the retry loop around the meal+counter
	// transaction when the storage layer reports contention.
	counterRetries = 3
	retryBaseDelay = 10 * time.Millisecond
)

// MealService owns the meal ledger and the user's lifetime-calorie counter.
// Every mutation writes the meal rows and adjusts the counter in one
// transaction; the counter is only ever touched through SQL-side increments.
type MealService struct {
	db    *gorm.DB
	hub   *RealtimeHub
	cache *TTLCache
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// WithHub attaches a realtime hub; committed mutations push a progress
// snapshot to the owner's connected clients.
func (s *MealService) WithHub(h *RealtimeHub) *MealService {
	s.hub = h
	return s
}

// WithCache attaches the aggregate cache so mutations can invalidate the
// owner's cached windows.
func (s *MealService) WithCache(c *TTLCache) *MealService {
	s.cache = c
	return s
}

type FoodInput struct {
	Name        string  `json:"name"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Sodium      float64 `json:"sodium"`
	Sugar       float64 `json:"sugar"`
	ServingSize string  `json:"serving_size"`
	Confidence  float64 `json:"confidence"`
}

type LogMealInput struct {
	Type     string      `json:"type"`
	AteAt    time.Time   `json:"ate_at"`
	Notes    string      `json:"notes"`
	PhotoURL string      `json:"photo_url"`
	Foods    []FoodInput `json:"foods"`
}

// MealPatch carries partial updates; nil fields are left untouched.
type MealPatch struct {
	Type  *string      `json:"type"`
	AteAt *time.Time   `json:"ate_at"`
	Notes *string      `json:"notes"`
	Foods *[]FoodInput `json:"foods"`
}

type ListMealsFilter struct {
	From     *time.Time
	To       *time.Time
	Type     string
	Page     int
	PageSize int
}

func validateFoods(foods []FoodInput) error {
	if len(foods) == 0 {
		return validationf("meal must contain at least one food")
	}
	for i, f := range foods {
		if strings.TrimSpace(f.Name) == "" {
			return validationf("food %d is missing a name", i+1)
		}
		if f.Calories < 0 {
			return validationf("food %q has negative calories", f.Name)
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			return validationf("food %q confidence must be within [0,1]", f.Name)
		}
	}
	return nil
}

func sumCalories(foods []FoodInput) int {
	total := 0
	for _, f := range foods {
		total += f.Calories
	}
	return total
}

func buildFoodRows(mealID uint, foods []FoodInput) []models.MealFood {
	rows := make([]models.MealFood, 0, len(foods))
	for i, f := range foods {
		rows = append(rows, models.MealFood{
			MealID:      mealID,
			Position:    i,
			Name:        strings.TrimSpace(f.Name),
			Calories:    f.Calories,
			Protein:     f.Protein,
			Carbs:       f.Carbs,
			Fat:         f.Fat,
			Sodium:      f.Sodium,
			Sugar:       f.Sugar,
			ServingSize: f.ServingSize,
			Confidence:  f.Confidence,
		})
	}
	return rows
}

// LogMeal validates and persists a meal, computing the calorie total
// server-side, and increments the owner's lifetime counter in the same
// transaction.
func (s *MealService) LogMeal(ctx context.Context, userID uint, in LogMealInput) (*models.Meal, error) {
	if err := validateFoods(in.Foods); err != nil {
		return nil, err
	}
	mealType := in.Type
	if mealType == "" {
		mealType = models.MealOther
	}
	if !models.ValidMealType(mealType) {
		return nil, validationf("unknown meal type %q", in.Type)
	}
	if utf8.RuneCountInString(in.Notes) > maxNotesLen {
		return nil, validationf("notes must be at most %d characters", maxNotesLen)
	}
	ateAt := in.AteAt
	if ateAt.IsZero() {
		ateAt = time.Now()
	}

	total := sumCalories(in.Foods)
	meal := &models.Meal{
		UserID:           userID,
		Type:             mealType,
		AteAt:            ateAt,
		TotalCalories:    total,
		RecommendedSteps: utils.RecommendedSteps(total),
		Notes:            in.Notes,
		PhotoURL:         in.PhotoURL,
	}

	err := s.runCounterTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		rows := buildFoodRows(meal.ID, in.Foods)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return adjustLifetime(tx, userID, int64(total))
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(userID)
	return s.GetMeal(ctx, userID, meal.ID)
}

// UpdateMeal applies a partial update. When foods change, the calorie delta
// (new minus old) is applied to the lifetime counter in the same transaction
// as the row rewrite.
func (s *MealService) UpdateMeal(ctx context.Context, userID, mealID uint, patch MealPatch) (*models.Meal, error) {
	if patch.Foods != nil {
		if err := validateFoods(*patch.Foods); err != nil {
			return nil, err
		}
	}
	if patch.Type != nil && !models.ValidMealType(*patch.Type) {
		return nil, validationf("unknown meal type %q", *patch.Type)
	}
	if patch.Notes != nil && utf8.RuneCountInString(*patch.Notes) > maxNotesLen {
		return nil, validationf("notes must be at most %d characters", maxNotesLen)
	}

	err := s.runCounterTx(ctx, func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if patch.Type != nil {
			meal.Type = *patch.Type
		}
		if patch.AteAt != nil {
			meal.AteAt = *patch.AteAt
		}
		if patch.Notes != nil {
			meal.Notes = *patch.Notes
		}

		var delta int64
		if patch.Foods != nil {
			newTotal := sumCalories(*patch.Foods)
			delta = int64(newTotal - meal.TotalCalories)
			meal.TotalCalories = newTotal
			meal.RecommendedSteps = utils.RecommendedSteps(newTotal)

			if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
				return err
			}
			rows := buildFoodRows(meal.ID, *patch.Foods)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		if delta != 0 {
			return adjustLifetime(tx, userID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(userID)
	return s.GetMeal(ctx, userID, mealID)
}

// DeleteMeal removes the meal and decrements the counter by its total.
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	err := s.runCounterTx(ctx, func(tx *gorm.DB) error {
		var meal models.Meal
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&meal).Error; err != nil {
			return err
		}
		return adjustLifetime(tx, userID, -int64(meal.TotalCalories))
	})
	if err != nil {
		return err
	}

	s.afterMutation(userID)
	return nil
}

func (s *MealService) GetMeal(ctx context.Context, userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// ListMeals returns one page ordered by ate_at descending, plus the total
// match count.
func (s *MealService) ListMeals(ctx context.Context, userID uint, f ListMealsFilter) ([]models.Meal, int64, error) {
	if f.Page < 0 || f.PageSize < 0 {
		return nil, 0, validationf("page and page_size must be positive")
	}
	if f.Page == 0 {
		f.Page = defaultPage
	}
	if f.PageSize == 0 {
		f.PageSize = defaultPerPage
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Type != "" && !models.ValidMealType(f.Type) {
		return nil, 0, validationf("unknown meal type %q", f.Type)
	}

	q := s.db.WithContext(ctx).Model(&models.Meal{}).Where("user_id = ?", userID)
	if f.From != nil {
		q = q.Where("ate_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("ate_at < ?", *f.To)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meals []models.Meal
	err := q.
		Preload("Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("ate_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&meals).Error
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// adjustLifetime moves the cached counter without a read-modify-write cycle;
// the increment happens inside the database so concurrent transactions
// serialize on the user row.
func adjustLifetime(tx *gorm.DB, userID uint, delta int64) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("lifetime_calories", gorm.Expr("lifetime_calories + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// runCounterTx wraps fn in a transaction and retries a bounded number of
// times when the database reports contention.
func (s *MealService) runCounterTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < counterRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay << (attempt - 1)):
			}
		}
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isTransient(err) {
			return err
		}
	}
	return errors.Join(ErrConflict, err)
}

// isTransient reports whether the storage error looks like lock or
// serialization contention worth retrying.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"deadlock", "could not serialize", "database is locked", "busy"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

func (s *MealService) afterMutation(userID uint) {
	if s.cache != nil {
		s.cache.InvalidateUser(userID)
	}
	if s.hub != nil && s.hub.HasClients(userID) {
		var user models.User
		if err := s.db.First(&user, userID).Error; err == nil {
			s.hub.Broadcast(userID, "progress", progressFromUser(&user))
		}
	}
}
