package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"caltrack/models"

	"gorm.io/gorm"
)

// AnalyticsService computes calorie aggregates straight from the ledger.
// Nothing is materialized; an optional TTL cache absorbs repeated reads of
// the same window.
type AnalyticsService struct {
	db    *gorm.DB
	cache *TTLCache
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (s *AnalyticsService) WithCache(c *TTLCache) *AnalyticsService {
	s.cache = c
	return s
}

// WindowTotals is the aggregate over one day or week.
type WindowTotals struct {
	TotalCalories int64 `json:"total_calories"`
	MealCount     int64 `json:"meal_count"`
	TotalSteps    int64 `json:"total_steps"`
}

// Progress reports the lifetime counter against the daily goal. Percentage is
// not clamped and may exceed 100.
type Progress struct {
	Current    int64 `json:"current"`
	Goal       int   `json:"goal"`
	Percentage int   `json:"percentage"`
	Remaining  int64 `json:"remaining"`
}

// DailyTotals sums all meals with ate_at in [startOfDay(date), +24h).
// An empty window yields zeros, never an error.
func (s *AnalyticsService) DailyTotals(ctx context.Context, userID uint, date time.Time) (*WindowTotals, error) {
	from := dayStart(date)
	return s.windowTotals(ctx, userID, "daily", from, from.Add(24*time.Hour))
}

// WeeklyTotals sums the 7 days beginning the Sunday of date's week.
func (s *AnalyticsService) WeeklyTotals(ctx context.Context, userID uint, date time.Time) (*WindowTotals, error) {
	from := weekStart(date)
	return s.windowTotals(ctx, userID, "weekly", from, from.AddDate(0, 0, 7))
}

func (s *AnalyticsService) windowTotals(ctx context.Context, userID uint, kind string, from, to time.Time) (*WindowTotals, error) {
	key := fmt.Sprintf("%s:%s", kind, from.Format("2006-01-02"))
	if s.cache != nil {
		if v, ok := s.cache.Get(userID, key); ok {
			t := v.(WindowTotals)
			return &t, nil
		}
	}

	var row struct {
		Calories int64
		Count    int64
		Steps    int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Select("COALESCE(SUM(total_calories),0) AS calories, COUNT(*) AS count, COALESCE(SUM(recommended_steps),0) AS steps").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	out := WindowTotals{TotalCalories: row.Calories, MealCount: row.Count, TotalSteps: row.Steps}
	if s.cache != nil {
		s.cache.Set(userID, key, out)
	}
	return &out, nil
}

// UserProgress reads the cached lifetime counter and the user's goal.
func (s *AnalyticsService) UserProgress(ctx context.Context, userID uint) (*Progress, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return progressFromUser(&user), nil
}

func progressFromUser(u *models.User) *Progress {
	p := &Progress{Current: u.LifetimeCalories, Goal: u.DailyCalorieGoal}
	if p.Goal > 0 {
		p.Percentage = int(math.Round(float64(p.Current) / float64(p.Goal) * 100))
	}
	if rem := int64(p.Goal) - p.Current; rem > 0 {
		p.Remaining = rem
	}
	return p
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart truncates to the previous Sunday. Sunday was the observed
// convention in the clients this API serves.
func weekStart(t time.Time) time.Time {
	d := dayStart(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
