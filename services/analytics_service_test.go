package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTotalsEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createTestUser(t, db, "alice")

	totals, err := svc.DailyTotals(context.Background(), user.ID, time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.TotalCalories)
	assert.Equal(t, int64(0), totals.MealCount)
	assert.Equal(t, int64(0), totals.TotalSteps)
}

func TestDailyTotalsWindowBoundaries(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewAnalyticsService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, in := range []LogMealInput{
		{AteAt: day.Add(1 * time.Minute), Foods: []FoodInput{{Name: "breakfast plate", Calories: 300}}},
		{AteAt: day.Add(23*time.Hour + 59*time.Minute), Foods: []FoodInput{{Name: "late snack", Calories: 200}}},
		{AteAt: day.Add(24 * time.Hour), Foods: []FoodInput{{Name: "next day", Calories: 999}}},
		{AteAt: day.Add(-1 * time.Minute), Foods: []FoodInput{{Name: "day before", Calories: 999}}},
	} {
		_, err := meals.LogMeal(ctx, user.ID, in)
		require.NoError(t, err)
	}

	totals, err := svc.DailyTotals(ctx, user.ID, day.Add(12*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(500), totals.TotalCalories)
	assert.Equal(t, int64(2), totals.MealCount)
	assert.Equal(t, int64(500*20), totals.TotalSteps)
}

func TestWeeklyTotalsStartSunday(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewAnalyticsService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	// 2026-03-08 is a Sunday.
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	for _, in := range []LogMealInput{
		{AteAt: sunday.Add(8 * time.Hour), Foods: []FoodInput{{Name: "sunday", Calories: 400}}},
		{AteAt: sunday.AddDate(0, 0, 6).Add(20 * time.Hour), Foods: []FoodInput{{Name: "saturday", Calories: 600}}},
		{AteAt: sunday.Add(-2 * time.Hour), Foods: []FoodInput{{Name: "prior week", Calories: 999}}},
		{AteAt: sunday.AddDate(0, 0, 7), Foods: []FoodInput{{Name: "next week", Calories: 999}}},
	} {
		_, err := meals.LogMeal(ctx, user.ID, in)
		require.NoError(t, err)
	}

	// Querying mid-week lands on the same Sunday-anchored window.
	wednesday := sunday.AddDate(0, 0, 3)
	totals, err := svc.WeeklyTotals(ctx, user.ID, wednesday)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), totals.TotalCalories)
	assert.Equal(t, int64(2), totals.MealCount)
}

func TestUserProgress(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewAnalyticsService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	_, err := meals.LogMeal(ctx, user.ID, LogMealInput{
		Foods: []FoodInput{{Name: "apple", Calories: 95}},
	})
	require.NoError(t, err)

	p, err := svc.UserProgress(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(95), p.Current)
	assert.Equal(t, 2000, p.Goal)
	assert.Equal(t, 5, p.Percentage)
	assert.Equal(t, int64(1905), p.Remaining)
}

func TestUserProgressExceedsGoal(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewAnalyticsService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	_, err := meals.LogMeal(ctx, user.ID, LogMealInput{
		Foods: []FoodInput{{Name: "feast", Calories: 2500}},
	})
	require.NoError(t, err)

	p, err := svc.UserProgress(ctx, user.ID)
	require.NoError(t, err)

	// Percentage is not clamped at 100; remaining bottoms out at zero.
	assert.Equal(t, 125, p.Percentage)
	assert.Equal(t, int64(0), p.Remaining)
}

func TestUserProgressUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	_, err := svc.UserProgress(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAggregatesCacheInvalidatedByMutation(t *testing.T) {
	db := newTestDB(t)
	cache := NewTTLCache(time.Minute, 128)
	meals := NewMealService(db).WithCache(cache)
	svc := NewAnalyticsService(db).WithCache(cache)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := meals.LogMeal(ctx, user.ID, LogMealInput{
		AteAt: day,
		Foods: []FoodInput{{Name: "apple", Calories: 95}},
	})
	require.NoError(t, err)

	totals, err := svc.DailyTotals(ctx, user.ID, day)
	require.NoError(t, err)
	require.Equal(t, int64(95), totals.TotalCalories)

	// A second log drops the cached window, so the next read sees both meals.
	_, err = meals.LogMeal(ctx, user.ID, LogMealInput{
		AteAt: day.Add(time.Hour),
		Foods: []FoodInput{{Name: "banana", Calories: 105}},
	})
	require.NoError(t, err)

	totals, err = svc.DailyTotals(ctx, user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, int64(200), totals.TotalCalories)
	assert.Equal(t, int64(2), totals.MealCount)
}
