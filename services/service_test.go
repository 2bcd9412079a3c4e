package services

import (
	"testing"

	"caltrack/config"
	"caltrack/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the schema and catalog
// seed applied. A single connection keeps sqlite's writer semantics out of
// the way of the concurrency tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedFoodCatalog(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		UserID:           uuid.NewString(),
		Username:         username,
		Password:         "x",
		DailyCalorieGoal: 2000,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func lifetimeOf(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.LifetimeCalories
}

// ledgerSum recomputes the counter the slow way, straight from the live meal
// rows, so tests can assert the cached value never drifts.
func ledgerSum(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var sum int64
	require.NoError(t, db.Model(&models.Meal{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_calories),0)").
		Scan(&sum).Error)
	return sum
}
