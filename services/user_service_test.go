package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	age := 31
	level := "moderate"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{Age: &age, ActivityLevel: &level})
	require.NoError(t, err)

	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "moderate", updated.ActivityLevel)
	assert.Equal(t, "alice", updated.Username, "untouched fields survive")
}

func TestUpdateProfileValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	bad := "couch potato"
	_, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{ActivityLevel: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	negative := -2.0
	_, err = svc.UpdateProfile(ctx, user.ID, ProfilePatch{WeightKg: &negative})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateGoal(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "alice")
	ctx := context.Background()

	updated, err := svc.UpdateGoal(ctx, user.ID, 1800)
	require.NoError(t, err)
	assert.Equal(t, 1800, updated.DailyCalorieGoal)

	_, err = svc.UpdateGoal(ctx, user.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateGoal(ctx, 9999, 1800)
	assert.ErrorIs(t, err, ErrNotFound)
}
