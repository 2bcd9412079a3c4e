package services

import (
	"context"
	"testing"
	"time"

	"caltrack/models"
	"caltrack/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "Secret123!", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username, "usernames are stored lowercase")
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, 2000, user.DailyCalorieGoal)
	assert.NotEqual(t, "Secret123!", user.Password, "password must be hashed")

	token, logged, err := svc.Login(ctx, "ALICE", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	parsedID, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsedID)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ab", "Secret123!", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "alice", "short", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "alice", "Secret123!", "")
	require.NoError(t, err)

	// Case-insensitive uniqueness.
	_, err = svc.Register(ctx, "Alice", "Secret123!", "")
	assert.ErrorIs(t, err, ErrValidation)
}

// A registration that loses a race past the pre-check hits the unique index
// instead; the violation must come back as a validation failure, not an
// internal error. A soft-deleted row reproduces that path deterministically:
// the pre-check's default scope skips it, the index does not.
func TestRegisterDuplicateIndexViolationIsValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "Secret123!", "")
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.User{}, first.ID).Error)

	_, err = svc.Register(ctx, "alice", "Secret123!", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123!", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthentication)

	_, _, err = svc.Login(ctx, "nobody", "Secret123!")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestResetPasswordFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123!", "")
	require.NoError(t, err)

	// Unknown usernames are swallowed so the endpoint does not leak accounts.
	require.NoError(t, svc.ForgotPassword(ctx, "nobody"))

	require.NoError(t, svc.ForgotPassword(ctx, "alice"))
	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	require.NotEmpty(t, user.ResetToken)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "alice", "000000x", "NewSecret123!"), ErrAuthentication)
	require.NoError(t, svc.ResetPassword(ctx, "alice", user.ResetToken, "NewSecret123!"))

	// Code is single-use.
	assert.ErrorIs(t, svc.ResetPassword(ctx, "alice", user.ResetToken, "Another123!"), ErrAuthentication)

	_, _, err = svc.Login(ctx, "alice", "NewSecret123!")
	require.NoError(t, err)
}

func TestResetPasswordExpiredCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123!", "")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "alice"))

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	user.ResetTokenExp = time.Now().Add(-time.Minute)
	require.NoError(t, db.Save(&user).Error)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "alice", user.ResetToken, "NewSecret123!"), ErrAuthentication)
}
