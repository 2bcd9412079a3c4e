package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"caltrack/models"
	"caltrack/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 8

	resetTokenTTL = 15 * time.Minute
)

type AuthService struct {
	db     *gorm.DB
	mailer *utils.Mailer
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// WithMailer enables the password-reset mail flow.
func (s *AuthService) WithMailer(m *utils.Mailer) *AuthService {
	s.mailer = m
	return s
}

// Register creates an account with the default 2000 kcal goal. Usernames are
// case-insensitive: stored lowercase, compared lowercase.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return nil, validationf("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return nil, validationf("password must be at least %d characters", minPasswordLen)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationf("username %q is taken", username)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:           uuid.NewString(),
		Username:         username,
		Email:            strings.TrimSpace(email),
		Password:         hashed,
		DailyCalorieGoal: 2000,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// A concurrent registration can slip past the count check; the
		// unique index is the authority.
		if isDuplicateKey(err) {
			return nil, validationf("username %q is taken", username)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credential and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND disabled = ?", username, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, authf("invalid username or password")
		}
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, authf("invalid username or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.UserID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ForgotPassword stores a short-lived reset code and mails it when the
// account has an email on file. Unknown usernames are not distinguishable
// from known ones to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND disabled = ?", username, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}
	user.ResetToken = code
	user.ResetTokenExp = time.Now().Add(resetTokenTTL)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}

	if s.mailer != nil && user.Email != "" {
		return s.mailer.SendResetCode(ctx, user.Email, code)
	}
	return nil
}

// ResetPassword consumes a valid reset code and replaces the credential.
func (s *AuthService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return validationf("password must be at least %d characters", minPasswordLen)
	}
	username = strings.ToLower(strings.TrimSpace(username))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND disabled = ?", username, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authf("invalid reset code")
		}
		return err
	}
	if user.ResetToken == "" || user.ResetToken != code || time.Now().After(user.ResetTokenExp) {
		return authf("invalid reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.WithContext(ctx).Save(&user).Error
}
