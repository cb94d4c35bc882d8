package service

import (
	"testing"
	"time"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/ibumus/warung-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)
	notificationService := NewNotificationService(notificationRepo)
	authService := NewAuthService(
		userRepo,
		notificationRepo,
		notificationService,
		testJWTSecret,
		15*time.Minute,
		7*24*time.Hour,
	)

	return authService, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("budi@example.com", "rahasia123", "Budi Santoso", "0812-3456-7890")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, "081234567890", user.PhoneNumber)
	assert.NotEqual(t, "rahasia123", user.PasswordHash)

	require.NotNil(t, tokens)
	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	// Registration seeds the customer welcome notifications
	var count int64
	testDB.Model(&model.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("budi@example.com", "rahasia123", "Budi", "081234567890")
	require.NoError(t, err)

	_, _, err = authService.Register("budi@example.com", "lainlain123", "Budi Kedua", "081234567891")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	registered, _, err := authService.Register("budi@example.com", "rahasia123", "Budi", "081234567890")
	require.NoError(t, err)

	user, tokens, err := authService.Login("budi@example.com", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = authService.Login("budi@example.com", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("tidakada@example.com", "rahasia123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureWelcomeNotifications_Idempotent(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, _, err := authService.Register("budi@example.com", "rahasia123", "Budi", "081234567890")
	require.NoError(t, err)

	// Registration already seeded the batch; logging in again must not
	// duplicate it.
	_, _, err = authService.Login("budi@example.com", "rahasia123")
	require.NoError(t, err)
	authService.EnsureWelcomeNotifications(user.ID)

	var count int64
	testDB.Model(&model.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestAuthService_EnsureWelcomeNotifications_AdminOnFirstLogin(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	// A seeded admin has no notifications until the first login.
	hash, err := util.HashPassword("admin-rahasia")
	require.NoError(t, err)
	admin := &model.User{
		Email:        "admin@warungibumus.id",
		PasswordHash: hash,
		FullName:     "Admin",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	_, _, err = authService.Login("admin@warungibumus.id", "admin-rahasia")
	require.NoError(t, err)

	var notifications []model.Notification
	testDB.Where("user_id = ?", admin.ID).Find(&notifications)
	assert.Len(t, notifications, 2)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register("budi@example.com", "rahasia123", "Budi", "081234567890")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Budi Santoso", "0898 7654 3210")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", updated.FullName)
	assert.Equal(t, "089876543210", updated.PhoneNumber)

	_, err = authService.UpdateProfile(9999, "Siapa", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
