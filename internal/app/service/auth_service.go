package service

import (
	"errors"
	"time"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(email, password, fullName, phone string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, fullName, phone string) (*model.User, error)
	EnsureWelcomeNotifications(userID uint)
}

type authService struct {
	userRepo            repository.UserRepository
	notificationRepo    repository.NotificationRepository
	notificationService NotificationService
	jwtSecret           string
	accessExpiry        time.Duration
	refreshExpiry       time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	notificationService NotificationService,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:            userRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
		jwtSecret:           jwtSecret,
		accessExpiry:        accessExpiry,
		refreshExpiry:       refreshExpiry,
	}
}

func (s *authService) Register(email, password, fullName, phone string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email":     email,
		"full_name": fullName,
	})

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		PhoneNumber:  util.SanitizePhone(phone),
		Role:         model.RoleCustomer,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	// Generate tokens
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	// Onboarding notifications, best-effort
	s.EnsureWelcomeNotifications(user.ID)

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	// Users that predate the onboarding rows get them on first login.
	s.EnsureWelcomeNotifications(user.ID)

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

// EnsureWelcomeNotifications creates the onboarding notifications once per
// user. The guard is "has any notifications at all": the welcome batch is
// always the first insert for a user. Failures are logged and swallowed.
func (s *authService) EnsureWelcomeNotifications(userID uint) {
	count, err := s.notificationRepo.CountByUserID(userID)
	if err != nil {
		logger.Error("Failed to check existing notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}
	if count > 0 {
		return
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.Error("Failed to load user for welcome notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	if err := s.notificationService.CreateWelcomeNotifications(user.ID, user.Role); err != nil {
		logger.Error("Failed to create welcome notifications", err, map[string]interface{}{
			"user_id": userID,
		})
	}
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, fullName, phone string) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for profile update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	updated := false
	if fullName != "" && fullName != user.FullName {
		user.FullName = fullName
		updated = true
	}
	if phone != "" {
		sanitized := util.SanitizePhone(phone)
		if sanitized != user.PhoneNumber {
			user.PhoneNumber = sanitized
			updated = true
		}
	}

	if !updated {
		logger.Debug("No changes detected for user profile", map[string]interface{}{
			"user_id": userID,
		})
		return user, nil
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}
