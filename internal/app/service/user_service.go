package service

import (
	"errors"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
)

var ErrInvalidRole = errors.New("invalid user role")

type UserService interface {
	GetAllUsers() ([]model.User, error)
	UpdateRole(userID uint, role model.UserRole) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) UpdateRole(userID uint, role model.UserRole) (*model.User, error) {
	if role != model.RoleAdmin && role != model.RoleCustomer {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.Role == role {
		return user, nil
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User role updated", map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	return user, nil
}
