package service

import (
	"errors"
	"strings"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidMenuItem  = errors.New("menu item requires a name and a positive price")
	ErrInvalidCategory  = errors.New("category requires a name")
)

type MenuService interface {
	GetCategories() ([]model.Category, error)
	CreateCategory(name string, displayOrder int) (*model.Category, error)
	UpdateCategory(id uint, name string, displayOrder int) (*model.Category, error)
	DeleteCategory(id uint) error

	GetMenuItems(filter repository.MenuFilter) ([]model.MenuItem, error)
	GetMenuItem(id uint) (*model.MenuItem, error)
	GetPopularItems() ([]model.MenuItem, error)
	CreateMenuItem(item *model.MenuItem) error
	UpdateMenuItem(item *model.MenuItem) error
	SetAvailability(id uint, available bool) error
	DeleteMenuItem(id uint) error
}

type menuService struct {
	categoryRepo repository.CategoryRepository
	menuRepo     repository.MenuItemRepository
}

func NewMenuService(categoryRepo repository.CategoryRepository, menuRepo repository.MenuItemRepository) MenuService {
	return &menuService{categoryRepo: categoryRepo, menuRepo: menuRepo}
}

func (s *menuService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *menuService) CreateCategory(name string, displayOrder int) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}

	category := &model.Category{Name: name, DisplayOrder: displayOrder}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *menuService) UpdateCategory(id uint, name string, displayOrder int) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if name = strings.TrimSpace(name); name != "" {
		category.Name = name
	}
	category.DisplayOrder = displayOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

func (s *menuService) GetMenuItems(filter repository.MenuFilter) ([]model.MenuItem, error) {
	return s.menuRepo.FindAll(filter)
}

func (s *menuService) GetMenuItem(id uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

func (s *menuService) GetPopularItems() ([]model.MenuItem, error) {
	return s.menuRepo.FindAll(repository.MenuFilter{OnlyAvailable: true, OnlyPopular: true})
}

func (s *menuService) CreateMenuItem(item *model.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Price <= 0 {
		return ErrInvalidMenuItem
	}
	if _, err := s.categoryRepo.FindByID(item.CategoryID); err != nil {
		return ErrCategoryNotFound
	}

	if err := s.menuRepo.Create(item); err != nil {
		return err
	}

	logger.Info("Menu item created", map[string]interface{}{
		"menu_item_id": item.ID,
		"name":         item.Name,
		"price":        item.Price,
	})
	return nil
}

func (s *menuService) UpdateMenuItem(item *model.MenuItem) error {
	existing, err := s.menuRepo.FindByID(item.ID)
	if err != nil {
		return ErrMenuItemNotFound
	}

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Price <= 0 {
		return ErrInvalidMenuItem
	}
	if item.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.FindByID(item.CategoryID); err != nil {
			return ErrCategoryNotFound
		}
	}

	return s.menuRepo.Update(item)
}

func (s *menuService) SetAvailability(id uint, available bool) error {
	if _, err := s.menuRepo.FindByID(id); err != nil {
		return ErrMenuItemNotFound
	}
	return s.menuRepo.SetAvailability(id, available)
}

func (s *menuService) DeleteMenuItem(id uint) error {
	if _, err := s.menuRepo.FindByID(id); err != nil {
		return ErrMenuItemNotFound
	}
	return s.menuRepo.Delete(id)
}
