package repository

import (
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/pkg/logger"
	"gorm.io/gorm"
)

// MenuFilter narrows menu item listings. Zero values mean "no filter".
type MenuFilter struct {
	CategoryID    uint
	OnlyAvailable bool
	OnlyPopular   bool
	Search        string
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	FindAll() ([]model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("display_order ASC, name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find all categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category in database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}

type MenuItemRepository interface {
	Create(item *model.MenuItem) error
	FindByID(id uint) (*model.MenuItem, error)
	FindByIDs(ids []uint) ([]model.MenuItem, error)
	FindAll(filter MenuFilter) ([]model.MenuItem, error)
	Update(item *model.MenuItem) error
	SetAvailability(id uint, available bool) error
	Delete(id uint) error
	Count() (int64, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(item *model.MenuItem) error {
	logger.Debug("Creating menu item in database", map[string]interface{}{
		"name":        item.Name,
		"category_id": item.CategoryID,
		"price":       item.Price,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item in database", err, map[string]interface{}{
			"name": item.Name,
		})
		return err
	}
	return nil
}

func (r *menuItemRepository) FindByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		logger.Error("Failed to find menu item by ID in database", err, map[string]interface{}{
			"menu_item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) FindByIDs(ids []uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		logger.Error("Failed to find menu items by IDs in database", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) FindAll(filter MenuFilter) ([]model.MenuItem, error) {
	logger.Debug("Finding menu items in database", map[string]interface{}{
		"category_id":    filter.CategoryID,
		"only_available": filter.OnlyAvailable,
		"only_popular":   filter.OnlyPopular,
		"search":         filter.Search,
	})

	query := r.db.Preload("Category")
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.OnlyPopular {
		query = query.Where("is_popular = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var items []model.MenuItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to find menu items in database", err, nil)
		return nil, err
	}

	logger.Debug("Menu items found in database", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}

func (r *menuItemRepository) Update(item *model.MenuItem) error {
	logger.Debug("Updating menu item in database", map[string]interface{}{
		"menu_item_id": item.ID,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update menu item in database", err, map[string]interface{}{
			"menu_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *menuItemRepository) SetAvailability(id uint, available bool) error {
	if err := r.db.Model(&model.MenuItem{}).Where("id = ?", id).
		Update("is_available", available).Error; err != nil {
		logger.Error("Failed to update menu item availability in database", err, map[string]interface{}{
			"menu_item_id": id,
			"available":    available,
		})
		return err
	}
	return nil
}

func (r *menuItemRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.MenuItem{}, id).Error; err != nil {
		logger.Error("Failed to delete menu item in database", err, map[string]interface{}{
			"menu_item_id": id,
		})
		return err
	}
	return nil
}

func (r *menuItemRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.MenuItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
