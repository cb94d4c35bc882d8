package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type MenuController struct {
	menuService service.MenuService
}

func NewMenuController(menuService service.MenuService) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

type MenuItemRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
	IsPopular   bool    `json:"is_popular"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// GetCategories lists categories in display order
// GET /api/v1/categories
func (ctrl *MenuController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.menuService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Gagal memuat kategori")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory adds a category
// POST /api/v1/admin/categories
func (ctrl *MenuController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Nama kategori wajib diisi")
		return
	}

	category, err := ctrl.menuService.CreateCategory(req.Name, req.DisplayOrder)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			apperrors.BadRequest(c, "Nama kategori wajib diisi")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.RespondWithParsedError(c, err, "category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory renames or reorders a category
// PUT /api/v1/admin/categories/:id
func (ctrl *MenuController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID kategori tidak valid")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Nama kategori wajib diisi")
		return
	}

	category, err := ctrl.menuService.UpdateCategory(id, req.Name, req.DisplayOrder)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
			return
		}
		log.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes a category
// DELETE /api/v1/admin/categories/:id
func (ctrl *MenuController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID kategori tidak valid")
		return
	}

	if err := ctrl.menuService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Kategori dihapus",
	})
}

// GetMenuItems lists menu items; public listing only shows available ones
// GET /api/v1/menu?category_id=&search=&popular=
func (ctrl *MenuController) GetMenuItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.MenuFilter{
		Search:      c.Query("search"),
		OnlyPopular: c.Query("popular") == "true",
		// Admin sessions see unavailable items too
		OnlyAvailable: !middleware.IsAdmin(c),
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, "ID kategori tidak valid")
			return
		}
		filter.CategoryID = uint(id)
	}

	items, err := ctrl.menuService.GetMenuItems(filter)
	if err != nil {
		log.Error("Failed to fetch menu items", err, nil)
		apperrors.InternalError(c, "Gagal memuat menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetMenuItem returns one menu item
// GET /api/v1/menu/:id
func (ctrl *MenuController) GetMenuItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID menu tidak valid")
		return
	}

	item, err := ctrl.menuService.GetMenuItem(id)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusNotFound, apperrors.MenuItemNotFound, "Menu tidak ditemukan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// GetPopularItems lists available items flagged as popular
// GET /api/v1/menu/popular
func (ctrl *MenuController) GetPopularItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	items, err := ctrl.menuService.GetPopularItems()
	if err != nil {
		log.Error("Failed to fetch popular menu items", err, nil)
		apperrors.InternalError(c, "Gagal memuat menu populer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}

// CreateMenuItem adds a menu item
// POST /api/v1/admin/menu
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Nama, kategori, dan harga menu wajib diisi")
		return
	}

	item := menuItemFromRequest(&req)
	if err := ctrl.menuService.CreateMenuItem(item); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMenuItem):
			apperrors.BadRequest(c, "Nama dan harga menu tidak valid")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
		default:
			log.Error("Failed to create menu item", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.RespondWithParsedError(c, err, "menu_item")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// UpdateMenuItem replaces a menu item's fields
// PUT /api/v1/admin/menu/:id
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID menu tidak valid")
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Nama, kategori, dan harga menu wajib diisi")
		return
	}

	item := menuItemFromRequest(&req)
	item.ID = id
	if err := ctrl.menuService.UpdateMenuItem(item); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.MenuItemNotFound, "Menu tidak ditemukan")
		case errors.Is(err, service.ErrInvalidMenuItem):
			apperrors.BadRequest(c, "Nama dan harga menu tidak valid")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CategoryNotFound, "Kategori tidak ditemukan")
		default:
			log.Error("Failed to update menu item", err, map[string]interface{}{
				"menu_item_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "menu_item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// SetAvailability toggles whether a menu item can be ordered
// PATCH /api/v1/admin/menu/:id/availability
func (ctrl *MenuController) SetAvailability(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID menu tidak valid")
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		apperrors.BadRequest(c, "Status ketersediaan wajib diisi")
		return
	}

	if err := ctrl.menuService.SetAvailability(id, *req.IsAvailable); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.MenuItemNotFound, "Menu tidak ditemukan")
			return
		}
		log.Error("Failed to update menu availability", err, map[string]interface{}{
			"menu_item_id": id,
		})
		apperrors.InternalError(c, "Gagal memperbarui ketersediaan menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ketersediaan menu diperbarui",
	})
}

// DeleteMenuItem removes a menu item
// DELETE /api/v1/admin/menu/:id
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID menu tidak valid")
		return
	}

	if err := ctrl.menuService.DeleteMenuItem(id); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.MenuItemNotFound, "Menu tidak ditemukan")
			return
		}
		log.Error("Failed to delete menu item", err, map[string]interface{}{
			"menu_item_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "menu_item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu dihapus",
	})
}

func menuItemFromRequest(req *MenuItemRequest) *model.MenuItem {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &model.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
		IsPopular:   req.IsPopular,
	}
}
