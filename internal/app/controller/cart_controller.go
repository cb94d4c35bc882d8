package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
	"gorm.io/gorm"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the user's cart with the computed total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	items, total, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal memuat keranjang")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"count": len(items),
	})
}

// AddItem adds a menu item to the cart, bumping quantity if already present
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Item menu dan jumlah wajib diisi")
		return
	}

	item, err := ctrl.cartService.AddItem(userID, req.MenuItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.MenuItemNotFound, "Menu tidak ditemukan")
		case errors.Is(err, service.ErrMenuItemUnavailable):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.MenuItemUnavailable, "Menu sedang tidak tersedia")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, "Jumlah harus lebih dari nol")
		default:
			log.Error("Failed to add cart item", err, map[string]interface{}{
				"user_id":      userID,
				"menu_item_id": req.MenuItemID,
			})
			apperrors.InternalError(c, "Gagal menambahkan ke keranjang")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// UpdateItem sets a cart line's quantity
// PATCH /api/v1/cart/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID item keranjang tidak valid")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Jumlah harus lebih dari nol")
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(userID, id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CartItemNotFound, "Item keranjang tidak ditemukan")
		case errors.Is(err, service.ErrNotCartItemOwner):
			apperrors.Forbidden(c, "")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, "Jumlah harus lebih dari nol")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.InternalError(c, "Gagal memperbarui keranjang")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// RemoveItem deletes one cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID item keranjang tidak valid")
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.CartItemNotFound, "Item keranjang tidak ditemukan")
		case errors.Is(err, service.ErrNotCartItemOwner):
			apperrors.Forbidden(c, "")
		default:
			log.Error("Failed to remove cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.InternalError(c, "Gagal menghapus item keranjang")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item dihapus dari keranjang",
	})
}

// ClearCart removes every cart line of the user
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal mengosongkan keranjang")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Keranjang dikosongkan",
	})
}
