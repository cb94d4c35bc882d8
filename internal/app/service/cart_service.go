package service

import (
	"errors"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrNotCartItemOwner    = errors.New("cart item belongs to another user")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)

type CartService interface {
	GetCart(userID uint) ([]model.CartItem, float64, error)
	AddItem(userID, menuItemID uint, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuItemRepository
}

func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuItemRepository) CartService {
	return &cartService{cartRepo: cartRepo, menuRepo: menuRepo}
}

func (s *cartService) GetCart(userID uint) ([]model.CartItem, float64, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += item.MenuItem.Price * float64(item.Quantity)
	}
	return items, total, nil
}

// AddItem upserts a cart line: a second add of the same menu item bumps the
// existing row's quantity instead of inserting a duplicate.
func (s *cartService) AddItem(userID, menuItemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	menuItem, err := s.menuRepo.FindByID(menuItemID)
	if err != nil {
		logger.Warn("Menu item not found for cart add", map[string]interface{}{
			"user_id":      userID,
			"menu_item_id": menuItemID,
		})
		return nil, err
	}
	if !menuItem.IsAvailable {
		logger.Warn("Menu item unavailable for cart add", map[string]interface{}{
			"user_id":      userID,
			"menu_item_id": menuItemID,
		})
		return nil, ErrMenuItemUnavailable
	}

	existing, err := s.cartRepo.FindByUserAndMenuItem(userID, menuItemID)
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		logger.Info("Cart item quantity increased", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.CartItem{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"user_id":      userID,
		"menu_item_id": menuItemID,
		"quantity":     quantity,
	})
	return item, nil
}

func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		return nil, ErrCartItemNotFound
	}
	if item.UserID != userID {
		logger.Warn("User tried to update another user's cart item", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, ErrNotCartItemOwner
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, cartItemID uint) error {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		return ErrCartItemNotFound
	}
	if item.UserID != userID {
		return ErrNotCartItemOwner
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}
