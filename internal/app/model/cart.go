package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem holds one pending line in a user's cart. At most one row exists
// per (user, menu item); CartService updates the quantity instead of
// inserting a duplicate.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
