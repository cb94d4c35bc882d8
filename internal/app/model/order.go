package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is part of the closed status enum.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	OrderNumber        string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	CustomerName       string         `gorm:"not null" json:"customer_name"`
	CustomerPhone      string         `gorm:"not null" json:"customer_phone"`
	DeliveryAddress    string         `gorm:"type:text;not null" json:"delivery_address"`
	Notes              string         `gorm:"type:text" json:"notes"`
	TotalAmount        float64        `gorm:"not null" json:"total_amount"`
	Status             OrderStatus    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CancellationReason string         `gorm:"type:text" json:"cancellation_reason,omitempty"`
	AdminNotified      bool           `gorm:"default:false;index" json:"admin_notified"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is immutable after creation; Subtotal is UnitPrice*Quantity
// computed before submission.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"not null;index" json:"order_id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"not null" json:"unit_price"`
	Subtotal   float64        `gorm:"not null" json:"subtotal"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
