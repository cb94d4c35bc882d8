package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeWelcome NotificationType = "welcome"
	NotificationTypePromo   NotificationType = "promo"
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeOrder   NotificationType = "order"
)

// Notification is a human-readable in-app message. TargetPage and TargetTab
// tell the client where to navigate when the notification is clicked.
type Notification struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	Title      string           `gorm:"type:text;not null" json:"title"`
	Message    string           `gorm:"type:text;not null" json:"message"`
	Type       NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`
	TargetPage string           `gorm:"type:varchar(50)" json:"target_page"`
	TargetTab  string           `gorm:"type:varchar(50)" json:"target_tab,omitempty"`
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
