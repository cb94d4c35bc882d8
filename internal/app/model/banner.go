package model

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a promotional image shown on the storefront home page.
type Banner struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	ImageURL     string         `gorm:"not null" json:"image_url"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banner) TableName() string {
	return "banners"
}
