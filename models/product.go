package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string      `gorm:"not null" json:"name"`
	Slug          string      `gorm:"uniqueIndex;not null" json:"slug"` // Used for detail lookups, not the numeric ID
	Price         Amount      `gorm:"not null" json:"price"`
	Description   string      `json:"description"`
	Image         string      `json:"image"` // Backend may send null; empty means "no image"
	Stock         int         `json:"stock_quantity"`
	SubCategoryID uint        `gorm:"index" json:"sub_category_id"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ImageURL returns the product image, falling back to a generated placeholder
// keyed by product ID when the backend has none.
func (p Product) ImageURL() string {
	if p.Image != "" {
		return p.Image
	}
	return fmt.Sprintf("https://loremflickr.com/400/400/toy,baby?lock=%d", p.ID)
}
