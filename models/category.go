package models

type Category struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"unique;not null" json:"name"`
	Slug          string        `gorm:"uniqueIndex;not null" json:"slug"`
	IsActive      bool          `gorm:"default:true" json:"is_active"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"sub_categories,omitempty"`
}

type SubCategory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint      `gorm:"index" json:"category_id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Products   []Product `gorm:"foreignKey:SubCategoryID" json:"products,omitempty"`
}
