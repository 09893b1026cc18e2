package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product belongs to a category and optionally to one of that category's
// subcategories. NavbarCategoryID mirrors the category's parent and is kept
// in step by the service layer.
type Product struct {
	ID               string                      `gorm:"primaryKey;size:36" json:"id"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Slug             string                      `gorm:"size:255;not null;index;uniqueIndex:idx_products_scope_slug,priority:3" json:"slug"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	KeyFeatures      datatypes.JSONSlice[string] `json:"key_features"`
	Image1           string                      `gorm:"size:1024;not null" json:"image1"`
	Image2           *string                     `gorm:"size:1024" json:"image2"`
	Image3           *string                     `gorm:"size:1024" json:"image3"`
	Image4           *string                     `gorm:"size:1024" json:"image4"`
	NavbarCategoryID string                      `gorm:"size:36;not null;index" json:"navbar_category_id"`
	CategoryID       string                      `gorm:"size:36;not null;uniqueIndex:idx_products_scope_slug,priority:1" json:"category_id"`
	SubCategoryID    *string                     `gorm:"column:subcategory_id;size:36;index" json:"subcategory_id"`
	// SubCategoryScope is subcategory_id with NULL folded to "" so the unique
	// slug index also covers products attached directly to a category.
	SubCategoryScope string    `gorm:"column:subcategory_scope;size:36;not null;default:'';uniqueIndex:idx_products_scope_slug,priority:2" json:"-"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	NavbarCategory *NavbarCategory `gorm:"foreignKey:NavbarCategoryID" json:"navbar_category,omitempty"`
	Category       *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategory    *SubCategory    `gorm:"foreignKey:SubCategoryID" json:"subcategory,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	p.SubCategoryScope = subcategoryScope(p.SubCategoryID)
	if p.KeyFeatures == nil {
		p.KeyFeatures = datatypes.JSONSlice[string]{}
	}
	return nil
}

func subcategoryScope(subcategoryID *string) string {
	if subcategoryID == nil {
		return ""
	}
	return *subcategoryID
}
