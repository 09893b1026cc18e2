package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Slug             string    `gorm:"size:255;not null;uniqueIndex:idx_categories_navbar_slug,priority:2" json:"slug"`
	NavbarCategoryID string    `gorm:"size:36;not null;uniqueIndex:idx_categories_navbar_slug,priority:1" json:"navbar_category_id"`
	Description      *string   `gorm:"type:text" json:"description"`
	Image            *string   `gorm:"size:1024" json:"image"`
	Order            int       `gorm:"column:sort_order;not null;index" json:"order"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	NavbarCategory *NavbarCategory `gorm:"foreignKey:NavbarCategoryID" json:"navbar_category,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type CategorySummary struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	NavbarCategory *NavbarCategorySummary `json:"navbar_category"`
}

func (c *Category) Summary() CategorySummary {
	s := CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
	if c.NavbarCategory != nil {
		nav := c.NavbarCategory.Summary()
		s.NavbarCategory = &nav
	}
	return s
}
