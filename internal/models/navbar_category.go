package models

import (
	"time"

	"gorm.io/gorm"
)

// NavbarCategory is the root of the catalog taxonomy.
type NavbarCategory struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex:idx_navbar_categories_slug" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:sort_order;not null;index" json:"order"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (NavbarCategory) TableName() string {
	return "navbar_categories"
}

func (n *NavbarCategory) BeforeCreate(*gorm.DB) error {
	assignID(&n.ID)
	return nil
}

// NavbarCategorySummary is the parent block embedded in public by-slug responses.
type NavbarCategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (n *NavbarCategory) Summary() NavbarCategorySummary {
	return NavbarCategorySummary{ID: n.ID, Name: n.Name, Slug: n.Slug}
}
