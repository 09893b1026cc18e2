package models

import (
	"time"

	"gorm.io/gorm"
)

type SubCategory struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex:idx_subcategories_category_slug,priority:2" json:"slug"`
	CategoryID  string    `gorm:"size:36;not null;uniqueIndex:idx_subcategories_category_slug,priority:1" json:"category_id"`
	Description *string   `gorm:"type:text" json:"description"`
	Image       *string   `gorm:"size:1024" json:"image"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (SubCategory) TableName() string {
	return "subcategories"
}

func (s *SubCategory) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

type SubCategorySummary struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Category *CategorySummary `json:"category"`
}

func (s *SubCategory) Summary() SubCategorySummary {
	out := SubCategorySummary{ID: s.ID, Name: s.Name, Slug: s.Slug}
	if s.Category != nil {
		cat := s.Category.Summary()
		out.Category = &cat
	}
	return out
}
