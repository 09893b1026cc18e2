package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"size:50;not null;index" json:"type"`
	Icon      string    `gorm:"size:50;not null" json:"icon"`
	Link      *string   `gorm:"size:512" json:"link"`
	Read      bool      `gorm:"column:is_read;not null;index" json:"read"`
	Urgent    bool      `gorm:"not null" json:"urgent"`
	RelatedID *string   `gorm:"size:36" json:"related_id"` // not a foreign key
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	assignID(&n.ID)
	return nil
}
