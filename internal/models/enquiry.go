package models

import (
	"time"

	"gorm.io/gorm"
)

type ContactEnquiry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:500;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;index" json:"status"` // pending | contacted | resolved
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContactEnquiry) TableName() string {
	return "contact_enquiries"
}

func (e *ContactEnquiry) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// ProductEnquiry references the product by free-text name only.
type ProductEnquiry struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Mobile      string    `gorm:"size:50;not null" json:"mobile"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:20;not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProductEnquiry) TableName() string {
	return "product_enquiries"
}

func (e *ProductEnquiry) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}
