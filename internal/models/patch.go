package models

// Patch types carry partial updates. A nil field is left untouched; a
// pointer to "" clears nullable columns.

type NavbarCategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryPatch struct {
	Name             *string `json:"name"`
	NavbarCategoryID *string `json:"navbar_category_id"`
	Description      *string `json:"description"`
	Image            *string `json:"image"`
	Order            *int    `json:"order"`
	IsActive         *bool   `json:"is_active"`
}

type SubCategoryPatch struct {
	Name        *string `json:"name"`
	CategoryID  *string `json:"category_id"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"is_active"`
}

type ProductPatch struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	KeyFeatures      *[]string `json:"key_features"`
	Image1           *string   `json:"image1"`
	Image2           *string   `json:"image2"`
	Image3           *string   `json:"image3"`
	Image4           *string   `json:"image4"`
	NavbarCategoryID *string   `json:"navbar_category_id"`
	CategoryID       *string   `json:"category_id"`
	SubCategoryID    *string   `json:"subcategory_id"`
	IsActive         *bool     `json:"is_active"`
}
