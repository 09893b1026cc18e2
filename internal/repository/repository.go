package repository

import "gorm.io/gorm"

// Repositories bundles every table repository bound to one connection tier.
type Repositories struct {
	NavbarCategories *NavbarCategoryRepository
	Categories       *CategoryRepository
	SubCategories    *SubCategoryRepository
	Products         *ProductRepository
	ContactEnquiries *ContactEnquiryRepository
	ProductEnquiries *ProductEnquiryRepository
	Notifications    *NotificationRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		NavbarCategories: NewNavbarCategoryRepository(db),
		Categories:       NewCategoryRepository(db),
		SubCategories:    NewSubCategoryRepository(db),
		Products:         NewProductRepository(db),
		ContactEnquiries: NewContactEnquiryRepository(db),
		ProductEnquiries: NewProductEnquiryRepository(db),
		Notifications:    NewNotificationRepository(db),
	}
}
