package repository

import (
	"context"

	"catalog/internal/models"
	"catalog/pkg/slug"

	"gorm.io/gorm"
)

type NavbarCategoryFilter struct {
	IsActive *bool
}

type NavbarCategoryRepository struct {
	db *gorm.DB
}

func NewNavbarCategoryRepository(db *gorm.DB) *NavbarCategoryRepository {
	return &NavbarCategoryRepository{db: db}
}

func (r *NavbarCategoryRepository) scoped(ctx context.Context, f NavbarCategoryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.NavbarCategory{})
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *NavbarCategoryRepository) FindAll(ctx context.Context, f NavbarCategoryFilter) ([]models.NavbarCategory, error) {
	list := []models.NavbarCategory{}
	err := r.scoped(ctx, f).Order("sort_order ASC").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *NavbarCategoryRepository) FindByID(ctx context.Context, id string) (*models.NavbarCategory, error) {
	var n models.NavbarCategory
	ok, err := take(r.db.WithContext(ctx).Where("id = ?", id), &n)
	if !ok {
		return nil, err
	}
	return &n, nil
}

func (r *NavbarCategoryRepository) FindBySlug(ctx context.Context, s string) (*models.NavbarCategory, error) {
	var n models.NavbarCategory
	ok, err := take(r.db.WithContext(ctx).Where("slug = ?", s), &n)
	if !ok {
		return nil, err
	}
	return &n, nil
}

// NameExists reports whether another navbar category already uses name,
// compared case-insensitively. excludeID may be empty.
func (r *NavbarCategoryRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.NavbarCategory{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *NavbarCategoryRepository) Create(ctx context.Context, n *models.NavbarCategory) (*models.NavbarCategory, error) {
	n.Slug = slug.Generate(n.Name)
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, translate(err, "Duplicate category name or slug")
	}
	return r.FindByID(ctx, n.ID)
}

func (r *NavbarCategoryRepository) Update(ctx context.Context, id string, p models.NavbarCategoryPatch) (*models.NavbarCategory, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
		updates["slug"] = slug.Generate(*p.Name)
	}
	if p.Description != nil {
		updates["description"] = nullable(*p.Description)
	}
	if p.Order != nil {
		updates["sort_order"] = *p.Order
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.NavbarCategory{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, translate(err, "Duplicate category name or slug")
		}
	}
	return r.FindByID(ctx, id)
}

func (r *NavbarCategoryRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.NavbarCategory{}).Error, "")
}

func (r *NavbarCategoryRepository) Count(ctx context.Context, f NavbarCategoryFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}
