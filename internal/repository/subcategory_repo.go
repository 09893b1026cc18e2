package repository

import (
	"context"

	"catalog/internal/models"
	"catalog/pkg/slug"

	"gorm.io/gorm"
)

type SubCategoryFilter struct {
	CategoryID string
	IsActive   *bool
}

type SubCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) scoped(ctx context.Context, f SubCategoryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.SubCategory{})
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *SubCategoryRepository) FindAll(ctx context.Context, f SubCategoryFilter) ([]models.SubCategory, error) {
	list := []models.SubCategory{}
	err := r.scoped(ctx, f).Preload("Category.NavbarCategory").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *SubCategoryRepository) FindByID(ctx context.Context, id string) (*models.SubCategory, error) {
	var s models.SubCategory
	ok, err := take(r.db.WithContext(ctx).Preload("Category.NavbarCategory").Where("id = ?", id), &s)
	if !ok {
		return nil, err
	}
	return &s, nil
}

// FindBySlug prefers active rows, then the oldest, since slugs repeat
// across categories.
func (r *SubCategoryRepository) FindBySlug(ctx context.Context, sl string) (*models.SubCategory, error) {
	var s models.SubCategory
	q := r.db.WithContext(ctx).Preload("Category.NavbarCategory").Where("slug = ?", sl).
		Order("is_active DESC").Order("created_at ASC")
	ok, err := take(q, &s)
	if !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SubCategoryRepository) NameExists(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.SubCategory{}).
		Where("LOWER(name) = LOWER(?) AND category_id = ?", name, categoryID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *SubCategoryRepository) Create(ctx context.Context, s *models.SubCategory) (*models.SubCategory, error) {
	s.Slug = slug.Generate(s.Name)
	s.Category = nil
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, translate(err, "Duplicate subcategory name or slug")
	}
	return r.FindByID(ctx, s.ID)
}

func (r *SubCategoryRepository) Update(ctx context.Context, id string, p models.SubCategoryPatch) (*models.SubCategory, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
		updates["slug"] = slug.Generate(*p.Name)
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Description != nil {
		updates["description"] = nullable(*p.Description)
	}
	if p.Image != nil {
		updates["image"] = nullable(*p.Image)
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.SubCategory{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, translate(err, "Duplicate subcategory name or slug")
		}
	}
	return r.FindByID(ctx, id)
}

func (r *SubCategoryRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SubCategory{}).Error, "")
}

func (r *SubCategoryRepository) Count(ctx context.Context, f SubCategoryFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}
