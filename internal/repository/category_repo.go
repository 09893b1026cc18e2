package repository

import (
	"context"

	"catalog/internal/models"
	"catalog/pkg/slug"

	"gorm.io/gorm"
)

type CategoryFilter struct {
	NavbarCategoryID string
	IsActive         *bool
	// ActiveNavbarOnly drops categories whose navbar category is inactive.
	ActiveNavbarOnly bool
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) scoped(ctx context.Context, f CategoryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Category{})
	if f.NavbarCategoryID != "" {
		q = q.Where("navbar_category_id = ?", f.NavbarCategoryID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.ActiveNavbarOnly {
		active := r.db.Model(&models.NavbarCategory{}).Select("id").Where("is_active = ?", true)
		q = q.Where("navbar_category_id IN (?)", active)
	}
	return q
}

func (r *CategoryRepository) FindAll(ctx context.Context, f CategoryFilter) ([]models.Category, error) {
	list := []models.Category{}
	err := r.scoped(ctx, f).Preload("NavbarCategory").Order("sort_order ASC").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	ok, err := take(r.db.WithContext(ctx).Preload("NavbarCategory").Where("id = ?", id), &c)
	if !ok {
		return nil, err
	}
	return &c, nil
}

// FindBySlug resolves a category slug. Slugs are only unique per navbar
// category, so active rows win and ties go to the oldest row.
func (r *CategoryRepository) FindBySlug(ctx context.Context, s string) (*models.Category, error) {
	var c models.Category
	q := r.db.WithContext(ctx).Preload("NavbarCategory").Where("slug = ?", s).
		Order("is_active DESC").Order("created_at ASC")
	ok, err := take(q, &c)
	if !ok {
		return nil, err
	}
	return &c, nil
}

// NameExists reports whether navbarCategoryID already holds a category named
// name, compared case-insensitively. excludeID may be empty.
func (r *CategoryRepository) NameExists(ctx context.Context, name, navbarCategoryID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?) AND navbar_category_id = ?", name, navbarCategoryID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.Slug = slug.Generate(c.Name)
	c.NavbarCategory = nil
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translate(err, "Duplicate category name or slug")
	}
	return r.FindByID(ctx, c.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, id string, p models.CategoryPatch) (*models.Category, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
		updates["slug"] = slug.Generate(*p.Name)
	}
	if p.NavbarCategoryID != nil {
		updates["navbar_category_id"] = *p.NavbarCategoryID
	}
	if p.Description != nil {
		updates["description"] = nullable(*p.Description)
	}
	if p.Image != nil {
		updates["image"] = nullable(*p.Image)
	}
	if p.Order != nil {
		updates["sort_order"] = *p.Order
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, translate(err, "Duplicate category name or slug")
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error, "")
}

func (r *CategoryRepository) Count(ctx context.Context, f CategoryFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

// NamesByID returns category names keyed by id.
func (r *CategoryRepository) NamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Category
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c.Name
	}
	return out, nil
}
