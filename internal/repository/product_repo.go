package repository

import (
	"context"
	"sort"

	"catalog/internal/models"
	"catalog/pkg/slug"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductFilter struct {
	NavbarCategoryID string
	CategoryID       string
	SubCategoryID    string
	IsActive         *bool
	Limit            int
}

// CategoryCount is one bar of the products-by-category chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) scoped(ctx context.Context, f ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if f.NavbarCategoryID != "" {
		q = q.Where("navbar_category_id = ?", f.NavbarCategoryID)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.SubCategoryID != "" {
		q = q.Where("subcategory_id = ?", f.SubCategoryID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("NavbarCategory").Preload("Category.NavbarCategory").Preload("SubCategory.Category")
}

func (r *ProductRepository) FindAll(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	list := []models.Product{}
	q := withRelations(r.scoped(ctx, f)).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	ok, err := take(withRelations(r.db.WithContext(ctx)).Where("id = ?", id), &p)
	if !ok {
		return nil, err
	}
	return &p, nil
}

// FindBySlug prefers active rows, then the oldest, since the same slug may
// exist under different categories.
func (r *ProductRepository) FindBySlug(ctx context.Context, s string) (*models.Product, error) {
	var p models.Product
	q := withRelations(r.db.WithContext(ctx)).Where("slug = ?", s).
		Order("is_active DESC").Order("created_at ASC")
	ok, err := take(q, &p)
	if !ok {
		return nil, err
	}
	return &p, nil
}

// NameExists checks the (category, subcategory) scope. A nil subcategoryID
// matches products attached directly to the category.
func (r *ProductRepository) NameExists(ctx context.Context, name, categoryID string, subcategoryID *string, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("LOWER(name) = LOWER(?) AND category_id = ?", name, categoryID)
	if subcategoryID != nil {
		q = q.Where("subcategory_id = ?", *subcategoryID)
	} else {
		q = q.Where("subcategory_id IS NULL")
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.Slug = slug.Generate(p.Name)
	p.NavbarCategory, p.Category, p.SubCategory = nil, nil, nil
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, translate(err, "Duplicate product slug")
	}
	return r.FindByID(ctx, p.ID)
}

func (r *ProductRepository) Update(ctx context.Context, id string, p models.ProductPatch) (*models.Product, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
		updates["slug"] = slug.Generate(*p.Name)
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.KeyFeatures != nil {
		updates["key_features"] = datatypes.JSONSlice[string](*p.KeyFeatures)
	}
	if p.Image1 != nil {
		updates["image1"] = *p.Image1
	}
	if p.Image2 != nil {
		updates["image2"] = nullable(*p.Image2)
	}
	if p.Image3 != nil {
		updates["image3"] = nullable(*p.Image3)
	}
	if p.Image4 != nil {
		updates["image4"] = nullable(*p.Image4)
	}
	if p.NavbarCategoryID != nil {
		updates["navbar_category_id"] = *p.NavbarCategoryID
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.SubCategoryID != nil {
		updates["subcategory_id"] = nullable(*p.SubCategoryID)
		updates["subcategory_scope"] = *p.SubCategoryID
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, translate(err, "Duplicate product slug")
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error, "")
}

func (r *ProductRepository) Count(ctx context.Context, f ProductFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

// CountByCategory tallies products per category id and labels each bucket
// with the category's current name, "Unknown" when the row is gone.
// Largest buckets come first.
func (r *ProductRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("category_id, COUNT(*) AS count").Group("category_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CategoryID)
	}
	names, err := NewCategoryRepository(r.db).NamesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, len(rows))
	for _, row := range rows {
		name, ok := names[row.CategoryID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, CategoryCount{Name: name, Count: row.Count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// SetNavbarForCategory keeps the denormalized navbar reference of every
// product in categoryID in step with its category.
func (r *ProductRepository) SetNavbarForCategory(ctx context.Context, categoryID, navbarCategoryID string) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Update("navbar_category_id", navbarCategoryID).Error
}
