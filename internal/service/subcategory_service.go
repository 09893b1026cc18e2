package service

import (
	"context"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/pkg/slug"
)

type SubCategoryService struct {
	repo       *repository.SubCategoryRepository
	categories *repository.CategoryRepository
	products   *repository.ProductRepository
}

func NewSubCategoryService(repos *repository.Repositories) *SubCategoryService {
	return &SubCategoryService{
		repo:       repos.SubCategories,
		categories: repos.Categories,
		products:   repos.Products,
	}
}

func (s *SubCategoryService) List(ctx context.Context, f repository.SubCategoryFilter) ([]models.SubCategory, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *SubCategoryService) ListActive(ctx context.Context) ([]models.SubCategory, error) {
	return s.repo.FindAll(ctx, repository.SubCategoryFilter{IsActive: boolPtr(true)})
}

func (s *SubCategoryService) ActiveUnderCategory(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	return s.repo.FindAll(ctx, repository.SubCategoryFilter{CategoryID: categoryID, IsActive: boolPtr(true)})
}

func (s *SubCategoryService) Get(ctx context.Context, id string) (*models.SubCategory, error) {
	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, apperror.NotFound("Subcategory not found")
	}
	return sc, nil
}

func (s *SubCategoryService) ActiveBySlug(ctx context.Context, sl string) (*models.SubCategory, error) {
	sc, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, apperror.NotFound("Subcategory not found")
	}
	if !sc.IsActive {
		return nil, apperror.NotFound("Subcategory is not active")
	}
	return sc, nil
}

func (s *SubCategoryService) requireCategory(ctx context.Context, id string) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperror.NotFound("Category not found")
	}
	return nil
}

func (s *SubCategoryService) checkDuplicate(ctx context.Context, name, categoryID, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, name, categoryID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Conflict("Subcategory with this name already exists in this category")
	}
	return nil
}

func (s *SubCategoryService) Create(ctx context.Context, in models.SubCategoryPatch) (*models.SubCategory, error) {
	name := trimmed(in.Name)
	categoryID := trimmed(in.CategoryID)
	if name == "" {
		return nil, apperror.Validation("Subcategory name is required")
	}
	if categoryID == "" {
		return nil, apperror.Validation("Category is required")
	}
	if slug.Generate(name) == "" {
		return nil, apperror.Validation("Subcategory name must contain letters or digits")
	}
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, name, categoryID, ""); err != nil {
		return nil, err
	}

	sc := &models.SubCategory{
		Name:        name,
		CategoryID:  categoryID,
		Description: optional(in.Description),
		Image:       optional(in.Image),
		IsActive:    true,
	}
	if in.IsActive != nil {
		sc.IsActive = *in.IsActive
	}
	return s.repo.Create(ctx, sc)
}

// Update applies a partial update. Moving a subcategory that still has
// products is refused, since those products would then point at a
// subcategory outside their category.
func (s *SubCategoryService) Update(ctx context.Context, id string, p models.SubCategoryPatch) (*models.SubCategory, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = trimmedPtr(p.Name)
	p.CategoryID = trimmedPtr(p.CategoryID)
	p.Description = trimmedPtr(p.Description)
	p.Image = trimmedPtr(p.Image)

	name, categoryID := existing.Name, existing.CategoryID
	if p.Name != nil {
		if *p.Name == "" {
			return nil, apperror.Validation("Subcategory name is required")
		}
		if slug.Generate(*p.Name) == "" {
			return nil, apperror.Validation("Subcategory name must contain letters or digits")
		}
		name = *p.Name
	}
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			return nil, apperror.Validation("Category is required")
		}
		categoryID = *p.CategoryID
	}
	reparented := categoryID != existing.CategoryID
	if reparented {
		if err := s.requireCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		n, err := s.products.Count(ctx, repository.ProductFilter{SubCategoryID: id})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperror.Conflict("Cannot move subcategory with existing products")
		}
	}
	if reparented || !sameName(name, existing.Name) {
		if err := s.checkDuplicate(ctx, name, categoryID, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, p)
}

// Delete refuses to remove a subcategory that still has products.
func (s *SubCategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.products.Count(ctx, repository.ProductFilter{SubCategoryID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("Cannot delete subcategory with existing products")
	}
	return s.repo.Delete(ctx, id)
}
