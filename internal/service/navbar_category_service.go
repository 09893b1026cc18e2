package service

import (
	"context"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/pkg/slug"
)

type NavbarCategoryService struct {
	repo       *repository.NavbarCategoryRepository
	categories *repository.CategoryRepository
	products   *repository.ProductRepository
}

func NewNavbarCategoryService(repos *repository.Repositories) *NavbarCategoryService {
	return &NavbarCategoryService{
		repo:       repos.NavbarCategories,
		categories: repos.Categories,
		products:   repos.Products,
	}
}

func (s *NavbarCategoryService) List(ctx context.Context, f repository.NavbarCategoryFilter) ([]models.NavbarCategory, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *NavbarCategoryService) ListActive(ctx context.Context) ([]models.NavbarCategory, error) {
	return s.repo.FindAll(ctx, repository.NavbarCategoryFilter{IsActive: boolPtr(true)})
}

func (s *NavbarCategoryService) Get(ctx context.Context, id string) (*models.NavbarCategory, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperror.NotFound("Navbar category not found")
	}
	return n, nil
}

// ActiveBySlug resolves a navbar category for public pages; inactive rows
// are reported as not found.
func (s *NavbarCategoryService) ActiveBySlug(ctx context.Context, sl string) (*models.NavbarCategory, error) {
	n, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperror.NotFound("Navbar category not found")
	}
	if !n.IsActive {
		return nil, apperror.NotFound("Navbar category is not active")
	}
	return n, nil
}

func (s *NavbarCategoryService) Create(ctx context.Context, in models.NavbarCategoryPatch) (*models.NavbarCategory, error) {
	name := trimmed(in.Name)
	if name == "" {
		return nil, apperror.Validation("Category name is required")
	}
	if slug.Generate(name) == "" {
		return nil, apperror.Validation("Category name must contain letters or digits")
	}
	exists, err := s.repo.NameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Category with this name already exists")
	}

	n := &models.NavbarCategory{
		Name:        name,
		Description: optional(in.Description),
		IsActive:    true,
	}
	if in.Order != nil {
		n.Order = *in.Order
	}
	if in.IsActive != nil {
		n.IsActive = *in.IsActive
	}
	return s.repo.Create(ctx, n)
}

func (s *NavbarCategoryService) Update(ctx context.Context, id string, p models.NavbarCategoryPatch) (*models.NavbarCategory, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = trimmedPtr(p.Name)
	p.Description = trimmedPtr(p.Description)

	if p.Name != nil {
		if *p.Name == "" {
			return nil, apperror.Validation("Category name is required")
		}
		if slug.Generate(*p.Name) == "" {
			return nil, apperror.Validation("Category name must contain letters or digits")
		}
		if !sameName(*p.Name, existing.Name) {
			exists, err := s.repo.NameExists(ctx, *p.Name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperror.Conflict("Category with this name already exists")
			}
		}
	}
	return s.repo.Update(ctx, id, p)
}

// Delete refuses to remove a navbar category that still owns categories or
// products.
func (s *NavbarCategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.categories.Count(ctx, repository.CategoryFilter{NavbarCategoryID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("Cannot delete navbar category with existing categories")
	}
	n, err = s.products.Count(ctx, repository.ProductFilter{NavbarCategoryID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("Cannot delete navbar category with existing products")
	}
	return s.repo.Delete(ctx, id)
}
