package service

import (
	"context"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/pkg/slug"
)

type CategoryService struct {
	repo          *repository.CategoryRepository
	navbars       *repository.NavbarCategoryRepository
	subcategories *repository.SubCategoryRepository
	products      *repository.ProductRepository
}

func NewCategoryService(repos *repository.Repositories) *CategoryService {
	return &CategoryService{
		repo:          repos.Categories,
		navbars:       repos.NavbarCategories,
		subcategories: repos.SubCategories,
		products:      repos.Products,
	}
}

func (s *CategoryService) List(ctx context.Context, f repository.CategoryFilter) ([]models.Category, error) {
	return s.repo.FindAll(ctx, f)
}

// ListActive returns the active categories whose navbar category is active too.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx, repository.CategoryFilter{IsActive: boolPtr(true), ActiveNavbarOnly: true})
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("Category not found")
	}
	return c, nil
}

func (s *CategoryService) ActiveBySlug(ctx context.Context, sl string) (*models.Category, error) {
	c, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("Category not found")
	}
	if !c.IsActive {
		return nil, apperror.NotFound("Category is not active")
	}
	return c, nil
}

// ActiveUnderNavbar lists the active categories of one active navbar category.
func (s *CategoryService) ActiveUnderNavbar(ctx context.Context, navbarID string) ([]models.Category, error) {
	return s.repo.FindAll(ctx, repository.CategoryFilter{NavbarCategoryID: navbarID, IsActive: boolPtr(true)})
}

func (s *CategoryService) requireNavbar(ctx context.Context, id string) error {
	n, err := s.navbars.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return apperror.NotFound("Navbar category not found")
	}
	return nil
}

func (s *CategoryService) checkDuplicate(ctx context.Context, name, navbarID, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, name, navbarID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Conflict("Category with this name already exists in this navbar category")
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, in models.CategoryPatch) (*models.Category, error) {
	name := trimmed(in.Name)
	navbarID := trimmed(in.NavbarCategoryID)
	if name == "" {
		return nil, apperror.Validation("Category name is required")
	}
	if navbarID == "" {
		return nil, apperror.Validation("Navbar category is required")
	}
	if slug.Generate(name) == "" {
		return nil, apperror.Validation("Category name must contain letters or digits")
	}
	if err := s.requireNavbar(ctx, navbarID); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, name, navbarID, ""); err != nil {
		return nil, err
	}

	c := &models.Category{
		Name:             name,
		NavbarCategoryID: navbarID,
		Description:      optional(in.Description),
		Image:            optional(in.Image),
		IsActive:         true,
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return s.repo.Create(ctx, c)
}

// Update applies a partial update. Moving the category under another navbar
// category re-runs the duplicate check in the new scope and carries its
// products along.
func (s *CategoryService) Update(ctx context.Context, id string, p models.CategoryPatch) (*models.Category, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = trimmedPtr(p.Name)
	p.NavbarCategoryID = trimmedPtr(p.NavbarCategoryID)
	p.Description = trimmedPtr(p.Description)
	p.Image = trimmedPtr(p.Image)

	name, navbarID := existing.Name, existing.NavbarCategoryID
	if p.Name != nil {
		if *p.Name == "" {
			return nil, apperror.Validation("Category name is required")
		}
		if slug.Generate(*p.Name) == "" {
			return nil, apperror.Validation("Category name must contain letters or digits")
		}
		name = *p.Name
	}
	if p.NavbarCategoryID != nil {
		if *p.NavbarCategoryID == "" {
			return nil, apperror.Validation("Navbar category is required")
		}
		navbarID = *p.NavbarCategoryID
	}
	reparented := navbarID != existing.NavbarCategoryID
	if reparented {
		if err := s.requireNavbar(ctx, navbarID); err != nil {
			return nil, err
		}
	}
	if reparented || !sameName(name, existing.Name) {
		if err := s.checkDuplicate(ctx, name, navbarID, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if reparented {
		if err := s.products.SetNavbarForCategory(ctx, id, navbarID); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// Delete refuses to remove a category that still owns subcategories or products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.subcategories.Count(ctx, repository.SubCategoryFilter{CategoryID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("Cannot delete category with existing subcategories")
	}
	n, err = s.products.Count(ctx, repository.ProductFilter{CategoryID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("Cannot delete category with existing products")
	}
	return s.repo.Delete(ctx, id)
}
