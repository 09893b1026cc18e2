package service

import (
	"context"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/pkg/slug"
)

type ProductService struct {
	repo          *repository.ProductRepository
	navbars       *repository.NavbarCategoryRepository
	categories    *repository.CategoryRepository
	subcategories *repository.SubCategoryRepository
}

func NewProductService(repos *repository.Repositories) *ProductService {
	return &ProductService{
		repo:          repos.Products,
		navbars:       repos.NavbarCategories,
		categories:    repos.Categories,
		subcategories: repos.SubCategories,
	}
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]models.Product, error) {
	return s.repo.FindAll(ctx, f)
}

// ListActive lists active products; f's IsActive is overridden.
func (s *ProductService) ListActive(ctx context.Context, f repository.ProductFilter) ([]models.Product, error) {
	f.IsActive = boolPtr(true)
	return s.repo.FindAll(ctx, f)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}
	return p, nil
}

func (s *ProductService) ActiveBySlug(ctx context.Context, sl string) (*models.Product, error) {
	p, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}
	if !p.IsActive {
		return nil, apperror.NotFound("Product is not active")
	}
	return p, nil
}

func (s *ProductService) loadCategory(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("Category not found")
	}
	return c, nil
}

// checkNavbar verifies that navbarID exists and owns category.
func (s *ProductService) checkNavbar(ctx context.Context, navbarID string, category *models.Category) error {
	n, err := s.navbars.FindByID(ctx, navbarID)
	if err != nil {
		return err
	}
	if n == nil {
		return apperror.NotFound("Navbar category not found")
	}
	if category.NavbarCategoryID != navbarID {
		return apperror.Validation("Category does not belong to the selected navbar category")
	}
	return nil
}

// checkSubCategory verifies that subcategoryID exists and sits under categoryID.
func (s *ProductService) checkSubCategory(ctx context.Context, subcategoryID, categoryID string) error {
	sc, err := s.subcategories.FindByID(ctx, subcategoryID)
	if err != nil {
		return err
	}
	if sc == nil {
		return apperror.NotFound("Subcategory not found")
	}
	if sc.CategoryID != categoryID {
		return apperror.Validation("Subcategory does not belong to the selected category")
	}
	return nil
}

func (s *ProductService) checkDuplicate(ctx context.Context, name, categoryID string, subcategoryID *string, excludeID string) error {
	exists, err := s.repo.NameExists(ctx, name, categoryID, subcategoryID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Conflict("Product with this name already exists in this category")
	}
	return nil
}

func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (s *ProductService) Create(ctx context.Context, in models.ProductPatch) (*models.Product, error) {
	name := trimmed(in.Name)
	description := trimmed(in.Description)
	image1 := trimmed(in.Image1)
	navbarID := trimmed(in.NavbarCategoryID)
	categoryID := trimmed(in.CategoryID)
	subcategoryID := optional(in.SubCategoryID)

	switch {
	case name == "":
		return nil, apperror.Validation("Product name is required")
	case description == "":
		return nil, apperror.Validation("Product description is required")
	case image1 == "":
		return nil, apperror.Validation("At least one product image is required")
	case navbarID == "":
		return nil, apperror.Validation("Navbar category is required")
	case categoryID == "":
		return nil, apperror.Validation("Category is required")
	case slug.Generate(name) == "":
		return nil, apperror.Validation("Product name must contain letters or digits")
	}

	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkNavbar(ctx, navbarID, category); err != nil {
		return nil, err
	}
	if subcategoryID != nil {
		if err := s.checkSubCategory(ctx, *subcategoryID, categoryID); err != nil {
			return nil, err
		}
	}
	if err := s.checkDuplicate(ctx, name, categoryID, subcategoryID, ""); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:             name,
		Description:      description,
		Image1:           image1,
		Image2:           optional(in.Image2),
		Image3:           optional(in.Image3),
		Image4:           optional(in.Image4),
		NavbarCategoryID: navbarID,
		CategoryID:       categoryID,
		SubCategoryID:    subcategoryID,
		IsActive:         true,
	}
	if in.KeyFeatures != nil {
		p.KeyFeatures = cleanFeatures(*in.KeyFeatures)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial update. The effective category, subcategory and
// navbar category after the patch must stay consistent; changing the
// category without naming a navbar category adopts the new category's parent.
func (s *ProductService) Update(ctx context.Context, id string, p models.ProductPatch) (*models.Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = trimmedPtr(p.Name)
	p.Description = trimmedPtr(p.Description)
	p.Image1 = trimmedPtr(p.Image1)
	p.Image2 = trimmedPtr(p.Image2)
	p.Image3 = trimmedPtr(p.Image3)
	p.Image4 = trimmedPtr(p.Image4)
	p.NavbarCategoryID = trimmedPtr(p.NavbarCategoryID)
	p.CategoryID = trimmedPtr(p.CategoryID)
	p.SubCategoryID = trimmedPtr(p.SubCategoryID)
	if p.KeyFeatures != nil {
		features := cleanFeatures(*p.KeyFeatures)
		p.KeyFeatures = &features
	}

	switch {
	case p.Name != nil && *p.Name == "":
		return nil, apperror.Validation("Product name is required")
	case p.Name != nil && slug.Generate(*p.Name) == "":
		return nil, apperror.Validation("Product name must contain letters or digits")
	case p.Description != nil && *p.Description == "":
		return nil, apperror.Validation("Product description is required")
	case p.Image1 != nil && *p.Image1 == "":
		return nil, apperror.Validation("At least one product image is required")
	case p.CategoryID != nil && *p.CategoryID == "":
		return nil, apperror.Validation("Category is required")
	case p.NavbarCategoryID != nil && *p.NavbarCategoryID == "":
		return nil, apperror.Validation("Navbar category is required")
	}

	name := existing.Name
	if p.Name != nil {
		name = *p.Name
	}
	categoryID := existing.CategoryID
	if p.CategoryID != nil {
		categoryID = *p.CategoryID
	}
	subcategoryID := existing.SubCategoryID
	if p.SubCategoryID != nil {
		subcategoryID = optional(p.SubCategoryID)
	}
	categoryChanged := categoryID != existing.CategoryID

	if categoryChanged || p.NavbarCategoryID != nil {
		category, err := s.loadCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if p.NavbarCategoryID != nil {
			if err := s.checkNavbar(ctx, *p.NavbarCategoryID, category); err != nil {
				return nil, err
			}
		} else {
			p.NavbarCategoryID = &category.NavbarCategoryID
		}
	}
	if subcategoryID != nil && (p.SubCategoryID != nil || categoryChanged) {
		if err := s.checkSubCategory(ctx, *subcategoryID, categoryID); err != nil {
			return nil, err
		}
	}

	scopeChanged := categoryChanged || !sameOptional(subcategoryID, existing.SubCategoryID)
	if scopeChanged || !sameName(name, existing.Name) {
		if err := s.checkDuplicate(ctx, name, categoryID, subcategoryID, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, p)
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
