package handler

import (
	"net/http"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc           *service.ProductService
	categories    *service.CategoryService
	subcategories *service.SubCategoryService
}

func NewProductHandler(svc *service.ProductService, categories *service.CategoryService, subcategories *service.SubCategoryService) *ProductHandler {
	return &ProductHandler{svc: svc, categories: categories, subcategories: subcategories}
}

func productFilter(c *gin.Context) repository.ProductFilter {
	return repository.ProductFilter{
		NavbarCategoryID: c.Query("navbarCategory"),
		CategoryID:       c.Query("category"),
		SubCategoryID:    c.Query("subcategory"),
	}
}

// ListActive handles GET /api/product.
func (h *ProductHandler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context(), productFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

// BySlug handles GET /api/product/by-slug/:slug.
func (h *ProductHandler) BySlug(c *gin.Context) {
	p, err := h.svc.ActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, p)
}

// ByCategory handles GET /api/product/by-category/:slug.
func (h *ProductHandler) ByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	cat, err := h.categories.ActiveBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.ListActive(ctx, repository.ProductFilter{CategoryID: cat.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, gin.H{"category": cat.Summary()})
}

// BySubCategory handles GET /api/product/by-subcategory/:slug.
func (h *ProductHandler) BySubCategory(c *gin.Context) {
	ctx := c.Request.Context()
	sub, err := h.subcategories.ActiveBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.ListActive(ctx, repository.ProductFilter{SubCategoryID: sub.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, gin.H{"subcategory": sub.Summary()})
}

// List handles GET /api/admin/product with the same id filters as the public list.
func (h *ProductHandler) List(c *gin.Context) {
	f := productFilter(c)
	f.IsActive = activeFilter(c)
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductPatch
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("product", "create")
	respondMessage(c, http.StatusCreated, "Product created successfully", p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req models.ProductPatch
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("product", "update")
	respondMessage(c, http.StatusOK, "Product updated successfully", p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("product", "delete")
	respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}
