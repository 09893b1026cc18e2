package handler

import (
	"net/http"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type SubCategoryHandler struct {
	svc        *service.SubCategoryService
	categories *service.CategoryService
}

func NewSubCategoryHandler(svc *service.SubCategoryService, categories *service.CategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{svc: svc, categories: categories}
}

// ListActive handles GET /api/subcategory.
func (h *SubCategoryHandler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

// ByCategory handles GET /api/subcategory/by-category/:slug.
func (h *SubCategoryHandler) ByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	cat, err := h.categories.ActiveBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.ActiveUnderCategory(ctx, cat.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, gin.H{"category": cat.Summary()})
}

// List handles GET /api/admin/subcategory?category=<id>.
func (h *SubCategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), repository.SubCategoryFilter{
		CategoryID: c.Query("category"),
		IsActive:   activeFilter(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *SubCategoryHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, s)
}

func (h *SubCategoryHandler) Create(c *gin.Context) {
	var req models.SubCategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("subcategory", "create")
	respondMessage(c, http.StatusCreated, "Subcategory created successfully", s)
}

func (h *SubCategoryHandler) Update(c *gin.Context) {
	var req models.SubCategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("subcategory", "update")
	respondMessage(c, http.StatusOK, "Subcategory updated successfully", s)
}

func (h *SubCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("subcategory", "delete")
	respondMessage(c, http.StatusOK, "Subcategory deleted successfully", nil)
}
