package handler

import (
	"net/http"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc     *service.CategoryService
	navbars *service.NavbarCategoryService
}

func NewCategoryHandler(svc *service.CategoryService, navbars *service.NavbarCategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc, navbars: navbars}
}

// ListActive handles GET /api/category. Categories under an inactive navbar
// category are hidden.
func (h *CategoryHandler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

// ByNavbar handles GET /api/category/by-navbar/:slug.
func (h *CategoryHandler) ByNavbar(c *gin.Context) {
	ctx := c.Request.Context()
	navbar, err := h.navbars.ActiveBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.ActiveUnderNavbar(ctx, navbar.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, gin.H{"navbarCategory": navbar.Summary()})
}

// List handles GET /api/admin/category?navbarCategory=<id>.
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), repository.CategoryFilter{
		NavbarCategoryID: c.Query("navbarCategory"),
		IsActive:         activeFilter(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("category", "create")
	respondMessage(c, http.StatusCreated, "Category created successfully", cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req models.CategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("category", "update")
	respondMessage(c, http.StatusOK, "Category updated successfully", cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("category", "delete")
	respondMessage(c, http.StatusOK, "Category deleted successfully", nil)
}
