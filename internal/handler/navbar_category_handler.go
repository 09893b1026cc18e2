package handler

import (
	"net/http"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type NavbarCategoryHandler struct {
	svc *service.NavbarCategoryService
}

func NewNavbarCategoryHandler(svc *service.NavbarCategoryService) *NavbarCategoryHandler {
	return &NavbarCategoryHandler{svc: svc}
}

// ListActive handles GET /api/navbar-category.
func (h *NavbarCategoryHandler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

// List handles GET /api/admin/navbar-category.
func (h *NavbarCategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), repository.NavbarCategoryFilter{IsActive: activeFilter(c)})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *NavbarCategoryHandler) Get(c *gin.Context) {
	n, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, n)
}

func (h *NavbarCategoryHandler) Create(c *gin.Context) {
	var req models.NavbarCategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("navbar_category", "create")
	respondMessage(c, http.StatusCreated, "Navbar category created successfully", n)
}

func (h *NavbarCategoryHandler) Update(c *gin.Context) {
	var req models.NavbarCategoryPatch
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("navbar_category", "update")
	respondMessage(c, http.StatusOK, "Navbar category updated successfully", n)
}

func (h *NavbarCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("navbar_category", "delete")
	respondMessage(c, http.StatusOK, "Navbar category deleted successfully", nil)
}
