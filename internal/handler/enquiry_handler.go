package handler

import (
	"net/http"

	"catalog/internal/metrics"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type EnquiryHandler struct {
	svc *service.EnquiryService
}

func NewEnquiryHandler(svc *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{svc: svc}
}

type statusRequest struct {
	Status string `json:"status"`
}

// SubmitContact handles POST /api/contact-enquiry.
func (h *EnquiryHandler) SubmitContact(c *gin.Context) {
	var req service.ContactEnquiryInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Enquiry submitted successfully", e)
}

// SubmitProduct handles POST /api/product-enquiry.
func (h *EnquiryHandler) SubmitProduct(c *gin.Context) {
	var req service.ProductEnquiryInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.SubmitProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Enquiry submitted successfully", e)
}

// ListContact handles GET /api/admin/contact-enquiry?status=.
func (h *EnquiryHandler) ListContact(c *gin.Context) {
	list, err := h.svc.ListContact(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *EnquiryHandler) GetContact(c *gin.Context) {
	e, err := h.svc.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, e)
}

func (h *EnquiryHandler) UpdateContact(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.UpdateContactStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("contact_enquiry", "update")
	respondMessage(c, http.StatusOK, "Enquiry updated successfully", e)
}

func (h *EnquiryHandler) DeleteContact(c *gin.Context) {
	if err := h.svc.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("contact_enquiry", "delete")
	respondMessage(c, http.StatusOK, "Enquiry deleted successfully", nil)
}

// ListProduct handles GET /api/admin/product-enquiry?status=.
func (h *EnquiryHandler) ListProduct(c *gin.Context) {
	list, err := h.svc.ListProduct(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, list, nil)
}

func (h *EnquiryHandler) GetProduct(c *gin.Context) {
	e, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, e)
}

func (h *EnquiryHandler) UpdateProduct(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.svc.UpdateProductStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("product_enquiry", "update")
	respondMessage(c, http.StatusOK, "Enquiry updated successfully", e)
}

func (h *EnquiryHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	metrics.RecordCatalogWrite("product_enquiry", "delete")
	respondMessage(c, http.StatusOK, "Enquiry deleted successfully", nil)
}
