package service

import (
	"context"

	"catalog/internal/domain"
	"catalog/internal/models"
	"catalog/internal/repository"
)

type DashboardOverview struct {
	TotalProducts           int64 `json:"totalProducts"`
	ActiveProducts          int64 `json:"activeProducts"`
	InactiveProducts        int64 `json:"inactiveProducts"`
	TotalCategories         int64 `json:"totalCategories"`
	TotalSubCategories      int64 `json:"totalSubCategories"`
	TotalNavbarCategories   int64 `json:"totalNavbarCategories"`
	TotalProductEnquiries   int64 `json:"totalProductEnquiries"`
	PendingProductEnquiries int64 `json:"pendingProductEnquiries"`
	TotalContactEnquiries   int64 `json:"totalContactEnquiries"`
	PendingContactEnquiries int64 `json:"pendingContactEnquiries"`
}

type RecentActivity struct {
	ProductEnquiries []models.ProductEnquiry `json:"productEnquiries"`
	ContactEnquiries []models.ContactEnquiry `json:"contactEnquiries"`
	Products         []models.Product        `json:"products"`
}

type DashboardCharts struct {
	ProductEnquiriesByDate []repository.TimeSeriesPoint `json:"productEnquiriesByDate"`
	ContactEnquiriesByDate []repository.TimeSeriesPoint `json:"contactEnquiriesByDate"`
	ProductsByCategory     []repository.CategoryCount   `json:"productsByCategory"`
}

type Dashboard struct {
	Overview       DashboardOverview `json:"overview"`
	RecentActivity RecentActivity    `json:"recentActivity"`
	Charts         DashboardCharts   `json:"charts"`
}

type DashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// Build gathers every dashboard figure. It stops at the first failing query.
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	r := s.repos
	d := &Dashboard{}
	o := &d.Overview
	pending := repository.EnquiryFilter{Status: domain.StatusPending}

	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&o.TotalProducts, func() (int64, error) { return r.Products.Count(ctx, repository.ProductFilter{}) }},
		{&o.ActiveProducts, func() (int64, error) {
			return r.Products.Count(ctx, repository.ProductFilter{IsActive: boolPtr(true)})
		}},
		{&o.TotalCategories, func() (int64, error) { return r.Categories.Count(ctx, repository.CategoryFilter{}) }},
		{&o.TotalSubCategories, func() (int64, error) { return r.SubCategories.Count(ctx, repository.SubCategoryFilter{}) }},
		{&o.TotalNavbarCategories, func() (int64, error) {
			return r.NavbarCategories.Count(ctx, repository.NavbarCategoryFilter{})
		}},
		{&o.TotalProductEnquiries, func() (int64, error) { return r.ProductEnquiries.Count(ctx, repository.EnquiryFilter{}) }},
		{&o.PendingProductEnquiries, func() (int64, error) { return r.ProductEnquiries.Count(ctx, pending) }},
		{&o.TotalContactEnquiries, func() (int64, error) { return r.ContactEnquiries.Count(ctx, repository.EnquiryFilter{}) }},
		{&o.PendingContactEnquiries, func() (int64, error) { return r.ContactEnquiries.Count(ctx, pending) }},
	}
	for _, c := range counts {
		n, err := c.fn()
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	o.InactiveProducts = o.TotalProducts - o.ActiveProducts

	var err error
	recent := repository.EnquiryFilter{Limit: domain.RecentActivityLimit}
	if d.RecentActivity.ProductEnquiries, err = r.ProductEnquiries.FindAll(ctx, recent); err != nil {
		return nil, err
	}
	if d.RecentActivity.ContactEnquiries, err = r.ContactEnquiries.FindAll(ctx, recent); err != nil {
		return nil, err
	}
	if d.RecentActivity.Products, err = r.Products.FindAll(ctx, repository.ProductFilter{Limit: domain.RecentActivityLimit}); err != nil {
		return nil, err
	}

	if d.Charts.ProductEnquiriesByDate, err = r.ProductEnquiries.ByDateRange(ctx, domain.ChartWindowDays); err != nil {
		return nil, err
	}
	if d.Charts.ContactEnquiriesByDate, err = r.ContactEnquiries.ByDateRange(ctx, domain.ChartWindowDays); err != nil {
		return nil, err
	}
	if d.Charts.ProductsByCategory, err = r.Products.CountByCategory(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
