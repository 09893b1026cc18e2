package repository

import (
	"context"
	"time"

	"catalog/internal/models"

	"gorm.io/gorm"
)

type ProductEnquiryRepository struct {
	db *gorm.DB
}

func NewProductEnquiryRepository(db *gorm.DB) *ProductEnquiryRepository {
	return &ProductEnquiryRepository{db: db}
}

func (r *ProductEnquiryRepository) scoped(ctx context.Context, f EnquiryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.ProductEnquiry{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ProductEnquiryRepository) FindAll(ctx context.Context, f EnquiryFilter) ([]models.ProductEnquiry, error) {
	list := []models.ProductEnquiry{}
	q := r.scoped(ctx, f).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *ProductEnquiryRepository) FindByID(ctx context.Context, id string) (*models.ProductEnquiry, error) {
	var e models.ProductEnquiry
	ok, err := take(r.db.WithContext(ctx).Where("id = ?", id), &e)
	if !ok {
		return nil, err
	}
	return &e, nil
}

func (r *ProductEnquiryRepository) Create(ctx context.Context, e *models.ProductEnquiry) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "Duplicate enquiry")
}

func (r *ProductEnquiryRepository) UpdateStatus(ctx context.Context, id, status string) (*models.ProductEnquiry, error) {
	err := r.db.WithContext(ctx).Model(&models.ProductEnquiry{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ProductEnquiryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductEnquiry{}).Error
}

func (r *ProductEnquiryRepository) Count(ctx context.Context, f EnquiryFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

func (r *ProductEnquiryRepository) ByDateRange(ctx context.Context, days int) ([]TimeSeriesPoint, error) {
	var rows []models.ProductEnquiry
	since := time.Now().UTC().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Select("created_at").Where("created_at >= ?", since).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	stamps := make([]time.Time, len(rows))
	for i, row := range rows {
		stamps[i] = row.CreatedAt
	}
	return bucketByDay(stamps), nil
}
