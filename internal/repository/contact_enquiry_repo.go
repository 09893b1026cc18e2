package repository

import (
	"context"
	"time"

	"catalog/internal/models"

	"gorm.io/gorm"
)

type EnquiryFilter struct {
	Status string
	Limit  int
}

type ContactEnquiryRepository struct {
	db *gorm.DB
}

func NewContactEnquiryRepository(db *gorm.DB) *ContactEnquiryRepository {
	return &ContactEnquiryRepository{db: db}
}

func (r *ContactEnquiryRepository) scoped(ctx context.Context, f EnquiryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.ContactEnquiry{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *ContactEnquiryRepository) FindAll(ctx context.Context, f EnquiryFilter) ([]models.ContactEnquiry, error) {
	list := []models.ContactEnquiry{}
	q := r.scoped(ctx, f).Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *ContactEnquiryRepository) FindByID(ctx context.Context, id string) (*models.ContactEnquiry, error) {
	var e models.ContactEnquiry
	ok, err := take(r.db.WithContext(ctx).Where("id = ?", id), &e)
	if !ok {
		return nil, err
	}
	return &e, nil
}

func (r *ContactEnquiryRepository) Create(ctx context.Context, e *models.ContactEnquiry) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "Duplicate enquiry")
}

func (r *ContactEnquiryRepository) UpdateStatus(ctx context.Context, id, status string) (*models.ContactEnquiry, error) {
	err := r.db.WithContext(ctx).Model(&models.ContactEnquiry{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ContactEnquiryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactEnquiry{}).Error
}

func (r *ContactEnquiryRepository) Count(ctx context.Context, f EnquiryFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

// ByDateRange buckets enquiries created in the last days days per UTC day.
func (r *ContactEnquiryRepository) ByDateRange(ctx context.Context, days int) ([]TimeSeriesPoint, error) {
	var rows []models.ContactEnquiry
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
