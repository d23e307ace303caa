package repository

import (
	"context"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
)

type InquiryRepository interface {
	ListByProperty(ctx context.Context, propertyID uint) ([]model.Inquiry, error)
	Create(ctx context.Context, inquiry *model.Inquiry) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) ListByProperty(ctx context.Context, propertyID uint) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("id asc").Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}
