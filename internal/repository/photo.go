package repository

import (
	"context"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
)

type PhotoRepository interface {
	ListByProperty(ctx context.Context, propertyID uint) ([]model.PropertyPhoto, error)
	Create(ctx context.Context, photo *model.PropertyPhoto) error
	// GetForProperty only matches a photo that belongs to the given property.
	GetForProperty(ctx context.Context, propertyID, photoID uint) (*model.PropertyPhoto, error)
	Delete(ctx context.Context, id uint) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) ListByProperty(ctx context.Context, propertyID uint) ([]model.PropertyPhoto, error) {
	var photos []model.PropertyPhoto
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("id asc").Find(&photos).Error
	return photos, err
}

func (r *photoRepository) Create(ctx context.Context, photo *model.PropertyPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) GetForProperty(ctx context.Context, propertyID, photoID uint) (*model.PropertyPhoto, error) {
	var photo model.PropertyPhoto
	err := r.db.WithContext(ctx).Where("id = ? AND property_id = ?", photoID, propertyID).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PropertyPhoto{}, id).Error
}
