package repository

import (
	"context"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
)

// PropertyRepository defines interface for listing operations
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id uint) (*model.Property, error)
	List(ctx context.Context) ([]model.Property, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Property, error)
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_photos.id ASC")
		}).
		Preload("Status").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := r.db.WithContext(ctx).Preload("Status").Order("id asc").Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Property, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Property{ID: id}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the property and every photo, status, inquiry, like and comment under it.
func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteProperties(tx, []uint{id})
	})
}

func deleteProperties(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	for _, child := range model.ChildModels() {
		if err := tx.Where("property_id IN ?", ids).Delete(child).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&model.Property{}).Error
}
