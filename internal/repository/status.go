package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentapp_backend/internal/model"
)

type StatusRepository interface {
	GetByProperty(ctx context.Context, propertyID uint) (*model.PropertyStatus, error)
	Upsert(ctx context.Context, propertyID uint, status model.ListingStatus) (*model.PropertyStatus, error)
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) GetByProperty(ctx context.Context, propertyID uint) (*model.PropertyStatus, error) {
	var status model.PropertyStatus
	if err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// Upsert writes the property's status in one statement, so concurrent callers
// still leave exactly one row behind.
func (r *statusRepository) Upsert(ctx context.Context, propertyID uint, status model.ListingStatus) (*model.PropertyStatus, error) {
	row := &model.PropertyStatus{
		PropertyID: propertyID,
		Status:     status,
		UpdatedAt:  time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.GetByProperty(ctx, propertyID)
}
