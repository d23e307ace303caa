package repository

import (
	"context"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
)

type LikeRepository interface {
	ListByProperty(ctx context.Context, propertyID uint) ([]model.Like, error)
	Exists(ctx context.Context, propertyID, userID uint) (bool, error)
	// Create fails with gorm.ErrDuplicatedKey when the pair is already stored.
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, propertyID, userID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ListByProperty(ctx context.Context, propertyID uint) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("id asc").Find(&likes).Error
	return likes, err
}

func (r *likeRepository) Exists(ctx context.Context, propertyID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, propertyID, userID uint) error {
	res := r.db.WithContext(ctx).Where("property_id = ? AND user_id = ?", propertyID, userID).Delete(&model.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
