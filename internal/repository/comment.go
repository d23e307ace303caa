package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentapp_backend/internal/model"
)

type CommentRepository interface {
	ListByProperty(ctx context.Context, propertyID uint) ([]model.Comment, error)
	GetForProperty(ctx context.Context, propertyID, commentID uint) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	UpdateContent(ctx context.Context, comment *model.Comment, content string) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByProperty(ctx context.Context, propertyID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("id asc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) GetForProperty(ctx context.Context, propertyID, commentID uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("id = ? AND property_id = ?", commentID, propertyID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// UpdateContent saves through the model so the blank-content hook sees the new text.
func (r *commentRepository) UpdateContent(ctx context.Context, comment *model.Comment, content string) error {
	comment.Content = content
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
