// Package repository is the persistence gateway: one interface per aggregate over a shared *gorm.DB.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
)

// UserRepository defines interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when nobody owns the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// GetByUsername returns (nil, nil) when the name is free.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.User, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.User{ID: id}).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user together with their listings and everything they wrote.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var propertyIDs []uint
		if err := tx.Model(&model.Property{}).Where("broker_id = ?", id).Pluck("id", &propertyIDs).Error; err != nil {
			return err
		}
		if err := deleteProperties(tx, propertyIDs); err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&model.Inquiry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
