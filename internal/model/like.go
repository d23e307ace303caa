package model

import "time"

// Like is unique per (property, user); the composite index backs that up under concurrency.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;uniqueIndex:idx_property_user_like"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_property_user_like"`
	CreatedAt  time.Time `json:"created_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	User     User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
