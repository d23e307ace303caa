package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	User     User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeSave keeps blank comments out of the table whatever path wrote them.
func (c *Comment) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.Content) == "" {
		return NewValidationError("content", "Comment content cannot be empty")
	}
	return nil
}
