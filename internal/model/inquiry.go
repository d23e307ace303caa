package model

import "time"

type Inquiry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Customer User     `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}
