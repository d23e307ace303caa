package model

import "time"

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusRented    ListingStatus = "rented"
	StatusPending   ListingStatus = "pending"
)

// PropertyStatus is the single current status row of a property.
// Transitions between the three states are unrestricted.
type PropertyStatus struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	PropertyID uint          `json:"property_id" gorm:"not null;uniqueIndex"`
	Status     ListingStatus `json:"status" gorm:"size:16;not null"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}
