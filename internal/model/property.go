package model

import "time"

// Property Types
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
)

type Property struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"size:100;not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Price        float64      `json:"price" gorm:"type:numeric(10,2);not null"`
	Address      string       `json:"address" gorm:"size:255;not null"`
	City         string       `json:"city" gorm:"size:100;not null;index"`
	State        string       `json:"state" gorm:"size:100;not null"`
	ZipCode      string       `json:"zip_code" gorm:"size:10;not null"`
	PropertyType PropertyType `json:"property_type" gorm:"size:16;not null"`
	Bedrooms     int          `json:"bedrooms" gorm:"not null"`
	Bathrooms    int          `json:"bathrooms" gorm:"not null"`
	SquareFeet   *int         `json:"square_feet,omitempty"`
	BrokerID     uint         `json:"broker_id" gorm:"not null;index"`
	CreatedAt    time.Time    `json:"created_at"`

	// Relations
	Broker User            `json:"-" gorm:"foreignKey:BrokerID;constraint:OnDelete:CASCADE"`
	Photos []PropertyPhoto `json:"photos,omitempty" gorm:"foreignKey:PropertyID"`
	Status *PropertyStatus `json:"status,omitempty" gorm:"foreignKey:PropertyID"`
}

type PropertyPhoto struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"property_id" gorm:"not null;index"`
	PhotoURL   string    `json:"photo_url" gorm:"type:text;not null"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// ChildModels are the tables that hang off a property and go away with it.
func ChildModels() []interface{} {
	return []interface{}{
		&PropertyPhoto{},
		&PropertyStatus{},
		&Inquiry{},
		&Like{},
		&Comment{},
	}
}

// AllModels is the migration order: parents before children.
func AllModels() []interface{} {
	return append([]interface{}{&User{}, &Property{}}, ChildModels()...)
}
