package serializer

import "rentapp_backend/internal/model"

// Keys no client may write on any entity.
var ServerManagedFields = []string{"id", "created_at", "updated_at", "uploaded_at"}

var userSecretFields = []string{"password", "password_hash"}

type RegisterRequest struct {
	Username    string     `json:"username" validate:"required,notblank,min=3,max=50"`
	Email       string     `json:"email" validate:"required,email,max=120"`
	Password    string     `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,max=15,digits"`
	Role        model.Role `json:"role" validate:"omitempty,oneof=admin broker customer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Username    *string     `json:"username" validate:"omitempty,notblank,min=3,max=50"`
	Email       *string     `json:"email" validate:"omitempty,email,max=120"`
	PhoneNumber *string     `json:"phone_number" validate:"omitempty,max=15,digits"`
	Role        *model.Role `json:"role" validate:"omitempty,oneof=admin broker customer"`
}

// UserUpdateRejected are the keys a user update may never carry.
func UserUpdateRejected() []string {
	return append(append([]string{}, ServerManagedFields...), userSecretFields...)
}

func (r *UserUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Username != nil {
		updates["username"] = *r.Username
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.PhoneNumber != nil {
		updates["phone_number"] = *r.PhoneNumber
	}
	if r.Role != nil {
		updates["role"] = *r.Role
	}
	return updates
}

type PropertyRequest struct {
	Title        string             `json:"title" validate:"required,notblank,max=100"`
	Description  string             `json:"description"`
	Price        float64            `json:"price" validate:"price"`
	Address      string             `json:"address" validate:"required,notblank,max=255"`
	City         string             `json:"city" validate:"required,notblank,max=100"`
	State        string             `json:"state" validate:"required,notblank,max=100"`
	ZipCode      string             `json:"zip_code" validate:"required,notblank,max=10"`
	PropertyType model.PropertyType `json:"property_type" validate:"required,oneof=apartment house"`
	Bedrooms     *int               `json:"bedrooms" validate:"required,min=0"`
	Bathrooms    *int               `json:"bathrooms" validate:"required,min=0"`
	SquareFeet   *int               `json:"square_feet" validate:"omitempty,min=0"`
	BrokerID     *uint              `json:"broker_id" validate:"omitempty"`
}

func (r *PropertyRequest) Model(brokerID uint) *model.Property {
	return &model.Property{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		PropertyType: r.PropertyType,
		Bedrooms:     *r.Bedrooms,
		Bathrooms:    *r.Bathrooms,
		SquareFeet:   r.SquareFeet,
		BrokerID:     brokerID,
	}
}

type PropertyUpdateRequest struct {
	Title        *string             `json:"title" validate:"omitempty,notblank,max=100"`
	Description  *string             `json:"description"`
	Price        *float64            `json:"price" validate:"omitempty,price"`
	Address      *string             `json:"address" validate:"omitempty,notblank,max=255"`
	City         *string             `json:"city" validate:"omitempty,notblank,max=100"`
	State        *string             `json:"state" validate:"omitempty,notblank,max=100"`
	ZipCode      *string             `json:"zip_code" validate:"omitempty,notblank,max=10"`
	PropertyType *model.PropertyType `json:"property_type" validate:"omitempty,oneof=apartment house"`
	Bedrooms     *int                `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *int                `json:"bathrooms" validate:"omitempty,min=0"`
	SquareFeet   *int                `json:"square_feet" validate:"omitempty,min=0"`
	BrokerID     *uint               `json:"broker_id"`
}

func (r *PropertyUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Address != nil {
		updates["address"] = *r.Address
	}
	if r.City != nil {
		updates["city"] = *r.City
	}
	if r.State != nil {
		updates["state"] = *r.State
	}
	if r.ZipCode != nil {
		updates["zip_code"] = *r.ZipCode
	}
	if r.PropertyType != nil {
		updates["property_type"] = *r.PropertyType
	}
	if r.Bedrooms != nil {
		updates["bedrooms"] = *r.Bedrooms
	}
	if r.Bathrooms != nil {
		updates["bathrooms"] = *r.Bathrooms
	}
	if r.SquareFeet != nil {
		updates["square_feet"] = *r.SquareFeet
	}
	if r.BrokerID != nil {
		updates["broker_id"] = *r.BrokerID
	}
	return updates
}

type PhotoRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,url,weburl,max=2048"`
}

type StatusRequest struct {
	Status model.ListingStatus `json:"status" validate:"required,oneof=available rented pending"`
}

type InquiryRequest struct {
	Message string `json:"message" validate:"required,notblank,max=1000"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=1000"`
}
