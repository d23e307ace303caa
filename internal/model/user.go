package model

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBroker   Role = "broker"
	RoleCustomer Role = "customer"
)

// Roles lists every valid role in declaration order.
var Roles = []Role{RoleAdmin, RoleBroker, RoleCustomer}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"column:password_hash;type:text;not null"`
	PhoneNumber string    `json:"phone_number,omitempty" gorm:"size:15"`
	Role        Role      `json:"role" gorm:"size:16;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GetPublicProfile is the outward shape of a user. It never carries the password hash.
func (u *User) GetPublicProfile() map[string]interface{} {
	profile := map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
	if u.PhoneNumber != "" {
		profile["phone_number"] = u.PhoneNumber
	}
	return profile
}
