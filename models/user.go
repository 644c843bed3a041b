package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `json:"fullName"`
	Email    string `gorm:"uniqueIndex;size:191" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"size:32;default:customer" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
