package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff or bank account allowed to call protected routes.
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	Role              string    `gorm:"size:16;default:admin;not null" json:"role"`
	Status            string    `gorm:"size:16;default:active;not null" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// IsActive returns true if user status is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Role constants
const (
	RoleAdmin = "admin"
	RoleBank  = "bank"
)

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidRole reports whether role is one the API knows about.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBank
}
