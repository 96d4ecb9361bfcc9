package models

import (
	"time"

	"gorm.io/gorm"
)

// Canonical role values. Validated once at the API boundary; every
// comparison elsewhere uses these constants.
const (
	RoleBorrower = "borrower"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// ValidRole reports whether role is one of the closed set.
func ValidRole(role string) bool {
	return role == RoleBorrower || role == RoleManager || role == RoleAdmin
}

// User is the server-side record for an authenticated account. The
// identity provider owns credentials; this row is upserted by email on
// every token exchange.
type User struct {
	gorm.Model
	Email       string    `gorm:"unique;not null" json:"email"`
	Name        string    `gorm:"default:''" json:"name"`
	PhotoURL    string    `gorm:"default:''" json:"photoURL"`
	Role        string    `gorm:"default:'borrower'" json:"role"`
	Status      string    `gorm:"default:'active'" json:"status"`
	LastLoginAt time.Time `json:"lastLoginAt"`
	IsDeleted   bool      `gorm:"default:false" json:"-"`
}
