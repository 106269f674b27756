package models

import "time"

// Role represents a portal user's role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleLP    Role = "lp"
)

// User represents a portal user. Sign-in is normally via emailed magic
// links; admins may additionally carry a bcrypt password hash for the
// fallback password login.
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Role             Role       `gorm:"not null;default:'lp'" json:"role"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Password         string     `json:"-"` // empty for magic-link-only users
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}
