package Models

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// User is a dashboard login account, not a resident record.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"not null;uniqueIndex"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Role     string `json:"role" gorm:"not null;default:resident"`
}
