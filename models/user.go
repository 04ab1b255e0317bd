package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

type User struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string   `json:"name"`
	Email     string   `gorm:"unique;not null" json:"email"`
	Role      UserRole `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Password  string   `gorm:"not null" json:"-"` // bcrypt-style digest, never serialized
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may access the admin console routes.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
