package entities

import (
	"strings"
	"time"
)

// User is an account in the system. UserID is the natural key, stored
// uppercase; Email is stored lowercase.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// NewUser builds a user with normalized identifiers.
func NewUser(userID, name, email string) *User {
	return &User{
		UserID:    strings.ToUpper(userID),
		Name:      name,
		Email:     strings.ToLower(email),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// Role returns the role name carried into issued tokens.
func (u *User) Role() string {
	if u.IsAdmin {
		return "Admin"
	}
	return "User"
}
