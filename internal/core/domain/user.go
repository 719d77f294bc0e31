package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidRole = errors.New("invalid role")
var ErrPasswordResetRequired = errors.New("password reset required")
var ErrResetNotRequired = errors.New("password change is not required")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the three known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleLandlord || role == RoleTenant
}

// User models an account in the system. The password hash never leaves the
// process: it is excluded from every JSON projection.
type User struct {
	ID                    string    `json:"id"`
	Firstname             string    `json:"firstname"`
	Middlename            string    `json:"middlename,omitempty"`
	Surname               string    `json:"surname"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone,omitempty"`
	Role                  string    `json:"role"`
	PasswordHash          string    `json:"-"`
	PasswordResetRequired bool      `json:"password_reset_required"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
