package handler

import "github.com/tenantscore/rental-admin/internal/core/domain"

type registerRequest struct {
	Firstname  string `json:"firstname"  validate:"required"`
	Middlename string `json:"middlename"`
	Surname    string `json:"surname"    validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"       validate:"required"`
}

// registerResponse echoes the temporary password so an admin can relay it.
// The credential is also delivered through the notification channel.
type registerResponse struct {
	Message      string       `json:"message"`
	User         *domain.User `json:"user"`
	TempPassword string       `json:"temp_password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginUser is the minimal projection returned with a fresh token.
type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

type forcePasswordChangeRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}
