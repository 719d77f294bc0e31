package ports

import (
	"context"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

// RegisterInput carries the fields an admin supplies when provisioning an
// account. The account receives a generated temporary password, never one
// chosen by the admin.
type RegisterInput struct {
	Firstname  string
	Middlename string
	Surname    string
	Email      string
	Phone      string
	Role       string
}

// RegisterResult is returned after a successful registration. TempPassword
// is the plaintext temporary credential so the caller can relay it; it is
// also delivered via the notification channel.
type RegisterResult struct {
	User         *domain.User
	TempPassword string
}

// UserService defines the account lifecycle use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	ForcePasswordChange(ctx context.Context, email, newPassword string) error
}
