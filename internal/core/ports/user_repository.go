package ports

import (
	"context"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

// UserRepository defines the record-store operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePassword overwrites the stored password hash without touching
	// the reset flag.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// UpdatePasswordAndClearReset sets a new hash and clears the
	// password_reset_required flag in a single conditional statement. It
	// returns domain.ErrResetNotRequired when the flag was already clear.
	UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error
}
