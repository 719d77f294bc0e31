package ports

import (
	"context"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

// PropertyRepository defines the record-store operations for properties.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	FindAll(ctx context.Context) ([]domain.Property, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	// FindByIDAndOwner returns domain.ErrNotPropertyOwner both when the
	// property does not exist and when it belongs to someone else.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}
