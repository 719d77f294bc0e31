package ports

import (
	"context"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

// CreatePropertyInput carries the fields for a new property listing.
type CreatePropertyInput struct {
	Name     string
	Location string
	Phone    string
	OwnerID  string
}

// UpdatePropertyInput carries a partial update; empty fields keep their
// stored values.
type UpdatePropertyInput struct {
	Name     string
	Location string
	Phone    string
}

// PropertyService defines the property CRUD use cases. Mutations require
// the caller to be the owning landlord.
type PropertyService interface {
	Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, id, ownerID string, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id, ownerID string) error
}
