package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/ports"
)

// PropertyService implements property CRUD. Mutations require the caller to
// own the property; the ownership check lives in the repository lookup so a
// non-owner cannot distinguish "not yours" from "does not exist".
type PropertyService struct {
	repo ports.PropertyRepository
	log  zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, log zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, log: log}
}

func (s *PropertyService) Create(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
	now := time.Now().UTC()
	property := &domain.Property{
		Name:      input.Name,
		Location:  input.Location,
		Phone:     input.Phone,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, property)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("property_id", created.ID).Str("owner_id", created.OwnerID).Msg("property created")
	return created, nil
}

func (s *PropertyService) List(ctx context.Context) ([]domain.Property, error) {
	return s.repo.FindAll(ctx)
}

func (s *PropertyService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to an owned property. Empty input fields
// keep their stored values.
func (s *PropertyService) Update(ctx context.Context, id, ownerID string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	property, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		property.Name = input.Name
	}
	if input.Location != "" {
		property.Location = input.Location
	}
	if input.Phone != "" {
		property.Phone = input.Phone
	}
	property.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, property)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("property_id", id).Msg("property updated")
	return updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.repo.FindByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("property_id", id).Msg("property deleted")
	return nil
}
