package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/ports"
)

type stubPropertyRepo struct {
	properties map[string]*domain.Property
	nextID     int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func cloneProperty(p *domain.Property) *domain.Property {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPropertyRepo) Create(_ context.Context, property *domain.Property) (*domain.Property, error) {
	r.nextID++
	created := cloneProperty(property)
	created.ID = fmt.Sprintf("prop-%d", r.nextID)
	r.properties[created.ID] = cloneProperty(created)
	return created, nil
}

func (r *stubPropertyRepo) FindAll(_ context.Context) ([]domain.Property, error) {
	out := make([]domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	if p, ok := r.properties[id]; ok {
		return cloneProperty(p), nil
	}
	return nil, domain.ErrPropertyNotFound
}

func (r *stubPropertyRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.Property, error) {
	out := make([]domain.Property, 0)
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) FindByIDAndOwner(_ context.Context, id, ownerID string) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotPropertyOwner
	}
	return cloneProperty(p), nil
}

func (r *stubPropertyRepo) Update(_ context.Context, property *domain.Property) (*domain.Property, error) {
	if _, ok := r.properties[property.ID]; !ok {
		return nil, domain.ErrPropertyNotFound
	}
	r.properties[property.ID] = cloneProperty(property)
	return cloneProperty(property), nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

func TestPropertyService_CreateAndGet(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewPropertyService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreatePropertyInput{
		Name: "Palm Court", Location: "Lagos", Phone: "0800-000", OwnerID: "landlord-a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Palm Court" || got.OwnerID != "landlord-a" {
		t.Fatalf("unexpected property: %+v", got)
	}

	if _, err := svc.Get(ctx, "missing"); err != domain.ErrPropertyNotFound {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyService_Update_PartialAndOwnership(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewPropertyService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreatePropertyInput{
		Name: "Palm Court", Location: "Lagos", Phone: "0800-000", OwnerID: "landlord-a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Non-owner cannot update even with a valid id.
	if _, err := svc.Update(ctx, created.ID, "landlord-b", ports.UpdatePropertyInput{Name: "Stolen"}); err != domain.ErrNotPropertyOwner {
		t.Fatalf("expected ErrNotPropertyOwner, got %v", err)
	}

	// Owner updates only the fields provided.
	updated, err := svc.Update(ctx, created.ID, "landlord-a", ports.UpdatePropertyInput{Location: "Abuja"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Palm Court" || updated.Location != "Abuja" || updated.Phone != "0800-000" {
		t.Fatalf("unexpected partial update result: %+v", updated)
	}
}

func TestPropertyService_Delete_RejectsNonOwner(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewPropertyService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreatePropertyInput{
		Name: "Palm Court", Location: "Lagos", Phone: "0800-000", OwnerID: "landlord-a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "landlord-b"); err != domain.ErrNotPropertyOwner {
		t.Fatalf("expected ErrNotPropertyOwner, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "landlord-a"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != domain.ErrPropertyNotFound {
		t.Fatalf("expected property gone, got %v", err)
	}
}

func TestPropertyService_ListByOwner(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewPropertyService(repo, zerolog.Nop())
	ctx := context.Background()

	for _, owner := range []string{"landlord-a", "landlord-a", "landlord-b"} {
		if _, err := svc.Create(ctx, ports.CreatePropertyInput{
			Name: "Unit", Location: "Lagos", Phone: "0800-000", OwnerID: owner,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	mine, err := svc.ListByOwner(ctx, "landlord-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(mine))
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(all))
	}
}
