package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tenantscore/rental-admin/internal/api/middleware"
	"github.com/tenantscore/rental-admin/internal/core/domain"
	"github.com/tenantscore/rental-admin/internal/core/ports"
)

type stubPropertyService struct {
	createFn func(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error)
	getFn    func(ctx context.Context, id string) (*domain.Property, error)
	deleteFn func(ctx context.Context, id, ownerID string) error
}

func (s *stubPropertyService) Create(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, input)
}

func (s *stubPropertyService) List(ctx context.Context) ([]domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.getFn(ctx, id)
}

func (s *stubPropertyService) Update(ctx context.Context, id, ownerID string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Delete(ctx context.Context, id, ownerID string) error {
	return s.deleteFn(ctx, id, ownerID)
}

func TestPropertyHandler_Create_UsesIdentityAsOwner(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
			if input.OwnerID != "landlord-1" {
				t.Fatalf("expected owner from identity, got %s", input.OwnerID)
			}
			return &domain.Property{ID: "prop-1", Name: input.Name, OwnerID: input.OwnerID}, nil
		},
	}
	handler := NewPropertyHandler(stub)

	_, c, rec := newTestContext(t, http.MethodPost, "/properties",
		`{"name":"Palm Court","location":"Lagos","phone":"0800-000"}`)
	c.Set("identity", middleware.Identity{UserID: "landlord-1", Role: "landlord"})

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	property, ok := resp["property"].(map[string]any)
	if !ok || property["id"] != "prop-1" {
		t.Fatalf("unexpected property payload: %+v", resp["property"])
	}
}

func TestPropertyHandler_Create_MissingFields(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPropertyHandler(stub)

	e, c, rec := newTestContext(t, http.MethodPost, "/properties", `{"name":"Palm Court"}`)
	c.Set("identity", middleware.Identity{UserID: "landlord-1", Role: "landlord"})

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPropertyHandler_Get_NotFoundPropagates(t *testing.T) {
	stub := &stubPropertyService{
		getFn: func(ctx context.Context, id string) (*domain.Property, error) {
			return nil, domain.ErrPropertyNotFound
		},
	}
	handler := NewPropertyHandler(stub)

	_, c, _ := newTestContext(t, http.MethodGet, "/properties/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyHandler_Delete_ForeignOwnerPropagates(t *testing.T) {
	stub := &stubPropertyService{
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			if ownerID != "landlord-a" {
				t.Fatalf("expected identity owner, got %s", ownerID)
			}
			return domain.ErrNotPropertyOwner
		},
	}
	handler := NewPropertyHandler(stub)

	_, c, _ := newTestContext(t, http.MethodDelete, "/properties/prop-1", "")
	c.SetParamNames("id")
	c.SetParamValues("prop-1")
	c.Set("identity", middleware.Identity{UserID: "landlord-a", Role: "landlord"})

	if err := handler.Delete(c); !errors.Is(err, domain.ErrNotPropertyOwner) {
		t.Fatalf("expected ErrNotPropertyOwner, got %v", err)
	}
}
