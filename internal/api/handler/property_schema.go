package handler

import "github.com/tenantscore/rental-admin/internal/core/domain"

type createPropertyRequest struct {
	Name     string `json:"name"     validate:"required"`
	Location string `json:"location" validate:"required"`
	Phone    string `json:"phone"    validate:"required"`
}

// updatePropertyRequest is a partial update; omitted fields keep their
// stored values.
type updatePropertyRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

type propertyResponse struct {
	Message  string           `json:"message"`
	Property *domain.Property `json:"property"`
}
