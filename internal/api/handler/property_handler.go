package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantscore/rental-admin/internal/api/middleware"
	"github.com/tenantscore/rental-admin/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property CRUD.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create registers a new property owned by the calling landlord.
//
// @Summary      Create a property (landlord only)
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Property details"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	property, err := h.service.Create(c.Request().Context(), ports.CreatePropertyInput{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		OwnerID:  ident.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, propertyResponse{
		Message:  "property created successfully",
		Property: property,
	})
}

// List returns all properties.
//
// @Summary      List all properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Property
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// ListMine returns the calling landlord's own properties.
//
// @Summary      List own properties (landlord only)
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Property
// @Router       /properties/mine [get]
func (h *PropertyHandler) ListMine(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	properties, err := h.service.ListByOwner(c.Request().Context(), ident.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// Get returns a single property by id.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  domain.Property
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Update applies a partial update to an owned property.
//
// @Summary      Update a property (owning landlord only)
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Fields to update"
// @Success      200   {object}  propertyResponse
// @Failure      403   {object}  map[string]string
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	property, err := h.service.Update(c.Request().Context(), c.Param("id"), ident.UserID, ports.UpdatePropertyInput{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyResponse{
		Message:  "property updated successfully",
		Property: property,
	})
}

// Delete removes an owned property.
//
// @Summary      Delete a property (owning landlord only)
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), ident.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted successfully"})
}
