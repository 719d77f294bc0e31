package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context by
// Authenticate. Role predicates are methods here instead of loose context
// flags so every downstream check reads the same value.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool    { return i.Role == domain.RoleAdmin }
func (i Identity) IsLandlord() bool { return i.Role == domain.RoleLandlord }
func (i Identity) IsTenant() bool   { return i.Role == domain.RoleTenant }

// IdentityFrom extracts the authenticated identity from the request
// context. The second return is false when Authenticate has not run.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

func setIdentity(c echo.Context, ident Identity) {
	c.Set(identityKey, ident)
}
