package domain

import (
	"errors"
	"time"
)

var ErrPropertyNotFound = errors.New("property not found")

// ErrNotPropertyOwner covers both a missing property and an ownership
// mismatch on mutation routes. The two cases are deliberately merged so a
// landlord cannot probe which property ids exist.
var ErrNotPropertyOwner = errors.New("property not found or not owned by you")

// Property is a rental unit listed by a landlord.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
