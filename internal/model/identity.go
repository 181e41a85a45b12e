package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WelcomeBonus is the points balance granted to a freshly signed-up identity.
const WelcomeBonus = 100

// MinSecretLength is the shortest secret accepted at signup.
const MinSecretLength = 6

// ErrNegativePoints is returned when a points balance would drop below zero.
var ErrNegativePoints = errors.New("points balance cannot be negative")

// Identity represents a registered user of the exchange.
type Identity struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Points   int       `json:"points"`
	IsAdmin  bool      `json:"is_admin"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// Valid reports whether the identity carries the fields needed to act as a
// session. Used when rehydrating a persisted record.
func (i Identity) Valid() bool {
	return i.ID != "" && i.Email != "" && i.Points >= 0
}

// IdentityUpdate holds the fields of an Identity that may change after
// signup. Nil fields are left untouched.
type IdentityUpdate struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Points *int    `json:"points,omitempty"`
}

// Apply merges the update into a copy of the identity.
func (u IdentityUpdate) Apply(i Identity) (Identity, error) {
	if u.Points != nil && *u.Points < 0 {
		return i, ErrNegativePoints
	}
	if u.Name != nil {
		i.Name = *u.Name
	}
	if u.Avatar != nil {
		i.Avatar = *u.Avatar
	}
	if u.Points != nil {
		i.Points = *u.Points
	}
	return i, nil
}

// NewID returns a fresh identifier. Version 7 UUIDs are time-ordered, so
// identifiers minted by one process sort in creation order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
