package session

import (
	"time"

	"github.com/erazemk/rewear/internal/model"
)

// SeedIdentities returns the demo accounts the store starts with.
func SeedIdentities() []model.Identity {
	return []model.Identity{
		{
			ID:       "1",
			Email:    "admin@rewear.com",
			Name:     "Admin User",
			Points:   500,
			IsAdmin:  true,
			JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Email:    "user@example.com",
			Name:     "Jane Smith",
			Points:   250,
			JoinedAt: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}
