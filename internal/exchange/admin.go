package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erazemk/rewear/internal/model"
)

// Tab selects which listings the moderation view shows.
type Tab string

const (
	TabPending  Tab = "pending"
	TabApproved Tab = "approved"
	TabAll      Tab = "all"
)

// ParseTab maps a query value onto a Tab. Empty selects pending.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case "":
		return TabPending, nil
	case TabPending, TabApproved, TabAll:
		return t, nil
	}
	return "", fmt.Errorf("unknown moderation tab %q", s)
}

// Moderation is the administrator's view of the catalog.
type Moderation struct {
	Tab      Tab             `json:"tab"`
	Listings []model.Listing `json:"listings"`
	Pending  int             `json:"pending"`
	Approved int             `json:"approved"`
	Total    int             `json:"total"`
}

// Moderation returns the listings for a tab together with the review
// counters.
func (s *Service) Moderation(tab Tab) (Moderation, error) {
	if _, err := s.admin(); err != nil {
		return Moderation{}, err
	}

	all := s.catalog.Listings()
	m := Moderation{Tab: tab, Listings: []model.Listing{}, Total: len(all)}
	for _, l := range all {
		if l.Approved {
			m.Approved++
		} else {
			m.Pending++
		}
		if tab == TabAll || (tab == TabApproved) == l.Approved {
			m.Listings = append(m.Listings, l)
		}
	}
	return m, nil
}

// Approve makes a listing visible in browse results.
func (s *Service) Approve(ctx context.Context, id string) (model.Listing, error) {
	approved := true
	return s.moderate(ctx, "approved", id, model.ListingUpdate{Approved: &approved})
}

// ToggleAvailability flips whether a listing can be requested.
func (s *Service) ToggleAvailability(ctx context.Context, id string) (model.Listing, error) {
	if _, err := s.admin(); err != nil {
		return model.Listing{}, err
	}
	l, ok := s.catalog.Listing(id)
	if !ok {
		return model.Listing{}, ErrListingNotFound
	}
	available := !l.Available
	return s.moderate(ctx, "availability changed", id, model.ListingUpdate{Available: &available})
}

// Reject removes a listing from the catalog.
func (s *Service) Reject(ctx context.Context, id string) error {
	me, err := s.admin()
	if err != nil {
		return err
	}
	if !s.catalog.DeleteListing(id) {
		return ErrListingNotFound
	}
	slog.InfoContext(ctx, "listing rejected", "admin", me.Email, "listing", id)
	return nil
}

func (s *Service) moderate(ctx context.Context, action, id string, u model.ListingUpdate) (model.Listing, error) {
	me, err := s.admin()
	if err != nil {
		return model.Listing{}, err
	}
	l, ok := s.catalog.UpdateListing(id, u)
	if !ok {
		return model.Listing{}, ErrListingNotFound
	}
	slog.InfoContext(ctx, "listing "+action, "admin", me.Email, "listing", id,
		"approved", l.Approved, "available", l.Available)
	return l, nil
}

func (s *Service) admin() (model.Identity, error) {
	me, err := s.current()
	if err != nil {
		return model.Identity{}, err
	}
	if !me.IsAdmin {
		return model.Identity{}, ErrForbidden
	}
	return me, nil
}
