// Package exchange implements the user-facing operations of the swap
// platform on top of the session and catalog stores: listing items,
// requesting swaps, moderation and the per-user dashboard.
package exchange

import (
	"context"
	"errors"
	"log/slog"

	"github.com/erazemk/rewear/internal/browse"
	"github.com/erazemk/rewear/internal/model"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrListingNotFound    = errors.New("listing not found")
	ErrRequestNotFound    = errors.New("exchange request not found")
	ErrListingUnavailable = errors.New("listing is not available for swaps")
	ErrOwnListing         = errors.New("cannot request your own listing")
	ErrInsufficientPoints = errors.New("not enough points for this listing")
	ErrInvalidOffer       = errors.New("invalid swap offer")
)

// Sessions exposes the current identity.
type Sessions interface {
	Current() (model.Identity, bool)
}

// Catalog is the subset of the catalog store the service works with.
type Catalog interface {
	Listings() []model.Listing
	Listing(id string) (model.Listing, bool)
	AddListing(l model.Listing) model.Listing
	UpdateListing(id string, u model.ListingUpdate) (model.Listing, bool)
	DeleteListing(id string) bool
	ExchangeRequests() []model.ExchangeRequest
	ExchangeRequest(id string) (model.ExchangeRequest, bool)
	AddExchangeRequest(r model.ExchangeRequest) (model.ExchangeRequest, error)
	Transition(id string, to model.RequestStatus, actor model.Identity) (model.ExchangeRequest, error)
}

// Service carries out exchange operations for the current identity.
type Service struct {
	sessions Sessions
	catalog  Catalog
}

// NewService wires a service to its stores.
func NewService(sessions Sessions, catalog Catalog) *Service {
	return &Service{sessions: sessions, catalog: catalog}
}

// BrowseResult is one browse page: the matching listings and how many
// listings are visible before filtering.
type BrowseResult struct {
	Listings []model.Listing `json:"listings"`
	Visible  int             `json:"visible"`
}

// Browse runs the browse query over the current catalog snapshot.
func (s *Service) Browse(c browse.Criteria) BrowseResult {
	snapshot := s.catalog.Listings()
	return BrowseResult{
		Listings: browse.Query(snapshot, c),
		Visible:  browse.Visible(snapshot),
	}
}

// Facets returns the browse filter choices for the current catalog.
func (s *Service) Facets() browse.Facets {
	return browse.FacetsOf(s.catalog.Listings())
}

// Listing returns a single listing by ID.
func (s *Service) Listing(id string) (model.Listing, error) {
	l, ok := s.catalog.Listing(id)
	if !ok {
		return model.Listing{}, ErrListingNotFound
	}
	return l, nil
}

// ListItem creates a listing owned by the current identity. Listings from
// administrators are approved immediately; everyone else's wait for review.
func (s *Service) ListItem(ctx context.Context, in ListingInput) (model.Listing, error) {
	me, err := s.current()
	if err != nil {
		return model.Listing{}, err
	}

	in.normalize()
	if err := validate(in); err != nil {
		return model.Listing{}, err
	}

	l := s.catalog.AddListing(model.Listing{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Type:         in.Type,
		Size:         in.Size,
		Condition:    model.Condition(in.Condition),
		Tags:         ParseTags(in.Tags),
		Images:       in.Images,
		UploaderID:   me.ID,
		UploaderName: me.Name,
		PointValue:   in.PointValue,
		Available:    true,
		Approved:     me.IsAdmin,
	})

	slog.InfoContext(ctx, "listing created", "user", me.Email, "listing", l.ID, "approved", l.Approved)
	return l, nil
}

// RemoveListing deletes a listing. Only its uploader or an administrator
// may do so.
func (s *Service) RemoveListing(ctx context.Context, id string) error {
	me, err := s.current()
	if err != nil {
		return err
	}
	l, ok := s.catalog.Listing(id)
	if !ok {
		return ErrListingNotFound
	}
	if l.UploaderID != me.ID && !me.IsAdmin {
		return ErrForbidden
	}

	s.catalog.DeleteListing(id)
	slog.InfoContext(ctx, "listing removed", "user", me.Email, "listing", id)
	return nil
}

// Offer is what the requester gives in return: either points or one of
// their own listings.
type Offer struct {
	UsePoints        bool   `json:"use_points"`
	OfferedListingID string `json:"offered_listing_id,omitempty"`
}

// RequestSwap creates a pending exchange request for a listing. With the
// points path the requester's balance must cover the listing's point value;
// nothing is debited until the swap is settled.
func (s *Service) RequestSwap(ctx context.Context, listingID string, o Offer) (model.ExchangeRequest, error) {
	me, err := s.current()
	if err != nil {
		return model.ExchangeRequest{}, err
	}

	target, ok := s.catalog.Listing(listingID)
	if !ok {
		return model.ExchangeRequest{}, ErrListingNotFound
	}
	if !target.Visible() {
		return model.ExchangeRequest{}, ErrListingUnavailable
	}
	if target.UploaderID == me.ID {
		return model.ExchangeRequest{}, ErrOwnListing
	}

	req := model.ExchangeRequest{
		RequesterID:   me.ID,
		RequesterName: me.Name,
		ListingID:     target.ID,
		ListingTitle:  target.Title,
	}

	switch {
	case o.UsePoints && o.OfferedListingID != "":
		return model.ExchangeRequest{}, ErrInvalidOffer
	case o.UsePoints:
		if me.Points < target.PointValue {
			return model.ExchangeRequest{}, ErrInsufficientPoints
		}
		req.UsesPoints = true
		req.PointsOffered = target.PointValue
	case o.OfferedListingID != "":
		offered, ok := s.catalog.Listing(o.OfferedListingID)
		if !ok || offered.UploaderID != me.ID || !offered.Available || offered.ID == target.ID {
			return model.ExchangeRequest{}, ErrInvalidOffer
		}
		req.OfferedListingID = offered.ID
		req.OfferedListingTitle = offered.Title
	default:
		return model.ExchangeRequest{}, ErrInvalidOffer
	}

	created, err := s.catalog.AddExchangeRequest(req)
	if err != nil {
		return model.ExchangeRequest{}, errors.Join(ErrInvalidOffer, err)
	}

	slog.InfoContext(ctx, "swap requested", "user", me.Email, "listing", target.ID,
		"request", created.ID, "points", created.PointsOffered, "offered", created.OfferedListingID)
	return created, nil
}

// TransitionRequest moves an exchange request forward on behalf of the
// current identity.
func (s *Service) TransitionRequest(ctx context.Context, id string, to model.RequestStatus) (model.ExchangeRequest, error) {
	me, err := s.current()
	if err != nil {
		return model.ExchangeRequest{}, err
	}
	if _, ok := s.catalog.ExchangeRequest(id); !ok {
		return model.ExchangeRequest{}, ErrRequestNotFound
	}
	return s.catalog.Transition(id, to, me)
}

// Requests returns the exchange requests involving the current identity,
// either as requester or as owner of the requested listing.
func (s *Service) Requests() ([]model.ExchangeRequest, error) {
	me, err := s.current()
	if err != nil {
		return nil, err
	}
	return s.involving(me), nil
}

func (s *Service) involving(me model.Identity) []model.ExchangeRequest {
	owned := map[string]bool{}
	for _, l := range s.catalog.Listings() {
		if l.UploaderID == me.ID {
			owned[l.ID] = true
		}
	}

	out := []model.ExchangeRequest{}
	for _, r := range s.catalog.ExchangeRequests() {
		if r.RequesterID == me.ID || owned[r.ListingID] {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) current() (model.Identity, error) {
	me, ok := s.sessions.Current()
	if !ok {
		return model.Identity{}, ErrNotAuthenticated
	}
	return me, nil
}
