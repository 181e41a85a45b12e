// Package catalog holds the in-memory listings and exchange requests.
// Nothing here is persisted; the catalog lives for the process lifetime.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/rewear/internal/model"
)

// ErrRequestNotFound is returned by Transition for an unknown request ID.
var ErrRequestNotFound = errors.New("exchange request not found")

// Store holds listings and exchange requests in insertion order. Every
// mutation replaces the affected collection as a whole, so snapshots handed
// out earlier are never modified.
type Store struct {
	mu       sync.RWMutex
	listings []model.Listing
	requests []model.ExchangeRequest

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the identifier generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithListings seeds the store with existing listings, kept as given.
func WithListings(listings []model.Listing) Option {
	return func(s *Store) {
		s.listings = make([]model.Listing, 0, len(listings))
		for _, l := range listings {
			s.listings = append(s.listings, l.Clone())
		}
	}
}

// New creates a catalog store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: model.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listings returns a snapshot of all listings in insertion order. The
// snapshot is shared and must be treated as read-only.
func (s *Store) Listings() []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listings
}

// Listing returns the listing with the given ID.
func (s *Store) Listing(id string) (model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.listings, id, listingID)
	if i < 0 {
		return model.Listing{}, false
	}
	return s.listings[i].Clone(), true
}

// AddListing stores l under a new ID and creation timestamp. Any ID or
// timestamp on l is ignored.
func (s *Store) AddListing(l model.Listing) model.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	l = l.Clone()
	l.ID = s.newID()
	l.CreatedAt = s.now().UTC()

	next := make([]model.Listing, len(s.listings), len(s.listings)+1)
	copy(next, s.listings)
	s.listings = append(next, l)
	return l.Clone()
}

// UpdateListing merges u into the listing with the given ID. It reports
// false and changes nothing if the ID is unknown.
func (s *Store) UpdateListing(id string, u model.ListingUpdate) (model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.listings, id, listingID)
	if i < 0 {
		return model.Listing{}, false
	}

	next := slices.Clone(s.listings)
	next[i] = u.Apply(next[i])
	s.listings = next
	return next[i].Clone(), true
}

// DeleteListing removes the listing with the given ID and reports whether
// it existed.
func (s *Store) DeleteListing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.listings, id, listingID)
	if i < 0 {
		return false
	}
	next := make([]model.Listing, 0, len(s.listings)-1)
	next = append(next, s.listings[:i]...)
	s.listings = append(next, s.listings[i+1:]...)
	return true
}

// ExchangeRequests returns a read-only snapshot of all exchange requests.
func (s *Store) ExchangeRequests() []model.ExchangeRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// ExchangeRequest returns the request with the given ID.
func (s *Store) ExchangeRequest(id string) (model.ExchangeRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.requests, id, requestID)
	if i < 0 {
		return model.ExchangeRequest{}, false
	}
	return s.requests[i], true
}

// AddExchangeRequest stores r as a new pending request. The offer must use
// exactly one of the points and item paths.
func (s *Store) AddExchangeRequest(r model.ExchangeRequest) (model.ExchangeRequest, error) {
	if err := r.ValidateOffer(); err != nil {
		return model.ExchangeRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.newID()
	r.CreatedAt = s.now().UTC()
	r.Status = model.StatusPending

	next := make([]model.ExchangeRequest, len(s.requests), len(s.requests)+1)
	copy(next, s.requests)
	s.requests = append(next, r)
	return r, nil
}

// UpdateExchangeRequest merges u into the request with the given ID. It
// reports false and changes nothing if the ID is unknown. No transition
// rules are applied; use Transition for status changes driven by users.
func (s *Store) UpdateExchangeRequest(id string, u model.ExchangeRequestUpdate) (model.ExchangeRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.requests, id, requestID)
	if i < 0 {
		return model.ExchangeRequest{}, false
	}

	next := slices.Clone(s.requests)
	next[i] = u.Apply(next[i])
	s.requests = next
	return next[i], true
}

// Transition moves a request to a new status on behalf of actor. Only
// forward moves are allowed: pending to accepted or rejected, accepted to
// completed. Who may trigger which move is left to the caller.
func (s *Store) Transition(id string, to model.RequestStatus, actor model.Identity) (model.ExchangeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.requests, id, requestID)
	if i < 0 {
		return model.ExchangeRequest{}, ErrRequestNotFound
	}
	if !model.CanTransition(s.requests[i].Status, to) {
		return model.ExchangeRequest{}, fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, s.requests[i].Status, to)
	}

	next := slices.Clone(s.requests)
	next[i].Status = to
	s.requests = next

	slog.Info("exchange request transitioned", "request", id, "status", to, "actor", actor.ID)
	return next[i], nil
}

func listingID(l model.Listing) string         { return l.ID }
func requestID(r model.ExchangeRequest) string { return r.ID }

func indexOf[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return key(item) == id })
}
