package model

import (
	"errors"
	"fmt"
	"time"
)

// RequestStatus is the lifecycle state of an exchange request.
type RequestStatus string

// Exchange request statuses.
const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

var (
	// ErrInvalidTransition is returned for backward, skipping or unknown
	// status moves.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOfferPath is returned when a request uses both or neither of the
	// points and item paths.
	ErrOfferPath = errors.New("exactly one of points or offered item is required")
)

// transitions lists the allowed forward moves from each status.
var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ExchangeRequest represents a proposal to acquire a listing, either by
// points or by offering another listing. RequesterName, ListingTitle and
// OfferedListingTitle are copied when the request is created and are not
// refreshed afterwards.
type ExchangeRequest struct {
	ID                  string        `json:"id"`
	RequesterID         string        `json:"requester_id"`
	RequesterName       string        `json:"requester_name"`
	ListingID           string        `json:"listing_id"`
	ListingTitle        string        `json:"listing_title"`
	OfferedListingID    string        `json:"offered_listing_id,omitempty"`
	OfferedListingTitle string        `json:"offered_listing_title,omitempty"`
	UsesPoints          bool          `json:"uses_points,omitempty"`
	PointsOffered       int           `json:"points_offered,omitempty"`
	Status              RequestStatus `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
}

// ValidateOffer checks that exactly one payment path is set.
func (r ExchangeRequest) ValidateOffer() error {
	points := r.UsesPoints || r.PointsOffered != 0
	item := r.OfferedListingID != ""
	if points == item {
		return ErrOfferPath
	}
	if points && (!r.UsesPoints || r.PointsOffered <= 0) {
		return fmt.Errorf("%w: points path needs a positive amount", ErrOfferPath)
	}
	return nil
}

// ExchangeRequestUpdate holds optional replacements for request fields.
type ExchangeRequestUpdate struct {
	Status *RequestStatus `json:"status,omitempty"`
}

// Apply merges the update into a copy of the request.
func (u ExchangeRequestUpdate) Apply(r ExchangeRequest) ExchangeRequest {
	if u.Status != nil {
		r.Status = *u.Status
	}
	return r
}
