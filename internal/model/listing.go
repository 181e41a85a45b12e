package model

import (
	"slices"
	"time"
)

// Point value bounds for a listing.
const (
	MinPointValue = 1
	MaxPointValue = 200
)

// MaxImages is the most images a single listing may carry.
const MaxImages = 5

// Condition describes the wear of a listed item.
type Condition string

// Conditions, best first. The order is implied quality, not a numeric rank.
const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
)

// Conditions lists every known condition in display order.
var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair}

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	return slices.Contains(Conditions, c)
}

// Listing represents one clothing item offered for exchange.
type Listing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Type         string    `json:"type"`
	Size         string    `json:"size"`
	Condition    Condition `json:"condition"`
	Tags         []string  `json:"tags"`
	Images       []string  `json:"images"`
	UploaderID   string    `json:"uploader_id"`
	UploaderName string    `json:"uploader_name"` // copied at creation, may go stale
	PointValue   int       `json:"point_value"`
	Available    bool      `json:"available"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// PrimaryImage returns the first image reference, or "" if there is none.
func (l Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// Visible reports whether the listing may appear in public browse results.
func (l Listing) Visible() bool {
	return l.Approved && l.Available
}

// Clone returns a copy that shares no slices with l.
func (l Listing) Clone() Listing {
	l.Tags = slices.Clone(l.Tags)
	l.Images = slices.Clone(l.Images)
	return l
}

// ListingUpdate holds optional replacements for listing fields.
// Nil fields are left untouched.
type ListingUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Size        *string    `json:"size,omitempty"`
	Condition   *Condition `json:"condition,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Images      []string   `json:"images,omitempty"`
	PointValue  *int       `json:"point_value,omitempty"`
	Available   *bool      `json:"available,omitempty"`
	Approved    *bool      `json:"approved,omitempty"`
}

// Apply merges the update into a copy of the listing.
func (u ListingUpdate) Apply(l Listing) Listing {
	l = l.Clone()
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Category != nil {
		l.Category = *u.Category
	}
	if u.Type != nil {
		l.Type = *u.Type
	}
	if u.Size != nil {
		l.Size = *u.Size
	}
	if u.Condition != nil {
		l.Condition = *u.Condition
	}
	if u.Tags != nil {
		l.Tags = slices.Clone(u.Tags)
	}
	if u.Images != nil {
		l.Images = slices.Clone(u.Images)
	}
	if u.PointValue != nil {
		l.PointValue = *u.PointValue
	}
	if u.Available != nil {
		l.Available = *u.Available
	}
	if u.Approved != nil {
		l.Approved = *u.Approved
	}
	return l
}
