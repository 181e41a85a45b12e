// Package browse filters and orders listings for the public browse view.
// Everything here is a pure function of its inputs.
package browse

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erazemk/rewear/internal/model"
)

// All is the filter value that matches every category, condition or size.
const All = "All"

// SortKey selects the result order.
type SortKey string

// Sort keys.
const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortPointsAsc  SortKey = "points-asc"
	SortPointsDesc SortKey = "points-desc"
	SortTitle      SortKey = "title"
)

// ParseSort maps a user-supplied sort name to a SortKey. An empty name
// means newest first.
func ParseSort(s string) (SortKey, error) {
	switch s {
	case "", string(SortNewest):
		return SortNewest, nil
	case string(SortOldest):
		return SortOldest, nil
	case string(SortPointsAsc), "points-low":
		return SortPointsAsc, nil
	case string(SortPointsDesc), "points-high":
		return SortPointsDesc, nil
	case string(SortTitle):
		return SortTitle, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Criteria are the browse inputs. Empty or All filter values match everything.
type Criteria struct {
	Search    string
	Category  string
	Condition string
	Size      string
	Sort      SortKey
}

// Query returns the visible listings matching c, in the order c.Sort asks
// for. Ties keep their relative input order. The input is not modified.
func Query(listings []model.Listing, c Criteria) []model.Listing {
	term := strings.ToLower(c.Search)

	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.Visible() {
			continue
		}
		if !matchesText(l, term) {
			continue
		}
		if !matches(c.Category, l.Category) || !matches(c.Condition, string(l.Condition)) || !matches(c.Size, l.Size) {
			continue
		}
		out = append(out, l)
	}

	if cmp := comparator(c.Sort); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Visible counts listings that browse can show at all, before filtering.
func Visible(listings []model.Listing) int {
	n := 0
	for _, l := range listings {
		if l.Visible() {
			n++
		}
	}
	return n
}

// Facets are the filter choices offered to the browse view.
type Facets struct {
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
	Sizes      []string `json:"sizes"`
}

// FacetsOf collects All plus the distinct categories and sizes of visible
// listings, in first-seen order. Conditions are the fixed list.
func FacetsOf(listings []model.Listing) Facets {
	f := Facets{
		Categories: []string{All},
		Conditions: []string{All},
		Sizes:      []string{All},
	}
	for _, c := range model.Conditions {
		f.Conditions = append(f.Conditions, string(c))
	}
	for _, l := range listings {
		if !l.Visible() {
			continue
		}
		if !slices.Contains(f.Categories, l.Category) {
			f.Categories = append(f.Categories, l.Category)
		}
		if !slices.Contains(f.Sizes, l.Size) {
			f.Sizes = append(f.Sizes, l.Size)
		}
	}
	return f
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// matchesText expects term already lowercased.
func matchesText(l model.Listing, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(l.Title), term) || strings.Contains(strings.ToLower(l.Description), term) {
		return true
	}
	return slices.ContainsFunc(l.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

func comparator(key SortKey) func(a, b model.Listing) int {
	switch key {
	case SortNewest:
		return func(a, b model.Listing) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortOldest:
		return func(a, b model.Listing) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortPointsAsc:
		return func(a, b model.Listing) int { return a.PointValue - b.PointValue }
	case SortPointsDesc:
		return func(a, b model.Listing) int { return b.PointValue - a.PointValue }
	case SortTitle:
		// A Collator is not safe for concurrent use; one per query.
		col := collate.New(language.English)
		return func(a, b model.Listing) int { return col.CompareString(a.Title, b.Title) }
	}
	return nil
}
