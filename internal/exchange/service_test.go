package exchange

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/browse"
	"github.com/erazemk/rewear/internal/catalog"
	"github.com/erazemk/rewear/internal/model"
)

type fakeSessions struct {
	current *model.Identity
}

func (f *fakeSessions) Current() (model.Identity, bool) {
	if f.current == nil {
		return model.Identity{}, false
	}
	return *f.current, true
}

var (
	jane  = model.Identity{ID: "2", Email: "user@example.com", Name: "Jane Smith", Points: 250}
	admin = model.Identity{ID: "1", Email: "admin@rewear.com", Name: "Admin User", Points: 500, IsAdmin: true}
	bob   = model.Identity{ID: "3", Email: "bob@example.com", Name: "Bob", Points: 30}
)

func newTestService(t *testing.T, as *model.Identity) (*Service, *fakeSessions, *catalog.Store) {
	t.Helper()
	sessions := &fakeSessions{current: as}
	cat := catalog.New(catalog.WithListings(catalog.SeedListings()))
	return NewService(sessions, cat), sessions, cat
}

func validInput() ListingInput {
	return ListingInput{
		Title:       "Linen Shirt",
		Description: "Light summer shirt",
		Category:    "Tops",
		Type:        "Shirt",
		Size:        "M",
		Condition:   string(model.ConditionGood),
		Tags:        " linen, summer ,, ",
		Images:      []string{"https://example.com/shirt.jpg"},
		PointValue:  20,
	}
}

func TestListItem(t *testing.T) {
	s, _, _ := newTestService(t, &bob)

	l, err := s.ListItem(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, l.ID)
	require.Equal(t, []string{"linen", "summer"}, l.Tags)
	require.Equal(t, "3", l.UploaderID)
	require.Equal(t, "Bob", l.UploaderName)
	require.True(t, l.Available)
	require.False(t, l.Approved)

	// Pending listings stay out of browse results.
	res := s.Browse(browse.Criteria{Search: "linen"})
	require.Empty(t, res.Listings)
}

func TestListItemByAdminIsApproved(t *testing.T) {
	s, _, _ := newTestService(t, &admin)

	l, err := s.ListItem(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, l.Approved)

	res := s.Browse(browse.Criteria{Search: "linen"})
	require.Len(t, res.Listings, 1)
}

func TestListItemValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ListingInput)
		field  string
	}{
		{"missing title", func(in *ListingInput) { in.Title = "  " }, "title"},
		{"bad condition", func(in *ListingInput) { in.Condition = "Worn" }, "condition"},
		{"no images", func(in *ListingInput) { in.Images = nil }, "images"},
		{"too many images", func(in *ListingInput) { in.Images = make([]string, 6) }, "images"},
		{"empty image", func(in *ListingInput) { in.Images = []string{""} }, "images"},
		{"zero points", func(in *ListingInput) { in.PointValue = 0 }, "point_value"},
		{"too many points", func(in *ListingInput) { in.PointValue = 201 }, "point_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, cat := newTestService(t, &jane)
			in := validInput()
			tt.modify(&in)

			_, err := s.ListItem(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tt.field)
			require.Len(t, cat.Listings(), 3)
		})
	}
}

func TestListItemBoundaryPoints(t *testing.T) {
	s, _, _ := newTestService(t, &jane)

	for _, points := range []int{model.MinPointValue, model.MaxPointValue} {
		in := validInput()
		in.PointValue = points
		_, err := s.ListItem(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestListItemRequiresIdentity(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	_, err := s.ListItem(context.Background(), validInput())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"a", "b c"}, ParseTags("a, b c ,"))
	require.Empty(t, ParseTags(""))
}

func TestRequestSwapWithPoints(t *testing.T) {
	s, _, _ := newTestService(t, &admin)

	r, err := s.RequestSwap(context.Background(), "1", Offer{UsePoints: true})
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, r.Status)
	require.True(t, r.UsesPoints)
	require.Equal(t, 45, r.PointsOffered)
	require.Equal(t, "Vintage Denim Jacket", r.ListingTitle)
	require.Equal(t, "Admin User", r.RequesterName)
}

func TestRequestSwapInsufficientPoints(t *testing.T) {
	s, _, cat := newTestService(t, &bob)

	_, err := s.RequestSwap(context.Background(), "1", Offer{UsePoints: true})
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.Empty(t, cat.ExchangeRequests())
}

func TestRequestSwapWithItem(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t, &bob)

	own, err := s.ListItem(ctx, validInput())
	require.NoError(t, err)

	r, err := s.RequestSwap(ctx, "2", Offer{OfferedListingID: own.ID})
	require.NoError(t, err)
	require.False(t, r.UsesPoints)
	require.Equal(t, own.ID, r.OfferedListingID)
	require.Equal(t, "Linen Shirt", r.OfferedListingTitle)
}

func TestRequestSwapRejected(t *testing.T) {
	tests := []struct {
		name    string
		as      model.Identity
		listing string
		offer   Offer
		want    error
	}{
		{"unknown listing", admin, "missing", Offer{UsePoints: true}, ErrListingNotFound},
		{"own listing", jane, "1", Offer{UsePoints: true}, ErrOwnListing},
		{"no offer", admin, "1", Offer{}, ErrInvalidOffer},
		{"both paths", admin, "1", Offer{UsePoints: true, OfferedListingID: "2"}, ErrInvalidOffer},
		{"offer someone else's item", admin, "1", Offer{OfferedListingID: "2"}, ErrInvalidOffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, cat := newTestService(t, &tt.as)
			_, err := s.RequestSwap(context.Background(), tt.listing, tt.offer)
			require.ErrorIs(t, err, tt.want)
			require.Empty(t, cat.ExchangeRequests())
		})
	}
}

func TestRequestSwapUnavailable(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t, &admin)

	l, err := s.ToggleAvailability(ctx, "1")
	require.NoError(t, err)
	require.False(t, l.Available)

	_, err = s.RequestSwap(ctx, "3", Offer{UsePoints: true})
	require.NoError(t, err)
	_, err = s.RequestSwap(ctx, "1", Offer{UsePoints: true})
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestRemoveListing(t *testing.T) {
	ctx := context.Background()
	s, sessions, cat := newTestService(t, &bob)

	require.ErrorIs(t, s.RemoveListing(ctx, "1"), ErrForbidden)

	sessions.current = &jane
	require.NoError(t, s.RemoveListing(ctx, "1"))
	require.ErrorIs(t, s.RemoveListing(ctx, "1"), ErrListingNotFound)

	sessions.current = &admin
	require.NoError(t, s.RemoveListing(ctx, "2"))
	require.Len(t, cat.Listings(), 1)
}

func TestTransitionRequest(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t, &admin)

	r, err := s.RequestSwap(ctx, "3", Offer{UsePoints: true})
	require.NoError(t, err)

	r, err = s.TransitionRequest(ctx, r.ID, model.StatusAccepted)
	require.NoError(t, err)
	require.Equal(t, model.StatusAccepted, r.Status)

	_, err = s.TransitionRequest(ctx, r.ID, model.StatusPending)
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = s.TransitionRequest(ctx, "missing", model.StatusAccepted)
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s, sessions, _ := newTestService(t, &admin)

	r, err := s.RequestSwap(ctx, "1", Offer{UsePoints: true})
	require.NoError(t, err)
	_, err = s.TransitionRequest(ctx, r.ID, model.StatusAccepted)
	require.NoError(t, err)
	_, err = s.TransitionRequest(ctx, r.ID, model.StatusCompleted)
	require.NoError(t, err)

	sessions.current = &jane
	d, err := s.Dashboard()
	require.NoError(t, err)
	require.Equal(t, "2", d.Identity.ID)
	require.Len(t, d.Listings, 3)
	require.Equal(t, Stats{TotalItems: 3, AvailableItems: 3, TotalSwaps: 1, CompletedSwaps: 1}, d.Stats)

	sessions.current = &bob
	d, err = s.Dashboard()
	require.NoError(t, err)
	require.Empty(t, d.Listings)
	require.Empty(t, d.Requests)
}

func TestModeration(t *testing.T) {
	ctx := context.Background()
	s, sessions, _ := newTestService(t, &bob)

	pending, err := s.ListItem(ctx, validInput())
	require.NoError(t, err)

	_, err = s.Moderation(TabPending)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = s.Approve(ctx, pending.ID)
	require.ErrorIs(t, err, ErrForbidden)

	sessions.current = &admin
	m, err := s.Moderation(TabPending)
	require.NoError(t, err)
	require.Equal(t, 1, m.Pending)
	require.Equal(t, 3, m.Approved)
	require.Equal(t, 4, m.Total)
	require.Len(t, m.Listings, 1)
	require.Equal(t, pending.ID, m.Listings[0].ID)

	m, err = s.Moderation(TabAll)
	require.NoError(t, err)
	require.Len(t, m.Listings, 4)

	l, err := s.Approve(ctx, pending.ID)
	require.NoError(t, err)
	require.True(t, l.Approved)

	m, err = s.Moderation(TabApproved)
	require.NoError(t, err)
	require.Len(t, m.Listings, 4)
	require.Zero(t, m.Pending)

	require.NoError(t, s.Reject(ctx, pending.ID))
	require.ErrorIs(t, s.Reject(ctx, pending.ID), ErrListingNotFound)
	_, err = s.Approve(ctx, "missing")
	require.ErrorIs(t, err, ErrListingNotFound)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	require.Equal(t, TabPending, tab)

	tab, err = ParseTab("all")
	require.NoError(t, err)
	require.Equal(t, TabAll, tab)

	_, err = ParseTab("archived")
	require.Error(t, err)
}

func TestBrowseAndFacets(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	res := s.Browse(browse.Criteria{Sort: browse.SortPointsAsc})
	require.Equal(t, 3, res.Visible)
	require.Len(t, res.Listings, 3)
	require.Equal(t, 35, res.Listings[0].PointValue)

	f := s.Facets()
	require.Equal(t, browse.All, f.Categories[0])
}
