package exchange

import "github.com/erazemk/rewear/internal/model"

// Stats summarises an identity's activity.
type Stats struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	TotalSwaps     int `json:"total_swaps"`
	CompletedSwaps int `json:"completed_swaps"`
}

// Dashboard is everything the current identity sees on its own page.
type Dashboard struct {
	Identity model.Identity          `json:"identity"`
	Listings []model.Listing         `json:"listings"`
	Requests []model.ExchangeRequest `json:"requests"`
	Stats    Stats                   `json:"stats"`
}

// Dashboard collects the current identity's listings and swaps.
func (s *Service) Dashboard() (Dashboard, error) {
	me, err := s.current()
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Identity: me, Listings: []model.Listing{}}
	for _, l := range s.catalog.Listings() {
		if l.UploaderID != me.ID {
			continue
		}
		d.Listings = append(d.Listings, l)
		if l.Available {
			d.Stats.AvailableItems++
		}
	}
	d.Requests = s.involving(me)

	d.Stats.TotalItems = len(d.Listings)
	d.Stats.TotalSwaps = len(d.Requests)
	for _, r := range d.Requests {
		if r.Status == model.StatusCompleted {
			d.Stats.CompletedSwaps++
		}
	}
	return d, nil
}
