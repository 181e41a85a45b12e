package model

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		expected bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusAccepted, StatusCompleted, true},
		// Skips and backward moves.
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusPending, false},
		{StatusCompleted, StatusAccepted, false},
		{StatusRejected, StatusPending, false},
		// Rejected and completed are terminal.
		{StatusRejected, StatusCompleted, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{"unknown", StatusAccepted, false},
		{StatusPending, "unknown", false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.expected {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestValidateOffer(t *testing.T) {
	tests := []struct {
		name    string
		req     ExchangeRequest
		wantErr bool
	}{
		{"points", ExchangeRequest{UsesPoints: true, PointsOffered: 45}, false},
		{"item", ExchangeRequest{OfferedListingID: "2"}, false},
		{"neither", ExchangeRequest{}, true},
		{"both", ExchangeRequest{UsesPoints: true, PointsOffered: 45, OfferedListingID: "2"}, true},
		{"points flag without amount", ExchangeRequest{UsesPoints: true}, true},
		{"amount without flag", ExchangeRequest{PointsOffered: 10}, true},
		{"negative amount", ExchangeRequest{UsesPoints: true, PointsOffered: -5}, true},
	}

	for _, tt := range tests {
		err := tt.req.ValidateOffer()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateOffer() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrOfferPath) {
			t.Errorf("%s: expected ErrOfferPath, got %v", tt.name, err)
		}
	}
}
