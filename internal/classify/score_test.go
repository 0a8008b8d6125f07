package classify

import (
	"testing"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

func TestScorer_Calculate(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name       string
		record     model.Record
		kind       model.Kind
		wantTotal  int
		wantFields int
	}{
		{
			name:       "empty venue earns only the kind match",
			record:     model.Venue{},
			kind:       model.KindVenue,
			wantTotal:  10,
			wantFields: 0,
		},
		{
			name: "full venue",
			record: model.Venue{
				Name: "Ace Academy", Phone: "9822012345", Address: "Baner", Sport: "Cricket", Description: "d",
			},
			kind:       model.KindVenue,
			wantTotal:  30,
			wantFields: 20,
		},
		{
			name:       "sentinels never count",
			record:     model.Player{Name: "Unknown", Phone: "No phone", Email: "No email", Location: "No location"},
			kind:       model.KindPlayer,
			wantTotal:  10,
			wantFields: 0,
		},
		{
			name:       "venue sentinel address",
			record:     model.Venue{Address: "No address", Sport: "Football"},
			kind:       model.KindVenue,
			wantTotal:  13,
			wantFields: 3,
		},
		{
			name: "coach with json-only fields",
			record: model.Coach{
				Name: "Amit", Phone: "9876543210", Email: "a@b.com", Location: "Pune",
				Experience: "12", Education: "BPEd",
			},
			kind:       model.KindCoach,
			wantTotal:  32,
			wantFields: 22,
		},
		{
			name:       "kind mismatch gets no base points",
			record:     model.Player{Name: "Priya"},
			kind:       model.KindCoach,
			wantTotal:  5,
			wantFields: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Calculate(tt.record, tt.kind)
			if got.Total != tt.wantTotal || got.Fields != tt.wantFields {
				t.Errorf("Calculate() = %+v, want total %d fields %d", got, tt.wantTotal, tt.wantFields)
			}
		})
	}
}

func TestKindFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want model.Kind
	}{
		{"https://www.bookmyplayer.com/gym/fitzone-aid-100", model.KindVenue},
		{"https://www.bookmyplayer.com/pune/Ace-ACADEMY", model.KindVenue},
		{"https://www.bookmyplayer.com/delhi/football-accademy-x", model.KindVenue},
		{"https://www.bookmyplayer.com/cricket-coach/rahul", model.KindCoach},
		{"https://www.bookmyplayer.com/pune/rahul-chid-7", model.KindCoach},
		{"https://www.bookmyplayer.com/basketball-player/priya", model.KindPlayer},
		{"https://www.bookmyplayer.com/noida/priya-pid-9", model.KindPlayer},
		{"https://www.bookmyplayer.com/about-us", model.KindUnknown},
		{"https://www.bookmyplayer.com/", model.KindUnknown},
		{"/club-coach-player", model.KindVenue},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := KindFromURL(tt.url); got != tt.want {
				t.Errorf("KindFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
