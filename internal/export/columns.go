package export

import (
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Sheet names, in workbook order
const (
	SheetVenues  = "Venues"
	SheetCoaches = "Coaches"
	SheetPlayers = "Players"
	SheetErrors  = "Errors"
)

var (
	venueColumns = []string{
		"type", "url", "name", "phone", "phone2", "address", "location_id",
		"sport", "object_type", "description", "instagram_url", "scraped_at",
	}
	coachColumns = []string{
		"type", "url", "name", "phone", "email", "address", "sport", "location",
		"date_of_birth", "city", "state", "experience", "education", "achievement",
		"skills", "highlight", "fee", "package", "gender", "certificate", "about",
		"postcode", "latitude", "longitude", "scraped_at",
	}
	playerColumns = []string{
		"type", "url", "name", "phone", "email", "address", "location",
		"location_id", "object_id", "scraped_at",
	}
	errorColumns = []string{"type", "url", "error", "scraped_at"}
)

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func venueRow(v model.Venue) []any {
	return []any{
		string(v.Type), v.SourceURL, v.Name, v.Phone, v.PhoneSecondary, v.Address,
		v.LocationID, v.Sport, v.ObjectType, v.Description, v.InstagramURL, stamp(v.CapturedAt),
	}
}

func coachRow(c model.Coach) []any {
	return []any{
		string(c.Type), c.SourceURL, c.Name, c.Phone, c.Email, c.Address, c.Sport, c.Location,
		c.DateOfBirth, c.City, c.State, c.Experience, c.Education, c.Achievement,
		c.Skills, c.Highlight, c.Fee, c.Package, c.Gender, c.Certificate, c.About,
		c.Postcode, c.Latitude, c.Longitude, stamp(c.CapturedAt),
	}
}

func playerRow(p model.Player) []any {
	return []any{
		string(p.Type), p.SourceURL, p.Name, p.Phone, p.Email, p.Address, p.Location,
		p.LocationID, p.ObjectID, stamp(p.CapturedAt),
	}
}

func errorRow(r model.Record) []any {
	h := r.Meta()
	return []any{string(h.Type), h.SourceURL, model.ErrorMessage(r), stamp(h.CapturedAt)}
}
