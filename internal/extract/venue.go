package extract

import (
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Anchor ids used by the academy/venue template
const (
	VenueAnchorPhone      = "academy_phone"
	VenueAnchorPhone2     = "academy_phone2"
	VenueAnchorAddress    = "academy_address"
	VenueAnchorName       = "listing_title"
	VenueAnchorLocationID = "loc_id_details"
	VenueAnchorSport      = "sport_details"
	VenueAnchorObjectType = "object_type_details"
)

// ExtractVenue reads the venue template fields from p
func ExtractVenue(p *Page, sourceURL string, now time.Time) model.Venue {
	v := model.Venue{Header: model.NewHeader(model.KindVenue, sourceURL, now)}

	v.Phone = NormalizePhone(p.Anchor(VenueAnchorPhone))
	v.PhoneSecondary = NormalizePhone(p.Anchor(VenueAnchorPhone2))
	v.Address = p.Anchor(VenueAnchorAddress)
	v.Name = p.Anchor(VenueAnchorName)
	v.LocationID = p.Anchor(VenueAnchorLocationID)
	v.Sport = p.Anchor(VenueAnchorSport)
	v.ObjectType = p.Anchor(VenueAnchorObjectType)
	v.Description = p.MetaDescription()

	if m := instagramPattern.FindStringSubmatch(p.Raw); m != nil {
		v.InstagramURL = m[1]
	}

	return v
}
