package extract

import (
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Anchor ids used by the coach template
const (
	CoachAnchorName    = "coachName"
	CoachAnchorPhone   = "coachPhone"
	CoachAnchorAddress = "coachAddress"
	CoachAnchorSport   = "sport_details"
)

// ExtractCoach reads a coach profile from p. JSON bodies are handed to
// DecodeCoachJSON and its diagnostic is returned; HTML pages never error.
func ExtractCoach(p *Page, sourceURL string, now time.Time) (model.Coach, error) {
	if IsJSONBody(p.Raw) {
		return DecodeCoachJSON(p.Raw, sourceURL, now)
	}
	return extractCoachHTML(p, sourceURL, now), nil
}

func extractCoachHTML(p *Page, sourceURL string, now time.Time) model.Coach {
	c := model.Coach{Header: model.NewHeader(model.KindCoach, sourceURL, now)}

	c.Name = p.Anchor(CoachAnchorName)
	c.Phone = NormalizePhone(p.Anchor(CoachAnchorPhone))
	c.Address = p.Anchor(CoachAnchorAddress)
	c.Sport = p.Anchor(CoachAnchorSport)

	if c.Name == "" {
		c.Name = coachHeading(p)
	}

	if loc, ok := FirstAccepted(p.Raw, coachLocationStrategies, acceptCoachLocation); ok {
		c.Location = loc
	}
	if email, ok := FirstAccepted(p.Raw, coachEmailStrategies, acceptCoachEmail); ok {
		c.Email = email
	}
	if c.Phone == "" {
		if phone, ok := FirstAccepted(p.Raw, phoneStrategies, acceptPhone); ok {
			c.Phone = NormalizePhone(phone)
		}
	}
	if dob, ok := FirstAccepted(p.Raw, birthDateStrategies, acceptAny); ok {
		c.DateOfBirth = dob
	}

	return c
}

// coachHeading takes the first <h1>, or <title> when the page has no h1,
// as the name provided it mentions a coach
func coachHeading(p *Page) string {
	text, ok := p.FirstText("h1")
	if !ok {
		text, ok = p.FirstText("title")
	}
	if !ok || !strings.Contains(strings.ToLower(text), "coach") {
		return ""
	}
	return text
}
