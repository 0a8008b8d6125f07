package extract

import (
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Anchor ids used by the player template
const (
	PlayerAnchorAddress    = "playerAddress"
	PlayerAnchorPhone      = "playerPhone"
	PlayerAnchorName       = "playerName"
	PlayerAnchorLocationID = "loc_id_details"
	PlayerAnchorObjectID   = "object_id_details"
)

// ExtractPlayer reads a player profile from p
func ExtractPlayer(p *Page, sourceURL string, now time.Time) model.Player {
	pl := model.Player{Header: model.NewHeader(model.KindPlayer, sourceURL, now)}

	pl.Address = p.Anchor(PlayerAnchorAddress)
	pl.Phone = NormalizePhone(p.Anchor(PlayerAnchorPhone))
	pl.Name = p.Anchor(PlayerAnchorName)
	pl.LocationID = p.Anchor(PlayerAnchorLocationID)
	pl.ObjectID = p.Anchor(PlayerAnchorObjectID)

	if pl.Name == "" {
		pl.Name = playerHeading(p)
	}

	if loc, ok := FirstAccepted(p.Raw, playerLocationStrategies, acceptPlayerLocation); ok {
		pl.Location = loc
	}
	if email, ok := FirstAccepted(p.Raw, playerEmailStrategies, acceptPlayerEmail); ok {
		pl.Email = email
	}
	if pl.Phone == "" {
		if phone, ok := FirstAccepted(p.Raw, phoneStrategies, acceptPhone); ok {
			pl.Phone = NormalizePhone(phone)
		}
	}

	return pl
}

// playerHeading uses the <h1> when it is longer than 3 characters. Only a
// page without any <h1> falls back to the part of <title> before " - "
// (titles read "Name - Sport Player in City").
func playerHeading(p *Page) string {
	if h1, ok := p.FirstText("h1"); ok {
		if runeLen(h1) > 3 {
			return h1
		}
		return ""
	}

	title, ok := p.FirstText("title")
	if !ok {
		return ""
	}
	if before, _, found := strings.Cut(title, " - "); found {
		return strings.TrimSpace(before)
	}
	return title
}
